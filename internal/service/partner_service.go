package service

import (
	"strings"

	"github.com/anbar-next/internal/logger"
	"github.com/anbar-next/internal/models"
	"github.com/anbar-next/internal/queue"
	"github.com/anbar-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PartnerService 合作方业务服务：档案维护、定价公式、欠款与结算
type PartnerService struct {
	partnerRepo    repository.PartnerRepository
	productRepo    repository.ProductRepository
	settlementRepo repository.SettlementRepository
	queueClient    *queue.Client
}

// NewPartnerService 创建合作方服务
func NewPartnerService(partnerRepo repository.PartnerRepository, productRepo repository.ProductRepository, settlementRepo repository.SettlementRepository, queueClient *queue.Client) *PartnerService {
	return &PartnerService{
		partnerRepo:    partnerRepo,
		productRepo:    productRepo,
		settlementRepo: settlementRepo,
		queueClient:    queueClient,
	}
}

// CreatePartnerInput 创建/更新合作方输入
type CreatePartnerInput struct {
	UserID          uint
	Name            string
	Type            string
	ContactEmail    string
	ContactPhone    string
	Address         string
	Description     string
	PlatformName    string
	PlatformAddress string
	CreditLimit     decimal.Decimal
	PaymentTerms    string
	SettlementDays  int
	ProfitPct       decimal.Decimal
	FixedAmount     decimal.Decimal
	PriceEnding     int
	IsActive        *bool
}

// Create 创建合作方
func (s *PartnerService) Create(input CreatePartnerInput) (*models.Partner, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPartnerNameRequired
	}
	if err := validatePartnerFormula(input.ProfitPct, input.PriceEnding); err != nil {
		return nil, err
	}

	settlementDays := input.SettlementDays
	if settlementDays <= 0 {
		settlementDays = 30
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	partner := &models.Partner{
		UserID:          input.UserID,
		Name:            name,
		Type:            strings.TrimSpace(input.Type),
		ContactEmail:    strings.TrimSpace(input.ContactEmail),
		ContactPhone:    strings.TrimSpace(input.ContactPhone),
		Address:         input.Address,
		Description:     input.Description,
		PlatformName:    strings.TrimSpace(input.PlatformName),
		PlatformAddress: strings.TrimSpace(input.PlatformAddress),
		CreditLimit:     models.NewMoneyFromDecimal(input.CreditLimit),
		CurrentDebt:     models.NewMoneyFromDecimal(decimal.Zero),
		PaymentTerms:    input.PaymentTerms,
		SettlementDays:  settlementDays,
		ProfitPct:       models.NewMoneyFromDecimal(input.ProfitPct),
		FixedAmount:     models.NewMoneyFromDecimal(input.FixedAmount),
		PriceEnding:     input.PriceEnding,
		IsActive:        isActive,
	}
	if err := s.partnerRepo.Create(partner); err != nil {
		return nil, err
	}
	return partner, nil
}

// Update 更新合作方。定价公式发生变化时推送全量重算任务，
// 让名下 SKU 的销售价缓存异步收敛到新公式。
func (s *PartnerService) Update(id uint, input CreatePartnerInput) (*models.Partner, error) {
	partner, err := s.partnerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPartnerNameRequired
	}
	if err := validatePartnerFormula(input.ProfitPct, input.PriceEnding); err != nil {
		return nil, err
	}

	formulaChanged := !partner.ProfitPct.Decimal.Equal(input.ProfitPct) ||
		!partner.FixedAmount.Decimal.Equal(input.FixedAmount) ||
		partner.PriceEnding != input.PriceEnding

	partner.Name = name
	partner.Type = strings.TrimSpace(input.Type)
	partner.ContactEmail = strings.TrimSpace(input.ContactEmail)
	partner.ContactPhone = strings.TrimSpace(input.ContactPhone)
	partner.Address = input.Address
	partner.Description = input.Description
	partner.PlatformName = strings.TrimSpace(input.PlatformName)
	partner.PlatformAddress = strings.TrimSpace(input.PlatformAddress)
	partner.CreditLimit = models.NewMoneyFromDecimal(input.CreditLimit)
	partner.PaymentTerms = input.PaymentTerms
	if input.SettlementDays > 0 {
		partner.SettlementDays = input.SettlementDays
	}
	partner.ProfitPct = models.NewMoneyFromDecimal(input.ProfitPct)
	partner.FixedAmount = models.NewMoneyFromDecimal(input.FixedAmount)
	partner.PriceEnding = input.PriceEnding
	if input.IsActive != nil {
		partner.IsActive = *input.IsActive
	}

	if err := s.partnerRepo.Update(partner); err != nil {
		return nil, err
	}

	if formulaChanged {
		payload := queue.PriceRecomputePayload{ProductID: 0, Reason: "partner_formula_changed"}
		if err := s.queueClient.EnqueuePriceRecompute(payload); err != nil {
			logger.Warnw("partner_formula_recompute_enqueue_failed", "partner_id", partner.ID, "error", err)
		}
	}
	return partner, nil
}

// GetByID 获取合作方详情
func (s *PartnerService) GetByID(id uint) (*models.Partner, error) {
	partner, err := s.partnerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrNotFound
	}
	return partner, nil
}

// List 获取合作方列表
func (s *PartnerService) List(filter repository.PartnerListFilter) ([]models.Partner, int64, error) {
	return s.partnerRepo.List(filter)
}

// Delete 删除合作方（名下存在商品时拒绝）
func (s *PartnerService) Delete(id uint) error {
	partner, err := s.partnerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if partner == nil {
		return ErrNotFound
	}
	count, err := s.partnerRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrPartnerHasProducts
	}
	return s.partnerRepo.Delete(id)
}

// AdjustDebt 调整合作方欠款（正数加债、负数还债）。
// 授信额度大于零时，调整后欠款不得超过额度；额度为零表示不限制。
// 欠款下限为零，超额还款按清零处理。
func (s *PartnerService) AdjustDebt(id uint, delta decimal.Decimal, reason string) (*models.Partner, error) {
	partner, err := s.partnerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrNotFound
	}

	newDebt := partner.CurrentDebt.Decimal.Add(delta)
	if newDebt.LessThan(decimal.Zero) {
		newDebt = decimal.Zero
	}
	if partner.CreditLimit.Decimal.GreaterThan(decimal.Zero) && newDebt.GreaterThan(partner.CreditLimit.Decimal) {
		return nil, ErrPartnerCreditLimitExceeded
	}

	partner.CurrentDebt = models.NewMoneyFromDecimal(newDebt)
	if err := s.partnerRepo.Update(partner); err != nil {
		return nil, err
	}
	logger.Infow("partner_debt_adjusted", "partner_id", partner.ID, "delta", delta.String(), "new_debt", newDebt.String(), "reason", reason)
	return partner, nil
}

// Settle 结算合作方欠款：扣减欠款并落一条带前后快照的结算记录，
// 两个写入在同一事务中完成。结算金额允许超过当前欠款，剩余欠款按清零处理。
func (s *PartnerService) Settle(id uint, amount decimal.Decimal, settledBy, reason, notes string) (*models.Settlement, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrSettlementAmountInvalid
	}
	partner, err := s.partnerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrNotFound
	}

	previousDebt := partner.CurrentDebt.Decimal
	remainingDebt := previousDebt.Sub(amount)
	if remainingDebt.LessThan(decimal.Zero) {
		remainingDebt = decimal.Zero
	}

	settlement := &models.Settlement{
		PartnerID:     partner.ID,
		Amount:        models.NewMoneyFromDecimal(amount),
		PreviousDebt:  models.NewMoneyFromDecimal(previousDebt),
		RemainingDebt: models.NewMoneyFromDecimal(remainingDebt),
		Reason:        reason,
		SettledBy:     strings.TrimSpace(settledBy),
		Notes:         notes,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		partnerRepo := s.partnerRepo.WithTx(tx)
		settlementRepo := s.settlementRepo.WithTx(tx)

		partner.CurrentDebt = models.NewMoneyFromDecimal(remainingDebt)
		if err := partnerRepo.Update(partner); err != nil {
			return err
		}
		return settlementRepo.Create(settlement)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("partner_settled", "partner_id", partner.ID, "amount", amount.String(), "remaining_debt", remainingDebt.String())
	return settlement, nil
}

// ListSettlements 获取合作方结算记录
func (s *PartnerService) ListSettlements(partnerID uint, page, pageSize int) ([]models.Settlement, int64, error) {
	return s.settlementRepo.ListByPartner(partnerID, page, pageSize)
}

// validatePartnerFormula 校验定价公式参数。
// 利润百分比低于 -100 会把销售价折叠成负数；尾数参数为负没有意义。
func validatePartnerFormula(profitPct decimal.Decimal, priceEnding int) error {
	if profitPct.LessThan(decimal.NewFromInt(-100)) {
		return ErrPartnerFormulaInvalid
	}
	if priceEnding < 0 {
		return ErrPartnerFormulaInvalid
	}
	return nil
}
