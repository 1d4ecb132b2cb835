package service

import (
	"strings"
	"time"

	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/models"
	"github.com/anbar-next/internal/repository"

	"github.com/shopspring/decimal"
)

// PricingRuleAdminService 定价规则后台管理服务
type PricingRuleAdminService struct {
	ruleRepo    repository.PricingRuleRepository
	partnerRepo repository.PartnerRepository
}

// NewPricingRuleAdminService 创建定价规则管理服务
func NewPricingRuleAdminService(ruleRepo repository.PricingRuleRepository, partnerRepo repository.PartnerRepository) *PricingRuleAdminService {
	return &PricingRuleAdminService{ruleRepo: ruleRepo, partnerRepo: partnerRepo}
}

// CreatePricingRuleInput 创建/更新定价规则输入
type CreatePricingRuleInput struct {
	PartnerID      uint
	RuleName       string
	RuleType       string
	RuleValue      *decimal.Decimal
	MinQuantity    int
	MaxQuantity    *int
	CategoryFilter *string
	Priority       int
	ValidFrom      *time.Time
	ValidUntil     *time.Time
}

// Create 创建定价规则
func (s *PricingRuleAdminService) Create(input CreatePricingRuleInput) (*models.PricingRule, error) {
	partner, err := s.partnerRepo.GetByID(input.PartnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrNotFound
	}
	if err := validatePricingRuleInput(&input); err != nil {
		return nil, err
	}

	validFrom := time.Now()
	if input.ValidFrom != nil {
		validFrom = *input.ValidFrom
	}

	rule := &models.PricingRule{
		PartnerID:      input.PartnerID,
		RuleName:       strings.TrimSpace(input.RuleName),
		RuleType:       input.RuleType,
		MinQuantity:    input.MinQuantity,
		MaxQuantity:    input.MaxQuantity,
		CategoryFilter: input.CategoryFilter,
		Priority:       input.Priority,
		IsActive:       true,
		ValidFrom:      validFrom,
		ValidUntil:     input.ValidUntil,
	}
	if input.RuleValue != nil {
		value := models.NewMoneyFromDecimal(*input.RuleValue)
		rule.RuleValue = &value
	}

	if err := s.ruleRepo.Create(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// Update 更新定价规则
func (s *PricingRuleAdminService) Update(id uint, input CreatePricingRuleInput) (*models.PricingRule, error) {
	rule, err := s.ruleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrNotFound
	}
	if err := validatePricingRuleInput(&input); err != nil {
		return nil, err
	}

	rule.RuleName = strings.TrimSpace(input.RuleName)
	rule.RuleType = input.RuleType
	rule.MinQuantity = input.MinQuantity
	rule.MaxQuantity = input.MaxQuantity
	rule.CategoryFilter = input.CategoryFilter
	rule.Priority = input.Priority
	if input.ValidFrom != nil {
		rule.ValidFrom = *input.ValidFrom
	}
	rule.ValidUntil = input.ValidUntil
	rule.RuleValue = nil
	if input.RuleValue != nil {
		value := models.NewMoneyFromDecimal(*input.RuleValue)
		rule.RuleValue = &value
	}

	if err := s.ruleRepo.Update(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// Deactivate 停用定价规则。规则只做逻辑下线，历史订单的计价依据保持可追溯。
func (s *PricingRuleAdminService) Deactivate(id uint) error {
	rule, err := s.ruleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rule == nil {
		return ErrNotFound
	}
	if !rule.IsActive {
		return nil
	}
	rule.IsActive = false
	return s.ruleRepo.Update(rule)
}

// Activate 重新启用定价规则
func (s *PricingRuleAdminService) Activate(id uint) error {
	rule, err := s.ruleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rule == nil {
		return ErrNotFound
	}
	if rule.IsActive {
		return nil
	}
	rule.IsActive = true
	return s.ruleRepo.Update(rule)
}

// List 获取定价规则列表
func (s *PricingRuleAdminService) List(filter repository.PricingRuleListFilter) ([]models.PricingRule, int64, error) {
	return s.ruleRepo.List(filter)
}

// GetByID 获取定价规则详情
func (s *PricingRuleAdminService) GetByID(id uint) (*models.PricingRule, error) {
	rule, err := s.ruleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrNotFound
	}
	return rule, nil
}

// validatePricingRuleInput 校验并归一化规则输入。
// percentage 数值低于 -100 会把价格折叠成负数，直接拒绝。
func validatePricingRuleInput(input *CreatePricingRuleInput) error {
	switch input.RuleType {
	case constants.RuleTypePercentage, constants.RuleTypeFixedAmount:
		if input.RuleValue == nil {
			return ErrPricingRuleValueRequired
		}
		if input.RuleType == constants.RuleTypePercentage && input.RuleValue.LessThan(decimal.NewFromInt(-100)) {
			return ErrPricingRuleTypeInvalid
		}
	case constants.RuleTypeCustom:
		// custom 为占位类型，数值可空
	default:
		return ErrPricingRuleTypeInvalid
	}

	if input.MinQuantity <= 0 {
		input.MinQuantity = 1
	}
	if input.MaxQuantity != nil && *input.MaxQuantity < input.MinQuantity {
		return ErrPricingRuleQuantityInvalid
	}
	if input.ValidFrom != nil && input.ValidUntil != nil && input.ValidUntil.Before(*input.ValidFrom) {
		return ErrPricingRuleValidityInvalid
	}
	if input.CategoryFilter != nil {
		trimmed := strings.TrimSpace(*input.CategoryFilter)
		if trimmed == "" {
			input.CategoryFilter = nil
		} else {
			input.CategoryFilter = &trimmed
		}
	}
	return nil
}
