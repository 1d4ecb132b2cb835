package service

import (
	"time"

	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/logger"
	"github.com/anbar-next/internal/models"
	"github.com/anbar-next/internal/repository"

	"github.com/shopspring/decimal"
)

// PricingService 定价服务：规则路径与公式路径的统一入口。
// 无内部状态，每次计算都重新读取合作方与规则数据，可跨请求安全复用。
type PricingService struct {
	partnerRepo repository.PartnerRepository
	productRepo repository.ProductRepository
	skuRepo     repository.SKURepository
	ruleRepo    repository.PricingRuleRepository
}

// NewPricingService 创建定价服务
func NewPricingService(partnerRepo repository.PartnerRepository, productRepo repository.ProductRepository, skuRepo repository.SKURepository, ruleRepo repository.PricingRuleRepository) *PricingService {
	return &PricingService{
		partnerRepo: partnerRepo,
		productRepo: productRepo,
		skuRepo:     skuRepo,
		ruleRepo:    ruleRepo,
	}
}

// PriceRequest 定价请求。Strategy 显式选择规则路径或公式路径，两条路径互斥，
// 当前设计不做组合。
type PriceRequest struct {
	Strategy  string
	SKUID     uint
	ProductID uint
	PartnerID uint
	BasePrice decimal.Decimal
	Quantity  int
}

// Calculate 按策略分发定价请求
func (s *PricingService) Calculate(req PriceRequest) (decimal.Decimal, error) {
	switch req.Strategy {
	case constants.PricingStrategyRuleBased:
		if req.SKUID != 0 {
			return s.CalculatePrice(req.SKUID, req.BasePrice, req.Quantity)
		}
		return s.CalculatePriceForProduct(req.ProductID, req.BasePrice, req.Quantity)
	case constants.PricingStrategyFormulaBased:
		return s.CalculateFinalPriceWithFormula(req.BasePrice, req.PartnerID, req.Quantity)
	default:
		return decimal.Zero, ErrPricingStrategyUnknown
	}
}

// CalculatePrice 规则路径：从 SKU 解析商品与合作方，折叠适用规则计算销售价。
// SKU、商品或合作方任一缺失时原样返回成本价（优雅降级，不视为错误）。
func (s *PricingService) CalculatePrice(skuID uint, costPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	sku, err := s.skuRepo.GetByIDWithPartner(skuID)
	if err != nil {
		return decimal.Zero, err
	}
	if sku == nil || sku.Product == nil || sku.Product.Partner == nil {
		return costPrice, nil
	}
	return s.calculateWithRules(sku.Product.PartnerID, sku.Product.Category, costPrice, quantity)
}

// CalculatePriceForProduct 规则路径：直接从商品解析合作方（SKU 尚未创建时使用）。
// 降级语义与 CalculatePrice 一致。
func (s *PricingService) CalculatePriceForProduct(productID uint, costPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	product, err := s.productRepo.GetByIDWithPartner(productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil || product.Partner == nil {
		return costPrice, nil
	}
	return s.calculateWithRules(product.PartnerID, product.Category, costPrice, quantity)
}

func (s *PricingService) calculateWithRules(partnerID uint, category *string, costPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	rules, err := s.ruleRepo.ListApplicable(partnerID, category, quantity, time.Now())
	if err != nil {
		return decimal.Zero, err
	}
	return foldPricingRules(costPrice, rules, quantity), nil
}

// CalculateFinalPriceWithFormula 公式路径：按合作方的利润百分比 + 固定加价计算，
// 再做价格尾数归一。base 非正返回零；合作方缺失时原样返回 base。
func (s *PricingService) CalculateFinalPriceWithFormula(basePrice decimal.Decimal, partnerID uint, quantity int) (decimal.Decimal, error) {
	if basePrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	partner, err := s.partnerRepo.GetByID(partnerID)
	if err != nil {
		return decimal.Zero, err
	}
	if partner == nil {
		return basePrice, nil
	}

	calculated := priceWithProfit(basePrice, partner.ProfitPct.Decimal, partner.FixedAmount.Decimal)
	return applyPriceEnding(calculated, partner.PriceEnding), nil
}

// UpdateSKUFinalPrices 批量重算 SKU 销售价缓存（公式路径）。
// productID 为 0 时覆盖全部 SKU；仅持久化与存量不同的结果并返回实际变更条数，
// 重复执行在输入不变时不会产生新的写入。单条失败只记录日志并跳过，不中断批次。
func (s *PricingService) UpdateSKUFinalPrices(productID uint) (int, error) {
	skus, err := s.skuRepo.ListForRecompute(productID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range skus {
		sku := &skus[i]
		if sku.BasePrice == nil || !sku.BasePrice.IsPositive() {
			continue
		}
		if sku.Product == nil || sku.Product.PartnerID == 0 {
			continue
		}

		newFinalPrice, err := s.CalculateFinalPriceWithFormula(sku.BasePrice.Decimal, sku.Product.PartnerID, 1)
		if err != nil {
			logger.Warnw("pricing_recompute_sku_failed", "sku_id", sku.ID, "error", err)
			continue
		}

		if sku.FinalPrice != nil && sku.FinalPrice.Decimal.Equal(newFinalPrice) {
			continue
		}

		price := models.NewMoneyFromDecimal(newFinalPrice)
		sku.FinalPrice = &price
		sku.Price = &price // 历史别名字段同步
		if err := s.skuRepo.Update(sku); err != nil {
			logger.Warnw("pricing_recompute_sku_save_failed", "sku_id", sku.ID, "error", err)
			continue
		}
		updated++
	}

	if updated > 0 {
		logger.Infow("pricing_recompute_done", "product_id", productID, "updated", updated, "scanned", len(skus))
	}
	return updated, nil
}
