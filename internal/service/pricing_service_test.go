package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/models"
	"github.com/anbar-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Partner{},
		&models.PricingRule{},
		&models.Product{},
		&models.Variant{},
		&models.SKU{},
		&models.SKUMapping{},
		&models.Order{},
		&models.OrderItem{},
		&models.InventoryUpdate{},
		&models.Settlement{},
		&models.Platform{},
		&models.SourcePlatform{},
		&models.OutputPlatform{},
		&models.SyncLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return db
}

func newPricingServiceForTest(db *gorm.DB) *PricingService {
	return NewPricingService(
		repository.NewPartnerRepository(db),
		repository.NewProductRepository(db),
		repository.NewSKURepository(db),
		repository.NewPricingRuleRepository(db),
	)
}

func seedTestPartner(t *testing.T, db *gorm.DB, profitPct, fixedAmount int64, priceEnding int) *models.Partner {
	t.Helper()
	partner := &models.Partner{
		UserID:      1,
		Name:        fmt.Sprintf("partner_%d", time.Now().UnixNano()),
		Type:        constants.PartnerTypeSupplier,
		ProfitPct:   models.NewMoneyFromInt(profitPct),
		FixedAmount: models.NewMoneyFromInt(fixedAmount),
		PriceEnding: priceEnding,
		IsActive:    true,
	}
	if err := db.Create(partner).Error; err != nil {
		t.Fatalf("create partner failed: %v", err)
	}
	return partner
}

func seedTestProduct(t *testing.T, db *gorm.DB, partnerID uint, category string) *models.Product {
	t.Helper()
	product := &models.Product{
		PartnerID: partnerID,
		Name:      fmt.Sprintf("product_%d", time.Now().UnixNano()),
		IsActive:  true,
	}
	if category != "" {
		product.Category = &category
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func seedTestSKU(t *testing.T, db *gorm.DB, productID uint, code string, basePrice int64, inventory int) *models.SKU {
	t.Helper()
	base := models.NewMoneyFromInt(basePrice)
	sku := &models.SKU{
		ProductID: productID,
		SKUCode:   code,
		BasePrice: &base,
		CostPrice: &base,
		Inventory: inventory,
		Quantity:  inventory,
		IsActive:  true,
	}
	if err := db.Create(sku).Error; err != nil {
		t.Fatalf("create sku failed: %v", err)
	}
	return sku
}

func seedTestRule(t *testing.T, db *gorm.DB, rule models.PricingRule) *models.PricingRule {
	t.Helper()
	if rule.RuleName == "" {
		rule.RuleName = fmt.Sprintf("rule_%d", time.Now().UnixNano())
	}
	if rule.MinQuantity == 0 {
		rule.MinQuantity = 1
	}
	if rule.ValidFrom.IsZero() {
		rule.ValidFrom = time.Now().Add(-time.Hour)
	}
	rule.IsActive = true
	if err := db.Create(&rule).Error; err != nil {
		t.Fatalf("create pricing rule failed: %v", err)
	}
	return &rule
}

func TestCalculateFinalPriceWithFormula(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPricingServiceForTest(db)
	partner := seedTestPartner(t, db, 20, 5000, 1000)

	// 125000 * 1.20 + 5000 = 155000，尾数已对齐
	got, err := svc.CalculateFinalPriceWithFormula(decimal.NewFromInt(125000), partner.ID, 1)
	if err != nil {
		t.Fatalf("formula price failed: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(155000)) {
		t.Fatalf("expected 155000, got %s", got.String())
	}

	// 98000 * 1.20 + 5000 = 122600 -> 尾数归一到 123000
	got, err = svc.CalculateFinalPriceWithFormula(decimal.NewFromInt(98000), partner.ID, 1)
	if err != nil {
		t.Fatalf("formula price failed: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(123000)) {
		t.Fatalf("expected 123000, got %s", got.String())
	}
}

func TestCalculateFinalPriceWithFormulaNonPositiveBase(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPricingServiceForTest(db)
	partner := seedTestPartner(t, db, 20, 5000, 1000)

	got, err := svc.CalculateFinalPriceWithFormula(decimal.Zero, partner.ID, 1)
	if err != nil {
		t.Fatalf("formula price failed: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("expected zero for non-positive base, got %s", got.String())
	}
}

func TestCalculateFinalPriceWithFormulaMissingPartner(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPricingServiceForTest(db)

	base := decimal.NewFromInt(98000)
	got, err := svc.CalculateFinalPriceWithFormula(base, 9999, 1)
	if err != nil {
		t.Fatalf("formula price failed: %v", err)
	}
	if !got.Equal(base) {
		t.Fatalf("expected base price passthrough for missing partner, got %s", got.String())
	}
}

func TestCalculatePriceRuleFold(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPricingServiceForTest(db)
	partner := seedTestPartner(t, db, 0, 0, 0)
	product := seedTestProduct(t, db, partner.ID, "")
	sku := seedTestSKU(t, db, product.ID, "RULE-FOLD-1", 100000, 10)

	pct := models.NewMoneyFromInt(10)
	fixed := models.NewMoneyFromInt(2000)
	seedTestRule(t, db, models.PricingRule{
		PartnerID: partner.ID,
		RuleType:  constants.RuleTypePercentage,
		RuleValue: &pct,
		Priority:  10,
	})
	seedTestRule(t, db, models.PricingRule{
		PartnerID: partner.ID,
		RuleType:  constants.RuleTypeFixedAmount,
		RuleValue: &fixed,
		Priority:  5,
	})

	// 优先级高的先应用：100000 * 1.10 + 2000 = 112000
	got, err := svc.CalculatePrice(sku.ID, decimal.NewFromInt(100000), 1)
	if err != nil {
		t.Fatalf("rule price failed: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(112000)) {
		t.Fatalf("expected 112000, got %s", got.String())
	}
}

func TestCalculatePriceMissingSKUFallsBack(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPricingServiceForTest(db)

	cost := decimal.NewFromInt(50000)
	got, err := svc.CalculatePrice(424242, cost, 1)
	if err != nil {
		t.Fatalf("rule price failed: %v", err)
	}
	if !got.Equal(cost) {
		t.Fatalf("expected cost price passthrough for missing sku, got %s", got.String())
	}
}

func TestCalculatePriceQuantityBoundary(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPricingServiceForTest(db)
	partner := seedTestPartner(t, db, 0, 0, 0)
	product := seedTestProduct(t, db, partner.ID, "")
	sku := seedTestSKU(t, db, product.ID, "RULE-QTY-1", 100000, 10)

	pct := models.NewMoneyFromInt(-10)
	seedTestRule(t, db, models.PricingRule{
		PartnerID:   partner.ID,
		RuleType:    constants.RuleTypePercentage,
		RuleValue:   &pct,
		MinQuantity: 5,
	})

	cost := decimal.NewFromInt(100000)
	// 数量 4 未达到阈值，规则不适用
	got, err := svc.CalculatePrice(sku.ID, cost, 4)
	if err != nil {
		t.Fatalf("rule price failed: %v", err)
	}
	if !got.Equal(cost) {
		t.Fatalf("expected no discount below min quantity, got %s", got.String())
	}

	// 数量 5 含边界，规则生效
	got, err = svc.CalculatePrice(sku.ID, cost, 5)
	if err != nil {
		t.Fatalf("rule price failed: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(90000)) {
		t.Fatalf("expected 90000 at min quantity, got %s", got.String())
	}
}

func TestCalculatePriceExpiredRuleIgnored(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPricingServiceForTest(db)
	partner := seedTestPartner(t, db, 0, 0, 0)
	product := seedTestProduct(t, db, partner.ID, "")
	sku := seedTestSKU(t, db, product.ID, "RULE-EXP-1", 100000, 10)

	pct := models.NewMoneyFromInt(50)
	expired := time.Now().Add(-time.Hour)
	seedTestRule(t, db, models.PricingRule{
		PartnerID:  partner.ID,
		RuleType:   constants.RuleTypePercentage,
		RuleValue:  &pct,
		ValidFrom:  time.Now().Add(-48 * time.Hour),
		ValidUntil: &expired,
	})

	cost := decimal.NewFromInt(100000)
	got, err := svc.CalculatePrice(sku.ID, cost, 1)
	if err != nil {
		t.Fatalf("rule price failed: %v", err)
	}
	if !got.Equal(cost) {
		t.Fatalf("expected expired rule ignored, got %s", got.String())
	}
}

func TestCalculatePriceCategoryFilter(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPricingServiceForTest(db)
	partner := seedTestPartner(t, db, 0, 0, 0)
	clothing := seedTestProduct(t, db, partner.ID, "clothing")
	shoes := seedTestProduct(t, db, partner.ID, "shoes")
	clothingSKU := seedTestSKU(t, db, clothing.ID, "RULE-CAT-1", 100000, 10)
	shoesSKU := seedTestSKU(t, db, shoes.ID, "RULE-CAT-2", 100000, 10)

	fixed := models.NewMoneyFromInt(15000)
	category := "clothing"
	seedTestRule(t, db, models.PricingRule{
		PartnerID:      partner.ID,
		RuleType:       constants.RuleTypeFixedAmount,
		RuleValue:      &fixed,
		CategoryFilter: &category,
	})

	cost := decimal.NewFromInt(100000)
	got, err := svc.CalculatePrice(clothingSKU.ID, cost, 1)
	if err != nil {
		t.Fatalf("rule price failed: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(115000)) {
		t.Fatalf("expected 115000 for matching category, got %s", got.String())
	}

	got, err = svc.CalculatePrice(shoesSKU.ID, cost, 1)
	if err != nil {
		t.Fatalf("rule price failed: %v", err)
	}
	if !got.Equal(cost) {
		t.Fatalf("expected category mismatch to skip rule, got %s", got.String())
	}
}

func TestCalculateUnknownStrategy(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPricingServiceForTest(db)

	_, err := svc.Calculate(PriceRequest{Strategy: "hybrid", BasePrice: decimal.NewFromInt(100)})
	if err != ErrPricingStrategyUnknown {
		t.Fatalf("expected ErrPricingStrategyUnknown, got %v", err)
	}
}

func TestUpdateSKUFinalPricesIdempotent(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPricingServiceForTest(db)
	partner := seedTestPartner(t, db, 20, 5000, 1000)
	product := seedTestProduct(t, db, partner.ID, "")
	sku := seedTestSKU(t, db, product.ID, "RECOMP-1", 98000, 10)
	seedTestSKU(t, db, product.ID, "RECOMP-2", 0, 5) // base 非正，应跳过

	updated, err := svc.UpdateSKUFinalPrices(product.ID)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 updated sku, got %d", updated)
	}

	var reloaded models.SKU
	if err := db.First(&reloaded, sku.ID).Error; err != nil {
		t.Fatalf("reload sku failed: %v", err)
	}
	if reloaded.FinalPrice == nil || !reloaded.FinalPrice.Decimal.Equal(decimal.NewFromInt(123000)) {
		t.Fatalf("expected final price 123000, got %+v", reloaded.FinalPrice)
	}
	if reloaded.Price == nil || !reloaded.Price.Decimal.Equal(decimal.NewFromInt(123000)) {
		t.Fatalf("expected legacy price alias synced, got %+v", reloaded.Price)
	}

	// 输入不变时重复执行不产生新的写入
	updated, err = svc.UpdateSKUFinalPrices(product.ID)
	if err != nil {
		t.Fatalf("second recompute failed: %v", err)
	}
	if updated != 0 {
		t.Fatalf("expected idempotent recompute, got %d updates", updated)
	}
}

func TestUpdateSKUFinalPricesFollowsFormulaChange(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPricingServiceForTest(db)
	partner := seedTestPartner(t, db, 20, 5000, 1000)
	product := seedTestProduct(t, db, partner.ID, "")
	sku := seedTestSKU(t, db, product.ID, "RECOMP-FRM-1", 98000, 10)

	if _, err := svc.UpdateSKUFinalPrices(product.ID); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	// 公式调整后重算应收敛到新结果：98000 * 1.35 = 132300 -> 133000
	partner.ProfitPct = models.NewMoneyFromInt(35)
	partner.FixedAmount = models.NewMoneyFromInt(0)
	if err := db.Save(partner).Error; err != nil {
		t.Fatalf("update partner failed: %v", err)
	}

	updated, err := svc.UpdateSKUFinalPrices(product.ID)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 updated sku, got %d", updated)
	}

	var reloaded models.SKU
	if err := db.First(&reloaded, sku.ID).Error; err != nil {
		t.Fatalf("reload sku failed: %v", err)
	}
	if reloaded.FinalPrice == nil || !reloaded.FinalPrice.Decimal.Equal(decimal.NewFromInt(133000)) {
		t.Fatalf("expected final price 133000, got %+v", reloaded.FinalPrice)
	}
}
