package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/logger"
	"github.com/anbar-next/internal/models"
	"github.com/anbar-next/internal/repository"

	"github.com/shopspring/decimal"
)

// InventoryUpdateService 库存变更服务：手动调整与供应商回报两条入口，
// 所有数量变化都落带前后快照的流水。
type InventoryUpdateService struct {
	skuRepo            repository.SKURepository
	productRepo        repository.ProductRepository
	inventoryRepo      repository.InventoryUpdateRepository
	sourcePlatformRepo repository.SourcePlatformRepository
	syncLogRepo        repository.SyncLogRepository
	pricing            *PricingService
}

// NewInventoryUpdateService 创建库存变更服务
func NewInventoryUpdateService(skuRepo repository.SKURepository, productRepo repository.ProductRepository, inventoryRepo repository.InventoryUpdateRepository, sourcePlatformRepo repository.SourcePlatformRepository, syncLogRepo repository.SyncLogRepository, pricing *PricingService) *InventoryUpdateService {
	return &InventoryUpdateService{
		skuRepo:            skuRepo,
		productRepo:        productRepo,
		inventoryRepo:      inventoryRepo,
		sourcePlatformRepo: sourcePlatformRepo,
		syncLogRepo:        syncLogRepo,
		pricing:            pricing,
	}
}

// SupplierFeedItemInput 供应商回报单条记录。
// ProductID 非零时允许对未知编码自动建 SKU，零值时未知编码按失败处理。
type SupplierFeedItemInput struct {
	SKUCode   string
	ProductID uint
	Quantity  int
	BasePrice *decimal.Decimal
}

// SupplierFeedInput 供应商回报输入
type SupplierFeedInput struct {
	SourcePlatformID uint
	Items            []SupplierFeedItemInput
}

// SupplierFeedResult 供应商回报处理结果
type SupplierFeedResult struct {
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// SetQuantity 手动设置 SKU 库存到目标数量
func (s *InventoryUpdateService) SetQuantity(skuID uint, newQuantity int, reason string) (*models.InventoryUpdate, error) {
	if newQuantity < 0 {
		return nil, ErrOrderItemInvalid
	}
	sku, err := s.skuRepo.GetByID(skuID)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, ErrNotFound
	}

	update := &models.InventoryUpdate{
		SKUID:       sku.ID,
		OldQuantity: sku.Inventory,
		NewQuantity: newQuantity,
		UpdateType:  constants.InventoryUpdateManual,
		Reason:      reason,
	}

	sku.Inventory = newQuantity
	sku.Quantity = newQuantity
	if err := s.skuRepo.Update(sku); err != nil {
		return nil, err
	}
	if err := s.inventoryRepo.Create(update); err != nil {
		return nil, err
	}
	return update, nil
}

// ProcessSupplierFeed 处理供应商库存回报：逐条更新 SKU 库存与成本价，
// 未登记编码在条目带 product_id 时自动建 SKU，否则按失败处理；
// 单条失败记录后继续，最后写一条带成功/失败计数的同步日志。
// 成本价变化时按合作方公式立即刷新销售价缓存。
func (s *InventoryUpdateService) ProcessSupplierFeed(input SupplierFeedInput) (*SupplierFeedResult, error) {
	sourcePlatformID := input.SourcePlatformID
	var sourceIDRef *uint
	var platformIDRef *uint
	if sourcePlatformID != 0 {
		sourceIDRef = &sourcePlatformID
		sourcePlatform, err := s.sourcePlatformRepo.GetByID(sourcePlatformID)
		if err != nil {
			return nil, err
		}
		if sourcePlatform != nil && sourcePlatform.PlatformID != 0 {
			platformID := sourcePlatform.PlatformID
			platformIDRef = &platformID
		}
	}

	startedAt := time.Now()
	result := &SupplierFeedResult{}

	for _, item := range input.Items {
		if err := s.applyFeedItem(item, sourceIDRef); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", item.SKUCode, err))
			logger.Warnw("supplier_feed_item_failed", "sku_code", item.SKUCode, "error", err)
			continue
		}
		result.Processed++
	}

	if sourcePlatformID != 0 {
		if err := s.sourcePlatformRepo.MarkSynced(sourcePlatformID, time.Now()); err != nil {
			logger.Warnw("supplier_feed_mark_synced_failed", "source_platform_id", sourcePlatformID, "error", err)
		}
	}

	status := constants.SyncStatusSuccess
	if result.Failed > 0 {
		status = constants.SyncStatusPartial
		if result.Processed == 0 {
			status = constants.SyncStatusError
		}
	}
	completedAt := time.Now()
	syncLog := &models.SyncLog{
		PlatformID:       platformIDRef,
		SyncType:         constants.SyncTypeInventory,
		Status:           status,
		RecordsProcessed: result.Processed,
		ErrorMessage:     strings.Join(result.Errors, "; "),
		StartedAt:        startedAt,
		CompletedAt:      &completedAt,
	}
	if err := s.syncLogRepo.Create(syncLog); err != nil {
		logger.Warnw("supplier_feed_sync_log_failed", "error", err)
	}

	logger.Infow("supplier_feed_processed",
		"source_platform_id", sourcePlatformID,
		"processed", result.Processed,
		"failed", result.Failed,
		"status", status)
	return result, nil
}

func (s *InventoryUpdateService) applyFeedItem(item SupplierFeedItemInput, sourceIDRef *uint) error {
	if item.Quantity < 0 {
		return ErrOrderItemInvalid
	}
	sku, err := s.skuRepo.GetByCode(item.SKUCode)
	if err != nil {
		return err
	}
	if sku == nil {
		if item.ProductID == 0 {
			return ErrNotFound
		}
		return s.createFeedSKU(item, sourceIDRef)
	}

	if sku.Inventory != item.Quantity {
		update := &models.InventoryUpdate{
			SKUID:            sku.ID,
			SourcePlatformID: sourceIDRef,
			OldQuantity:      sku.Inventory,
			NewQuantity:      item.Quantity,
			UpdateType:       constants.InventoryUpdateAutomatic,
			Reason:           "supplier_feed",
		}
		if err := s.inventoryRepo.Create(update); err != nil {
			return err
		}
		sku.Inventory = item.Quantity
		sku.Quantity = item.Quantity
	}

	if item.BasePrice != nil && item.BasePrice.GreaterThan(decimal.Zero) {
		changed := sku.BasePrice == nil || !sku.BasePrice.Decimal.Equal(*item.BasePrice)
		if changed && sku.Product != nil {
			base := models.NewMoneyFromDecimal(*item.BasePrice)
			sku.BasePrice = &base
			sku.CostPrice = &base
			finalPrice, err := s.pricing.CalculateFinalPriceWithFormula(*item.BasePrice, sku.Product.PartnerID, 1)
			if err != nil {
				return err
			}
			price := models.NewMoneyFromDecimal(finalPrice)
			sku.FinalPrice = &price
			sku.Price = &price
		}
	}

	return s.skuRepo.Update(sku)
}

// createFeedSKU 回报带 product_id 且编码未登记时自动建 SKU，
// 初始库存同样落自动类型流水。
func (s *InventoryUpdateService) createFeedSKU(item SupplierFeedItemInput, sourceIDRef *uint) error {
	code := strings.TrimSpace(item.SKUCode)
	if code == "" {
		return ErrSKUCodeRequired
	}
	product, err := s.productRepo.GetByID(item.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}

	sku := &models.SKU{
		ProductID: item.ProductID,
		SKUCode:   code,
		Inventory: item.Quantity,
		Quantity:  item.Quantity,
		IsActive:  true,
	}
	if item.BasePrice != nil && item.BasePrice.GreaterThan(decimal.Zero) {
		base := models.NewMoneyFromDecimal(*item.BasePrice)
		sku.BasePrice = &base
		sku.CostPrice = &base
		finalPrice, err := s.pricing.CalculateFinalPriceWithFormula(*item.BasePrice, product.PartnerID, 1)
		if err != nil {
			return err
		}
		price := models.NewMoneyFromDecimal(finalPrice)
		sku.FinalPrice = &price
		sku.Price = &price
	}
	if err := s.skuRepo.Create(sku); err != nil {
		return err
	}

	update := &models.InventoryUpdate{
		SKUID:            sku.ID,
		SourcePlatformID: sourceIDRef,
		OldQuantity:      0,
		NewQuantity:      item.Quantity,
		UpdateType:       constants.InventoryUpdateAutomatic,
		Reason:           "supplier_feed_new_sku",
	}
	if err := s.inventoryRepo.Create(update); err != nil {
		return err
	}
	logger.Infow("supplier_feed_sku_created", "sku_code", sku.SKUCode, "product_id", item.ProductID)
	return nil
}

// List 获取库存流水列表
func (s *InventoryUpdateService) List(filter repository.InventoryUpdateListFilter) ([]models.InventoryUpdate, int64, error) {
	return s.inventoryRepo.List(filter)
}

// ListRecent 获取最近的库存流水
func (s *InventoryUpdateService) ListRecent(limit int) ([]models.InventoryUpdate, error) {
	return s.inventoryRepo.ListRecent(limit)
}
