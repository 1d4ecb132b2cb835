package service

import (
	"testing"

	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/models"
	"github.com/anbar-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newInventoryUpdateServiceForTest(db *gorm.DB) *InventoryUpdateService {
	return NewInventoryUpdateService(
		repository.NewSKURepository(db),
		repository.NewProductRepository(db),
		repository.NewInventoryUpdateRepository(db),
		repository.NewSourcePlatformRepository(db),
		repository.NewSyncLogRepository(db),
		newPricingServiceForTest(db),
	)
}

func seedTestSourcePlatform(t *testing.T, db *gorm.DB) *models.SourcePlatform {
	t.Helper()
	platform := &models.Platform{
		Name:     "feed-gateway",
		Type:     constants.PlatformTypeSource,
		IsActive: true,
	}
	if err := db.Create(platform).Error; err != nil {
		t.Fatalf("create platform failed: %v", err)
	}
	source := &models.SourcePlatform{
		UserID:     1,
		PlatformID: platform.ID,
		IsActive:   true,
	}
	if err := db.Create(source).Error; err != nil {
		t.Fatalf("create source platform failed: %v", err)
	}
	return source
}

func TestSetQuantityWritesAuditTrail(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newInventoryUpdateServiceForTest(db)
	partner := seedTestPartner(t, db, 0, 0, 0)
	product := seedTestProduct(t, db, partner.ID, "")
	sku := seedTestSKU(t, db, product.ID, "INV-SET-1", 100000, 10)

	update, err := svc.SetQuantity(sku.ID, 25, "stocktake")
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if update.OldQuantity != 10 || update.NewQuantity != 25 {
		t.Fatalf("unexpected snapshot: %+v", update)
	}
	if update.UpdateType != constants.InventoryUpdateManual {
		t.Fatalf("expected manual update type, got %s", update.UpdateType)
	}

	var reloaded models.SKU
	if err := db.First(&reloaded, sku.ID).Error; err != nil {
		t.Fatalf("reload sku failed: %v", err)
	}
	if reloaded.Inventory != 25 || reloaded.Quantity != 25 {
		t.Fatalf("expected inventory 25 with legacy alias synced, got %d/%d", reloaded.Inventory, reloaded.Quantity)
	}
}

func TestSetQuantityRejectsNegative(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newInventoryUpdateServiceForTest(db)

	if _, err := svc.SetQuantity(1, -5, ""); err != ErrOrderItemInvalid {
		t.Fatalf("expected ErrOrderItemInvalid, got %v", err)
	}
}

func TestProcessSupplierFeedPartialFailure(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newInventoryUpdateServiceForTest(db)
	partner := seedTestPartner(t, db, 20, 5000, 1000)
	product := seedTestProduct(t, db, partner.ID, "")
	sku := seedTestSKU(t, db, product.ID, "FEED-OK-1", 98000, 10)
	source := seedTestSourcePlatform(t, db)

	result, err := svc.ProcessSupplierFeed(SupplierFeedInput{
		SourcePlatformID: source.ID,
		Items: []SupplierFeedItemInput{
			{SKUCode: "FEED-OK-1", Quantity: 40},
			{SKUCode: "FEED-MISSING-1", Quantity: 5},
		},
	})
	if err != nil {
		t.Fatalf("process feed failed: %v", err)
	}
	if result.Processed != 1 || result.Failed != 1 {
		t.Fatalf("expected 1 processed / 1 failed, got %+v", result)
	}

	var reloaded models.SKU
	if err := db.First(&reloaded, sku.ID).Error; err != nil {
		t.Fatalf("reload sku failed: %v", err)
	}
	if reloaded.Inventory != 40 {
		t.Fatalf("expected inventory 40, got %d", reloaded.Inventory)
	}

	// 部分失败写 partial 状态的同步日志
	var syncLog models.SyncLog
	if err := db.Order("id desc").First(&syncLog).Error; err != nil {
		t.Fatalf("load sync log failed: %v", err)
	}
	if syncLog.Status != constants.SyncStatusPartial {
		t.Fatalf("expected partial status, got %s", syncLog.Status)
	}
	if syncLog.RecordsProcessed != 1 {
		t.Fatalf("expected 1 record processed, got %d", syncLog.RecordsProcessed)
	}
	if syncLog.PlatformID == nil || *syncLog.PlatformID != source.PlatformID {
		t.Fatalf("expected sync log bound to platform %d, got %+v", source.PlatformID, syncLog.PlatformID)
	}

	// 成功路径更新 last_sync
	var reloadedSource models.SourcePlatform
	if err := db.First(&reloadedSource, source.ID).Error; err != nil {
		t.Fatalf("reload source platform failed: %v", err)
	}
	if reloadedSource.LastSync == nil {
		t.Fatalf("expected last sync timestamp set")
	}
}

func TestProcessSupplierFeedRefreshesPrice(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newInventoryUpdateServiceForTest(db)
	partner := seedTestPartner(t, db, 20, 5000, 1000)
	product := seedTestProduct(t, db, partner.ID, "")
	sku := seedTestSKU(t, db, product.ID, "FEED-PRC-1", 98000, 10)

	newBase := decimal.NewFromInt(125000)
	result, err := svc.ProcessSupplierFeed(SupplierFeedInput{
		Items: []SupplierFeedItemInput{
			{SKUCode: "FEED-PRC-1", Quantity: 10, BasePrice: &newBase},
		},
	})
	if err != nil {
		t.Fatalf("process feed failed: %v", err)
	}
	if result.Processed != 1 {
		t.Fatalf("expected 1 processed, got %+v", result)
	}

	// 成本价变更立即刷新销售价缓存：125000*1.20+5000 = 155000
	var reloaded models.SKU
	if err := db.First(&reloaded, sku.ID).Error; err != nil {
		t.Fatalf("reload sku failed: %v", err)
	}
	if reloaded.BasePrice == nil || !reloaded.BasePrice.Decimal.Equal(newBase) {
		t.Fatalf("expected base price updated, got %+v", reloaded.BasePrice)
	}
	if reloaded.FinalPrice == nil || !reloaded.FinalPrice.Decimal.Equal(decimal.NewFromInt(155000)) {
		t.Fatalf("expected final price 155000, got %+v", reloaded.FinalPrice)
	}
}

func TestProcessSupplierFeedCreatesSKUWithProductID(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newInventoryUpdateServiceForTest(db)
	partner := seedTestPartner(t, db, 20, 5000, 1000)
	product := seedTestProduct(t, db, partner.ID, "")
	source := seedTestSourcePlatform(t, db)

	base := decimal.NewFromInt(98000)
	result, err := svc.ProcessSupplierFeed(SupplierFeedInput{
		SourcePlatformID: source.ID,
		Items: []SupplierFeedItemInput{
			{SKUCode: "FEED-NEW-1", ProductID: product.ID, Quantity: 30, BasePrice: &base},
		},
	})
	if err != nil {
		t.Fatalf("process feed failed: %v", err)
	}
	if result.Processed != 1 || result.Failed != 0 {
		t.Fatalf("expected 1 processed, got %+v", result)
	}

	var created models.SKU
	if err := db.Where("sku_code = ?", "FEED-NEW-1").First(&created).Error; err != nil {
		t.Fatalf("load created sku failed: %v", err)
	}
	if created.ProductID != product.ID || created.Inventory != 30 || !created.IsActive {
		t.Fatalf("unexpected created sku: %+v", created)
	}
	// 新建同样走公式：98000*1.20+5000 = 122600 -> 尾数归一到 123000
	if created.FinalPrice == nil || !created.FinalPrice.Decimal.Equal(decimal.NewFromInt(123000)) {
		t.Fatalf("expected final price 123000, got %+v", created.FinalPrice)
	}

	// 初始库存落自动类型流水
	var update models.InventoryUpdate
	if err := db.Where("sku_id = ?", created.ID).First(&update).Error; err != nil {
		t.Fatalf("load inventory update failed: %v", err)
	}
	if update.OldQuantity != 0 || update.NewQuantity != 30 || update.UpdateType != constants.InventoryUpdateAutomatic {
		t.Fatalf("unexpected inventory update: %+v", update)
	}
	if update.SourcePlatformID == nil || *update.SourcePlatformID != source.ID {
		t.Fatalf("expected update bound to source platform %d, got %+v", source.ID, update.SourcePlatformID)
	}
}

func TestProcessSupplierFeedCreateRequiresKnownProduct(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newInventoryUpdateServiceForTest(db)

	result, err := svc.ProcessSupplierFeed(SupplierFeedInput{
		Items: []SupplierFeedItemInput{
			{SKUCode: "FEED-ORPHAN-1", ProductID: 9999, Quantity: 5},
		},
	})
	if err != nil {
		t.Fatalf("process feed failed: %v", err)
	}
	if result.Processed != 0 || result.Failed != 1 {
		t.Fatalf("expected item failed on unknown product, got %+v", result)
	}
}

func TestProcessSupplierFeedAllFailed(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newInventoryUpdateServiceForTest(db)

	result, err := svc.ProcessSupplierFeed(SupplierFeedInput{
		Items: []SupplierFeedItemInput{
			{SKUCode: "NO-SUCH-1", Quantity: 1},
			{SKUCode: "NO-SUCH-2", Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("process feed failed: %v", err)
	}
	if result.Processed != 0 || result.Failed != 2 {
		t.Fatalf("expected all failed, got %+v", result)
	}

	var syncLog models.SyncLog
	if err := db.Order("id desc").First(&syncLog).Error; err != nil {
		t.Fatalf("load sync log failed: %v", err)
	}
	if syncLog.Status != constants.SyncStatusError {
		t.Fatalf("expected error status, got %s", syncLog.Status)
	}
}
