package service

import (
	"strings"
	"testing"

	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/models"
	"github.com/anbar-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newOrderServiceForTest(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewSKURepository(db),
		repository.NewInventoryUpdateRepository(db),
		newPricingServiceForTest(db),
	)
}

func TestCreateOrderDeductsInventory(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newOrderServiceForTest(db)
	partner := seedTestPartner(t, db, 0, 0, 0)
	product := seedTestProduct(t, db, partner.ID, "")
	sku := seedTestSKU(t, db, product.ID, "ORD-SKU-1", 100000, 10)

	final := models.NewMoneyFromInt(120000)
	sku.FinalPrice = &final
	if err := db.Save(sku).Error; err != nil {
		t.Fatalf("update sku failed: %v", err)
	}

	order, err := svc.CreateOrder(CreateOrderInput{
		Items: []CreateOrderItemInput{{SKUID: sku.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if !strings.HasPrefix(order.OrderNo, "AN") {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	if !order.TotalAmount.Decimal.Equal(decimal.NewFromInt(360000)) {
		t.Fatalf("expected total 360000, got %s", order.TotalAmount.String())
	}
	if len(order.Items) != 1 || !order.Items[0].UnitPrice.Decimal.Equal(decimal.NewFromInt(120000)) {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}

	var reloaded models.SKU
	if err := db.First(&reloaded, sku.ID).Error; err != nil {
		t.Fatalf("reload sku failed: %v", err)
	}
	if reloaded.Inventory != 7 {
		t.Fatalf("expected inventory 7, got %d", reloaded.Inventory)
	}

	var updates []models.InventoryUpdate
	if err := db.Where("sku_id = ?", sku.ID).Find(&updates).Error; err != nil {
		t.Fatalf("load inventory updates failed: %v", err)
	}
	if len(updates) != 1 || updates[0].UpdateType != constants.InventoryUpdateOrderPlaced {
		t.Fatalf("unexpected inventory updates: %+v", updates)
	}
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newOrderServiceForTest(db)
	partner := seedTestPartner(t, db, 0, 0, 0)
	product := seedTestProduct(t, db, partner.ID, "")
	okSKU := seedTestSKU(t, db, product.ID, "ORD-OK-1", 100000, 10)
	lowSKU := seedTestSKU(t, db, product.ID, "ORD-LOW-1", 100000, 2)
	for _, sku := range []*models.SKU{okSKU, lowSKU} {
		final := models.NewMoneyFromInt(120000)
		sku.FinalPrice = &final
		if err := db.Save(sku).Error; err != nil {
			t.Fatalf("update sku failed: %v", err)
		}
	}

	_, err := svc.CreateOrder(CreateOrderInput{
		Items: []CreateOrderItemInput{
			{SKUID: okSKU.ID, Quantity: 5},
			{SKUID: lowSKU.ID, Quantity: 5},
		},
	})
	if err != ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// 整单回滚：第一条明细的扣减也要还原
	var reloaded models.SKU
	if err := db.First(&reloaded, okSKU.ID).Error; err != nil {
		t.Fatalf("reload sku failed: %v", err)
	}
	if reloaded.Inventory != 10 {
		t.Fatalf("expected inventory restored to 10, got %d", reloaded.Inventory)
	}

	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no persisted orders, got %d", count)
	}
}

func TestCreateOrderResolvesPriceFromFormula(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newOrderServiceForTest(db)
	partner := seedTestPartner(t, db, 20, 5000, 1000)
	product := seedTestProduct(t, db, partner.ID, "")
	sku := seedTestSKU(t, db, product.ID, "ORD-FRM-1", 98000, 10)

	// 无销售价缓存时按公式实时计算：98000*1.20+5000 -> 123000
	order, err := svc.CreateOrder(CreateOrderInput{
		Items: []CreateOrderItemInput{{SKUID: sku.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if !order.Items[0].UnitPrice.Decimal.Equal(decimal.NewFromInt(123000)) {
		t.Fatalf("expected unit price 123000, got %s", order.Items[0].UnitPrice.String())
	}
}

func TestCreateOrderValidatesItems(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newOrderServiceForTest(db)

	if _, err := svc.CreateOrder(CreateOrderInput{}); err != ErrOrderEmptyItems {
		t.Fatalf("expected ErrOrderEmptyItems, got %v", err)
	}
	if _, err := svc.CreateOrder(CreateOrderInput{
		Items: []CreateOrderItemInput{{SKUID: 1, Quantity: 0}},
	}); err != ErrOrderItemInvalid {
		t.Fatalf("expected ErrOrderItemInvalid, got %v", err)
	}
}

func TestCancelOrderRestocks(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newOrderServiceForTest(db)
	partner := seedTestPartner(t, db, 0, 0, 0)
	product := seedTestProduct(t, db, partner.ID, "")
	sku := seedTestSKU(t, db, product.ID, "ORD-CXL-1", 100000, 10)
	final := models.NewMoneyFromInt(120000)
	sku.FinalPrice = &final
	if err := db.Save(sku).Error; err != nil {
		t.Fatalf("update sku failed: %v", err)
	}

	order, err := svc.CreateOrder(CreateOrderInput{
		Items: []CreateOrderItemInput{{SKUID: sku.ID, Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	canceled, err := svc.CancelOrder(order.ID)
	if err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	if canceled.Status != constants.OrderStatusCanceled {
		t.Fatalf("expected canceled status, got %s", canceled.Status)
	}

	var reloaded models.SKU
	if err := db.First(&reloaded, sku.ID).Error; err != nil {
		t.Fatalf("reload sku failed: %v", err)
	}
	if reloaded.Inventory != 10 {
		t.Fatalf("expected inventory restored to 10, got %d", reloaded.Inventory)
	}

	// 再次取消应拒绝
	if _, err := svc.CancelOrder(order.ID); err != ErrOrderNotCancelable {
		t.Fatalf("expected ErrOrderNotCancelable, got %v", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newOrderServiceForTest(db)
	partner := seedTestPartner(t, db, 0, 0, 0)
	product := seedTestProduct(t, db, partner.ID, "")
	sku := seedTestSKU(t, db, product.ID, "ORD-ST-1", 100000, 10)
	final := models.NewMoneyFromInt(120000)
	sku.FinalPrice = &final
	if err := db.Save(sku).Error; err != nil {
		t.Fatalf("update sku failed: %v", err)
	}

	order, err := svc.CreateOrder(CreateOrderInput{
		Items: []CreateOrderItemInput{{SKUID: sku.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// pending 不能直接 shipped
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusShipped); err != ErrOrderStatusInvalid {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}

	for _, target := range []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
	} {
		updated, err := svc.UpdateStatus(order.ID, target)
		if err != nil {
			t.Fatalf("transition to %s failed: %v", target, err)
		}
		if updated.Status != target {
			t.Fatalf("expected status %s, got %s", target, updated.Status)
		}
	}

	// 已送达订单不可取消
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusCanceled); err != ErrOrderNotCancelable {
		t.Fatalf("expected ErrOrderNotCancelable after delivery, got %v", err)
	}
}

func TestGenerateOrderNo(t *testing.T) {
	no := generateOrderNo()
	if !strings.HasPrefix(no, "AN") {
		t.Fatalf("unexpected prefix: %s", no)
	}
	if len(no) != 2+14+6 {
		t.Fatalf("unexpected order no length: %s", no)
	}
}
