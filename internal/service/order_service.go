package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/logger"
	"github.com/anbar-next/internal/models"
	"github.com/anbar-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单业务服务。下单、扣库存、写流水在同一事务内完成，
// 任一明细库存不足则整单回滚。
type OrderService struct {
	orderRepo     repository.OrderRepository
	skuRepo       repository.SKURepository
	inventoryRepo repository.InventoryUpdateRepository
	pricing       *PricingService
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, skuRepo repository.SKURepository, inventoryRepo repository.InventoryUpdateRepository, pricing *PricingService) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		skuRepo:       skuRepo,
		inventoryRepo: inventoryRepo,
		pricing:       pricing,
	}
}

// CreateOrderItemInput 下单明细输入
type CreateOrderItemInput struct {
	SKUID     uint
	Quantity  int
	UnitPrice *decimal.Decimal // 成交价覆盖，空则取 SKU 销售价缓存或实时公式价
}

// CreateOrderInput 下单输入
type CreateOrderInput struct {
	PlatformID   *uint
	CustomerInfo map[string]interface{}
	Items        []CreateOrderItemInput
}

// CreateOrder 创建订单
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrOrderEmptyItems
	}
	for _, item := range input.Items {
		if item.SKUID == 0 || item.Quantity <= 0 {
			return nil, ErrOrderItemInvalid
		}
	}

	order := &models.Order{
		OrderNo:    generateOrderNo(),
		PlatformID: input.PlatformID,
		Status:     constants.OrderStatusPending,
	}
	if input.CustomerInfo != nil {
		order.CustomerInfo = models.JSON(input.CustomerInfo)
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		skuRepo := s.skuRepo.WithTx(tx)
		inventoryRepo := s.inventoryRepo.WithTx(tx)

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(input.Items))

		for _, itemInput := range input.Items {
			sku, err := skuRepo.GetByIDWithPartner(itemInput.SKUID)
			if err != nil {
				return err
			}
			if sku == nil {
				return ErrNotFound
			}

			unitPrice, err := s.resolveUnitPrice(sku, itemInput)
			if err != nil {
				return err
			}

			affected, err := skuRepo.AdjustInventory(sku.ID, -itemInput.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrInsufficientStock
			}

			update := &models.InventoryUpdate{
				SKUID:       sku.ID,
				OldQuantity: sku.Inventory,
				NewQuantity: sku.Inventory - itemInput.Quantity,
				UpdateType:  constants.InventoryUpdateOrderPlaced,
				Reason:      order.OrderNo,
			}
			if err := inventoryRepo.Create(update); err != nil {
				return err
			}

			lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(itemInput.Quantity)))
			items = append(items, models.OrderItem{
				SKUID:      sku.ID,
				Quantity:   itemInput.Quantity,
				UnitPrice:  models.NewMoneyFromDecimal(unitPrice),
				TotalPrice: models.NewMoneyFromDecimal(lineTotal),
			})
			total = total.Add(lineTotal)
		}

		order.TotalAmount = models.NewMoneyFromDecimal(total)
		order.Items = items
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_created", "order_no", order.OrderNo, "total_amount", order.TotalAmount.String(), "items", len(order.Items))
	return order, nil
}

// resolveUnitPrice 确定成交单价：调用方覆盖价优先，其次销售价缓存，
// 缓存缺失时用成本价按合作方公式实时计算。
func (s *OrderService) resolveUnitPrice(sku *models.SKU, input CreateOrderItemInput) (decimal.Decimal, error) {
	if input.UnitPrice != nil {
		if input.UnitPrice.LessThan(decimal.Zero) {
			return decimal.Zero, ErrOrderItemInvalid
		}
		return input.UnitPrice.Round(2), nil
	}
	if sku.FinalPrice != nil && sku.FinalPrice.IsPositive() {
		return sku.FinalPrice.Decimal, nil
	}
	if sku.BasePrice != nil && sku.Product != nil {
		return s.pricing.CalculateFinalPriceWithFormula(sku.BasePrice.Decimal, sku.Product.PartnerID, input.Quantity)
	}
	return decimal.Zero, ErrOrderItemInvalid
}

// CancelOrder 取消订单并回补库存
func (s *OrderService) CancelOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.Status != constants.OrderStatusPending && order.Status != constants.OrderStatusConfirmed {
		return nil, ErrOrderNotCancelable
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		skuRepo := s.skuRepo.WithTx(tx)
		inventoryRepo := s.inventoryRepo.WithTx(tx)

		for _, item := range order.Items {
			sku, err := skuRepo.GetByID(item.SKUID)
			if err != nil {
				return err
			}
			if sku == nil {
				continue
			}
			if _, err := skuRepo.AdjustInventory(sku.ID, item.Quantity); err != nil {
				return err
			}
			update := &models.InventoryUpdate{
				SKUID:       sku.ID,
				OldQuantity: sku.Inventory,
				NewQuantity: sku.Inventory + item.Quantity,
				UpdateType:  constants.InventoryUpdateOrderCancel,
				Reason:      order.OrderNo,
			}
			if err := inventoryRepo.Create(update); err != nil {
				return err
			}
		}

		order.Status = constants.OrderStatusCanceled
		return orderRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_canceled", "order_no", order.OrderNo)
	return order, nil
}

// UpdateStatus 更新订单状态（只允许预定义流转）
func (s *OrderService) UpdateStatus(id uint, target string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if target == constants.OrderStatusCanceled {
		return s.CancelOrder(id)
	}
	if !isOrderStatusTransitionAllowed(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}
	order.Status = target
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID 获取订单详情
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// GetByOrderNo 根据订单号获取订单
func (s *OrderService) GetByOrderNo(orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// List 获取订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

func isOrderStatusTransitionAllowed(current, target string) bool {
	transitions := map[string][]string{
		constants.OrderStatusPending:   {constants.OrderStatusConfirmed},
		constants.OrderStatusConfirmed: {constants.OrderStatusShipped},
		constants.OrderStatusShipped:   {constants.OrderStatusDelivered},
	}
	for _, allowed := range transitions[current] {
		if allowed == target {
			return true
		}
	}
	return false
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	randPart := randNumeric(6)
	return fmt.Sprintf("AN%s%s", now, randPart)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
