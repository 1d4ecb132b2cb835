package constants

// 定价规则类型常量
const (
	RuleTypePercentage  = "percentage"
	RuleTypeFixedAmount = "fixed_amount"
	RuleTypeCustom      = "custom"
)

// 定价策略常量（规则路径 / 公式路径，两条路径互斥，不做叠加）
const (
	PricingStrategyRuleBased    = "rule_based"
	PricingStrategyFormulaBased = "formula_based"
)

// 合作方类型常量
const (
	PartnerTypeSupplier     = "supplier"
	PartnerTypeDistributor  = "distributor"
	PartnerTypeRetailer     = "retailer"
	PartnerTypeManufacturer = "manufacturer"
	PartnerTypeWholesaler   = "wholesaler"
)

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

// 库存变更类型常量
const (
	InventoryUpdateManual      = "manual"
	InventoryUpdateAutomatic   = "automatic"
	InventoryUpdateOrderPlaced = "order_placed"
	InventoryUpdateOrderCancel = "order_canceled"
)

// 平台类型常量
const (
	PlatformTypeSource = "source"
	PlatformTypeOutput = "output"
)

// 同步类型与状态常量
const (
	SyncTypeInventory = "inventory"
	SyncTypePrice     = "price"
	SyncTypeProduct   = "product"

	SyncStatusSuccess = "success"
	SyncStatusError   = "error"
	SyncStatusPartial = "partial"
)

// 异步任务类型常量
const (
	TaskPriceRecompute = "pricing:recompute_final_prices"
	TaskSupplierFeed   = "inventory:supplier_feed"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 库存告警阈值
const (
	LowStockThreshold = 10
)
