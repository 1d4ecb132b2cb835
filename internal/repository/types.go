package repository

import "time"

// PartnerListFilter 查询合作方列表的过滤条件
type PartnerListFilter struct {
	Page       int
	PageSize   int
	UserID     uint
	Type       string
	Search     string
	OnlyActive bool
}

// PricingRuleListFilter 查询定价规则列表的过滤条件
type PricingRuleListFilter struct {
	Page       int
	PageSize   int
	PartnerID  uint
	RuleType   string
	OnlyActive bool
}

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page        int
	PageSize    int
	PartnerID   uint
	Category    string
	Search      string
	OnlyActive  bool
	WithPartner bool
}

// SKUListFilter 查询 SKU 列表的过滤条件
type SKUListFilter struct {
	Page        int
	PageSize    int
	ProductID   uint
	OnlyActive  bool
	WithProduct bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	PlatformID  uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// InventoryUpdateListFilter 查询库存流水的过滤条件
type InventoryUpdateListFilter struct {
	Page        int
	PageSize    int
	SKUID       uint
	UpdateType  string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// SyncLogListFilter 查询同步日志的过滤条件
type SyncLogListFilter struct {
	Page       int
	PageSize   int
	PlatformID uint
	SyncType   string
	Status     string
}
