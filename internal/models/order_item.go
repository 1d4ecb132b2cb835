package models

import (
	"time"
)

// OrderItem 订单明细表
type OrderItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID    uint      `gorm:"not null;index" json:"order_id"`                           // 订单ID
	SKUID      uint      `gorm:"column:sku_id;not null;index" json:"sku_id"`               // SKU ID
	Quantity   int       `gorm:"not null" json:"quantity"`                                 // 数量
	UnitPrice  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 成交单价
	TotalPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 行小计
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                  // 创建时间

	SKU *SKU `gorm:"foreignKey:SKUID" json:"sku,omitempty"` // 关联 SKU
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
