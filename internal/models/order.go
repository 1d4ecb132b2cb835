package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo      string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_no"`     // 订单号
	PlatformID   *uint          `gorm:"index" json:"platform_id"`                                  // 下单平台ID（可空）
	CustomerInfo JSON           `gorm:"type:json" json:"customer_info"`                            // 客户信息
	TotalAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单总额
	Status       string         `gorm:"type:varchar(50);not null;default:'pending';index" json:"status"` // 状态
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Platform *Platform   `gorm:"foreignKey:PlatformID" json:"platform,omitempty"` // 下单平台
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`       // 订单明细
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
