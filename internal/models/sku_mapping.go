package models

import (
	"time"
)

// SKUMapping SKU 与外部平台的映射表
type SKUMapping struct {
	ID                uint      `gorm:"primarykey" json:"id"`                                         // 主键
	SKUID             uint      `gorm:"column:sku_id;not null;index" json:"sku_id"`                   // SKU ID
	PlatformID        uint      `gorm:"not null;index" json:"platform_id"`                            // 平台ID
	ExternalSKU       string    `gorm:"type:varchar(255)" json:"external_sku"`                        // 外部 SKU 标识
	ExternalProductID string    `gorm:"type:varchar(255)" json:"external_product_id"`                 // 外部商品标识
	PriceMultiplier   Money     `gorm:"type:decimal(20,2);not null;default:1" json:"price_multiplier"` // 平台价格系数
	CustomPrice       *Money    `gorm:"type:decimal(20,2)" json:"custom_price"`                       // 平台自定义价（优先于系数）
	IsActive          bool      `gorm:"default:true;index" json:"is_active"`                          // 是否启用
	CreatedAt         time.Time `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt         time.Time `json:"updated_at"`                                                   // 更新时间

	SKU      *SKU      `gorm:"foreignKey:SKUID" json:"sku,omitempty"`           // 关联 SKU
	Platform *Platform `gorm:"foreignKey:PlatformID" json:"platform,omitempty"` // 关联平台
}

// TableName 指定表名
func (SKUMapping) TableName() string {
	return "sku_mappings"
}
