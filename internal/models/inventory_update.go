package models

import (
	"time"
)

// InventoryUpdate 库存变更流水表
type InventoryUpdate struct {
	ID               uint      `gorm:"primarykey" json:"id"`                             // 主键
	SKUID            uint      `gorm:"column:sku_id;not null;index" json:"sku_id"`       // SKU ID
	SourcePlatformID *uint     `gorm:"index" json:"source_platform_id"`                  // 来源平台ID（手动变更为空）
	OldQuantity      int       `gorm:"not null;default:0" json:"old_quantity"`           // 变更前数量
	NewQuantity      int       `gorm:"not null;default:0" json:"new_quantity"`           // 变更后数量
	UpdateType       string    `gorm:"type:varchar(50);not null;index" json:"update_type"` // 变更类型（manual/automatic/order_placed）
	Reason           string    `gorm:"type:text" json:"reason"`                          // 变更原因
	CreatedAt        time.Time `gorm:"index" json:"created_at"`                          // 创建时间

	SKU            *SKU            `gorm:"foreignKey:SKUID" json:"sku,omitempty"`                         // 关联 SKU
	SourcePlatform *SourcePlatform `gorm:"foreignKey:SourcePlatformID" json:"source_platform,omitempty"` // 来源平台
}

// TableName 指定表名
func (InventoryUpdate) TableName() string {
	return "inventory_updates"
}
