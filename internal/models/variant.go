package models

import (
	"time"
)

// Variant 商品规格表（size/color 等维度取值）
type Variant struct {
	ID        uint      `gorm:"primarykey" json:"id"`                   // 主键
	ProductID uint      `gorm:"not null;index" json:"product_id"`       // 商品ID
	Type      string    `gorm:"type:varchar(100);not null" json:"type"` // 规格维度（size/color/material）
	Value     string    `gorm:"type:varchar(255);not null" json:"value"` // 规格取值
	CreatedAt time.Time `gorm:"index" json:"created_at"`                // 创建时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (Variant) TableName() string {
	return "variants"
}
