package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                     // 主键
	PartnerID   uint           `gorm:"not null;index" json:"partner_id"`         // 合作方ID
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`   // 名称
	Description string         `gorm:"type:text" json:"description"`             // 描述
	Category    *string        `gorm:"type:varchar(255);index" json:"category"`  // 分类（自由文本，规则过滤用，可空）
	Brand       string         `gorm:"type:varchar(255)" json:"brand"`           // 品牌
	Images      StringArray    `gorm:"type:json" json:"images"`                  // 图片数组
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`      // 是否上架
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                               // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间

	Partner  *Partner  `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`  // 关联合作方
	Variants []Variant `gorm:"foreignKey:ProductID" json:"variants,omitempty"` // 规格列表
	SKUs     []SKU     `gorm:"foreignKey:ProductID" json:"skus,omitempty"`     // SKU 列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
