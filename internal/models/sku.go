package models

import (
	"time"

	"gorm.io/gorm"
)

// SKU 库存单元表
// final_price 是派生缓存：任何时刻都应能用合作方当前公式对 base_price 重算得到，
// 合作方公式或 base_price 变更后由批量重算刷新，过期值可接受
type SKU struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                // 主键
	ProductID  uint           `gorm:"not null;index" json:"product_id"`                    // 商品ID
	SKUCode    string         `gorm:"column:sku_code;type:varchar(255);uniqueIndex;not null" json:"sku_code"` // SKU编码（全局唯一）
	Size       string         `gorm:"type:varchar(100)" json:"size"`                       // 尺寸
	Color      string         `gorm:"type:varchar(100)" json:"color"`                      // 颜色
	BasePrice  *Money         `gorm:"type:decimal(20,2)" json:"base_price"`                // 供应商成本价
	FinalPrice *Money         `gorm:"type:decimal(20,2)" json:"final_price"`               // 计算后的销售价（派生缓存）
	Inventory  int            `gorm:"not null;default:0" json:"inventory"`                 // 库存数量
	Link       string         `gorm:"type:varchar(500)" json:"link"`                       // 商品链接
	Quantity   int            `gorm:"not null;default:0" json:"quantity"`                  // 库存数量（历史别名字段）
	Price      *Money         `gorm:"type:decimal(20,2)" json:"price"`                     // 销售价（历史别名字段）
	CostPrice  *Money         `gorm:"type:decimal(20,2)" json:"cost_price"`                // 成本价（历史别名字段）
	Weight     *Money         `gorm:"type:decimal(20,2)" json:"weight"`                    // 重量
	Dimensions JSON           `gorm:"type:json" json:"dimensions"`                         // 尺寸信息（长宽高）
	IsActive   bool           `gorm:"default:true;index" json:"is_active"`                 // 是否启用
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间

	Product  *Product     `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品（含合作方）
	Mappings []SKUMapping `gorm:"foreignKey:SKUID" json:"mappings,omitempty"`    // 平台映射
}

// TableName 指定表名
func (SKU) TableName() string {
	return "skus"
}
