package models

import (
	"time"
)

// PricingRule 定价规则表（合作方维度，按优先级折叠应用）
// 软删除仅翻转 is_active，规则一旦被引用不做物理删除
type PricingRule struct {
	ID             uint       `gorm:"primarykey" json:"id"`                                    // 主键
	PartnerID      uint       `gorm:"not null;index" json:"partner_id"`                        // 合作方ID
	RuleName       string     `gorm:"type:varchar(255);not null" json:"rule_name"`             // 规则名称
	RuleType       string     `gorm:"type:varchar(50);not null" json:"rule_type"`              // 类型（percentage/fixed_amount/custom）
	RuleValue      *Money     `gorm:"type:decimal(20,2)" json:"rule_value"`                    // 数值（percentage/fixed_amount 必填，可为负表示折扣）
	MinQuantity    int        `gorm:"not null;default:1" json:"min_quantity"`                  // 最小数量（含）
	MaxQuantity    *int       `gorm:"" json:"max_quantity"`                                    // 最大数量（含，空为不限）
	CategoryFilter *string    `gorm:"type:varchar(255)" json:"category_filter"`                // 分类过滤（精确匹配，空为不限）
	ProductFilter  JSON       `gorm:"type:json" json:"product_filter"`                         // 商品过滤（预留）
	Priority       int        `gorm:"not null;default:0;index" json:"priority"`                // 优先级（大者先应用）
	IsActive       bool       `gorm:"not null;default:true;index" json:"is_active"`            // 是否启用
	ValidFrom      time.Time  `gorm:"index" json:"valid_from"`                                 // 生效时间（含）
	ValidUntil     *time.Time `gorm:"index" json:"valid_until"`                                // 失效时间（含，空为长期有效）
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt      time.Time  `json:"updated_at"`                                              // 更新时间

	Partner *Partner `gorm:"foreignKey:PartnerID" json:"partner,omitempty"` // 关联合作方
}

// TableName 指定表名
func (PricingRule) TableName() string {
	return "pricing_rules"
}
