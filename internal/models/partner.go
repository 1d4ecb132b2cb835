package models

import (
	"time"

	"gorm.io/gorm"
)

// Partner 合作方表（供应商/分销商），携带定价公式与授信信息
type Partner struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                          // 主键
	UserID          uint           `gorm:"not null;index" json:"user_id"`                                 // 归属用户ID
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`                        // 名称
	Type            string         `gorm:"type:varchar(50);not null" json:"type"`                         // 类型（supplier/distributor/...）
	ContactEmail    string         `gorm:"type:varchar(255)" json:"contact_email"`                        // 联系邮箱
	ContactPhone    string         `gorm:"type:varchar(50)" json:"contact_phone"`                         // 联系电话
	Address         string         `gorm:"type:text" json:"address"`                                      // 地址
	Description     string         `gorm:"type:text" json:"description"`                                  // 描述
	PlatformName    string         `gorm:"type:varchar(100)" json:"platform_name"`                        // 所在平台（telegram/instagram/...）
	PlatformAddress string         `gorm:"type:varchar(500)" json:"platform_address"`                     // 平台店铺地址
	CreditLimit     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"credit_limit"`     // 授信额度（0 表示不限制）
	CurrentDebt     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"current_debt"`     // 当前欠款
	PaymentTerms    string         `gorm:"type:varchar(100)" json:"payment_terms"`                        // 付款条件
	SettlementDays  int            `gorm:"not null;default:30" json:"settlement_period_days"`             // 结算周期（天）
	ProfitPct       Money          `gorm:"column:profit_percentage;type:decimal(20,2);not null;default:0" json:"profit_percentage"` // 利润百分比（20 表示 20%）
	FixedAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"fixed_amount"`     // 固定加价金额
	PriceEnding     int            `gorm:"column:price_ending_digit;not null;default:0" json:"price_ending_digit"` // 价格尾数（0 表示关闭尾数归一）
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`                           // 是否启用
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`            // 归属用户
	Products     []Product     `gorm:"foreignKey:PartnerID" json:"products,omitempty"`     // 名下商品
	PricingRules []PricingRule `gorm:"foreignKey:PartnerID" json:"pricing_rules,omitempty"` // 定价规则
	Settlements  []Settlement  `gorm:"foreignKey:PartnerID" json:"settlements,omitempty"`  // 结算记录
}

// TableName 指定表名
func (Partner) TableName() string {
	return "partners"
}
