package models

import (
	"time"
)

// Settlement 合作方结算记录表（欠款快照随结算一并落库）
type Settlement struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                        // 主键
	PartnerID     uint      `gorm:"not null;index" json:"partner_id"`                            // 合作方ID
	Amount        Money     `gorm:"type:decimal(20,2);not null" json:"amount"`                   // 结算金额
	PreviousDebt  Money     `gorm:"type:decimal(20,2);not null" json:"previous_debt"`            // 结算前欠款
	RemainingDebt Money     `gorm:"type:decimal(20,2);not null" json:"remaining_debt"`           // 结算后欠款
	Reason        string    `gorm:"type:text" json:"reason"`                                     // 结算原因
	SettledBy     string    `gorm:"type:varchar(255)" json:"settled_by"`                         // 操作者（用户/系统）
	Notes         string    `gorm:"type:text" json:"notes"`                                      // 备注
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                     // 创建时间

	Partner *Partner `gorm:"foreignKey:PartnerID" json:"partner,omitempty"` // 关联合作方
}

// TableName 指定表名
func (Settlement) TableName() string {
	return "settlements"
}
