package models

import (
	"time"
)

// Platform 外部平台注册表
type Platform struct {
	ID              uint      `gorm:"primarykey" json:"id"`                        // 主键
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`      // 名称
	Type            string    `gorm:"type:varchar(50);not null" json:"type"`       // 类型（source/output）
	APIEndpoint     string    `gorm:"type:varchar(500)" json:"api_endpoint"`       // API 地址
	WebhookEndpoint string    `gorm:"type:varchar(500)" json:"webhook_endpoint"`   // Webhook 地址
	Configuration   JSON      `gorm:"type:json" json:"configuration"`              // 平台特定配置
	IsActive        bool      `gorm:"default:true;index" json:"is_active"`         // 是否启用
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                                  // 更新时间
}

// TableName 指定表名
func (Platform) TableName() string {
	return "platforms"
}
