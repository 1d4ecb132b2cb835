package models

import (
	"time"
)

// SyncLog 平台同步日志表
type SyncLog struct {
	ID               uint       `gorm:"primarykey" json:"id"`                           // 主键
	PlatformID       *uint      `gorm:"index" json:"platform_id"`                       // 平台ID
	SyncType         string     `gorm:"type:varchar(50)" json:"sync_type"`              // 同步类型（inventory/price/product）
	Status           string     `gorm:"type:varchar(50);index" json:"status"`           // 状态（success/error/partial）
	RecordsProcessed int        `gorm:"not null;default:0" json:"records_processed"`    // 处理记录数
	ErrorMessage     string     `gorm:"type:text" json:"error_message"`                 // 错误信息
	StartedAt        time.Time  `gorm:"index" json:"started_at"`                        // 开始时间
	CompletedAt      *time.Time `gorm:"" json:"completed_at"`                           // 完成时间

	Platform *Platform `gorm:"foreignKey:PlatformID" json:"platform,omitempty"` // 关联平台
}

// TableName 指定表名
func (SyncLog) TableName() string {
	return "sync_logs"
}
