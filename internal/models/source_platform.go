package models

import (
	"time"
)

// SourcePlatform 库存来源平台绑定表（token 生命周期由外部协作方维护）
type SourcePlatform struct {
	ID            uint       `gorm:"primarykey" json:"id"`                     // 主键
	UserID        uint       `gorm:"not null;index" json:"user_id"`            // 归属用户ID
	PlatformID    uint       `gorm:"not null;index" json:"platform_id"`        // 平台ID
	Token         string     `gorm:"type:varchar(500)" json:"-"`               // 访问令牌
	RefreshToken  string     `gorm:"type:varchar(500)" json:"-"`               // 刷新令牌
	LastSync      *time.Time `gorm:"index" json:"last_sync"`                   // 最近同步时间
	SyncInterval  int        `gorm:"not null;default:3600" json:"sync_interval"` // 同步间隔（秒）
	Configuration JSON       `gorm:"type:json" json:"configuration"`           // 绑定配置
	IsActive      bool       `gorm:"default:true;index" json:"is_active"`      // 是否启用
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt     time.Time  `json:"updated_at"`                               // 更新时间

	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`         // 归属用户
	Platform *Platform `gorm:"foreignKey:PlatformID" json:"platform,omitempty"` // 关联平台
}

// TableName 指定表名
func (SourcePlatform) TableName() string {
	return "source_platforms"
}
