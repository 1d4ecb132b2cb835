package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（合作方的归属人）
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`                  // 主键
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`     // 邮箱
	Name      string         `gorm:"type:varchar(255)" json:"name"`         // 显示名称
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`   // 是否启用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`               // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                            // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                        // 软删除时间

	Partners []Partner `gorm:"foreignKey:UserID" json:"partners,omitempty"` // 名下合作方
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
