package repository

import (
	"errors"
	"time"

	"github.com/anbar-next/internal/models"

	"gorm.io/gorm"
)

// PlatformRepository 外部平台数据访问接口
type PlatformRepository interface {
	GetByID(id uint) (*models.Platform, error)
	Create(platform *models.Platform) error
	ListByType(platformType string, onlyActive bool) ([]models.Platform, error)
	WithTx(tx *gorm.DB) PlatformRepository
}

// GormPlatformRepository GORM 实现
type GormPlatformRepository struct {
	db *gorm.DB
}

// NewPlatformRepository 创建平台仓库
func NewPlatformRepository(db *gorm.DB) *GormPlatformRepository {
	return &GormPlatformRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPlatformRepository) WithTx(tx *gorm.DB) PlatformRepository {
	if tx == nil {
		return r
	}
	return &GormPlatformRepository{db: tx}
}

// GetByID 根据ID获取平台
func (r *GormPlatformRepository) GetByID(id uint) (*models.Platform, error) {
	if id == 0 {
		return nil, errors.New("invalid platform id")
	}
	var platform models.Platform
	if err := r.db.First(&platform, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &platform, nil
}

// Create 创建平台
func (r *GormPlatformRepository) Create(platform *models.Platform) error {
	if platform == nil {
		return errors.New("platform is nil")
	}
	return r.db.Create(platform).Error
}

// ListByType 按类型获取平台列表
func (r *GormPlatformRepository) ListByType(platformType string, onlyActive bool) ([]models.Platform, error) {
	query := r.db.Model(&models.Platform{})
	if platformType != "" {
		query = query.Where("type = ?", platformType)
	}
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var platforms []models.Platform
	if err := query.Order("id asc").Find(&platforms).Error; err != nil {
		return nil, err
	}
	return platforms, nil
}

// SourcePlatformRepository 来源平台绑定数据访问接口
type SourcePlatformRepository interface {
	GetByID(id uint) (*models.SourcePlatform, error)
	MarkSynced(id uint, at time.Time) error
	WithTx(tx *gorm.DB) SourcePlatformRepository
}

// GormSourcePlatformRepository GORM 实现
type GormSourcePlatformRepository struct {
	db *gorm.DB
}

// NewSourcePlatformRepository 创建来源平台仓库
func NewSourcePlatformRepository(db *gorm.DB) *GormSourcePlatformRepository {
	return &GormSourcePlatformRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSourcePlatformRepository) WithTx(tx *gorm.DB) SourcePlatformRepository {
	if tx == nil {
		return r
	}
	return &GormSourcePlatformRepository{db: tx}
}

// GetByID 根据ID获取来源平台绑定
func (r *GormSourcePlatformRepository) GetByID(id uint) (*models.SourcePlatform, error) {
	if id == 0 {
		return nil, errors.New("invalid source platform id")
	}
	var sp models.SourcePlatform
	if err := r.db.First(&sp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sp, nil
}

// MarkSynced 更新最近同步时间
func (r *GormSourcePlatformRepository) MarkSynced(id uint, at time.Time) error {
	if id == 0 {
		return errors.New("invalid source platform id")
	}
	return r.db.Model(&models.SourcePlatform{}).Where("id = ?", id).Update("last_sync", at).Error
}
