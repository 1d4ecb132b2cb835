package repository

import (
	"errors"

	"github.com/anbar-next/internal/models"

	"gorm.io/gorm"
)

// SyncLogRepository 同步日志数据访问接口
type SyncLogRepository interface {
	Create(log *models.SyncLog) error
	Update(log *models.SyncLog) error
	List(filter SyncLogListFilter) ([]models.SyncLog, int64, error)
	WithTx(tx *gorm.DB) SyncLogRepository
}

// GormSyncLogRepository GORM 实现
type GormSyncLogRepository struct {
	db *gorm.DB
}

// NewSyncLogRepository 创建同步日志仓库
func NewSyncLogRepository(db *gorm.DB) *GormSyncLogRepository {
	return &GormSyncLogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSyncLogRepository) WithTx(tx *gorm.DB) SyncLogRepository {
	if tx == nil {
		return r
	}
	return &GormSyncLogRepository{db: tx}
}

// Create 写入同步日志
func (r *GormSyncLogRepository) Create(log *models.SyncLog) error {
	if log == nil {
		return errors.New("sync log is nil")
	}
	return r.db.Create(log).Error
}

// Update 更新同步日志（补写完成时间与状态）
func (r *GormSyncLogRepository) Update(log *models.SyncLog) error {
	if log == nil {
		return errors.New("sync log is nil")
	}
	return r.db.Save(log).Error
}

// List 获取同步日志列表
func (r *GormSyncLogRepository) List(filter SyncLogListFilter) ([]models.SyncLog, int64, error) {
	query := r.db.Model(&models.SyncLog{})

	if filter.PlatformID != 0 {
		query = query.Where("platform_id = ?", filter.PlatformID)
	}
	if filter.SyncType != "" {
		query = query.Where("sync_type = ?", filter.SyncType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.SyncLog
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
