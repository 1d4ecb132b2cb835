package repository

import (
	"errors"

	"github.com/anbar-next/internal/models"

	"gorm.io/gorm"
)

// InventoryUpdateRepository 库存流水数据访问接口
type InventoryUpdateRepository interface {
	Create(update *models.InventoryUpdate) error
	List(filter InventoryUpdateListFilter) ([]models.InventoryUpdate, int64, error)
	ListRecent(limit int) ([]models.InventoryUpdate, error)
	WithTx(tx *gorm.DB) InventoryUpdateRepository
}

// GormInventoryUpdateRepository GORM 实现
type GormInventoryUpdateRepository struct {
	db *gorm.DB
}

// NewInventoryUpdateRepository 创建库存流水仓库
func NewInventoryUpdateRepository(db *gorm.DB) *GormInventoryUpdateRepository {
	return &GormInventoryUpdateRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInventoryUpdateRepository) WithTx(tx *gorm.DB) InventoryUpdateRepository {
	if tx == nil {
		return r
	}
	return &GormInventoryUpdateRepository{db: tx}
}

// Create 写入库存流水
func (r *GormInventoryUpdateRepository) Create(update *models.InventoryUpdate) error {
	if update == nil {
		return errors.New("inventory update is nil")
	}
	return r.db.Create(update).Error
}

// List 获取库存流水列表
func (r *GormInventoryUpdateRepository) List(filter InventoryUpdateListFilter) ([]models.InventoryUpdate, int64, error) {
	query := r.db.Model(&models.InventoryUpdate{})

	if filter.SKUID != 0 {
		query = query.Where("sku_id = ?", filter.SKUID)
	}
	if filter.UpdateType != "" {
		query = query.Where("update_type = ?", filter.UpdateType)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var updates []models.InventoryUpdate
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&updates).Error; err != nil {
		return nil, 0, err
	}
	return updates, total, nil
}

// ListRecent 获取最近的库存流水
func (r *GormInventoryUpdateRepository) ListRecent(limit int) ([]models.InventoryUpdate, error) {
	if limit <= 0 {
		limit = 10
	}
	var updates []models.InventoryUpdate
	if err := r.db.Order("id desc").Limit(limit).Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}
