package repository

import (
	"errors"

	"github.com/anbar-next/internal/models"

	"gorm.io/gorm"
)

// SettlementRepository 结算记录数据访问接口
type SettlementRepository interface {
	Create(settlement *models.Settlement) error
	ListByPartner(partnerID uint, page, pageSize int) ([]models.Settlement, int64, error)
	WithTx(tx *gorm.DB) SettlementRepository
}

// GormSettlementRepository GORM 实现
type GormSettlementRepository struct {
	db *gorm.DB
}

// NewSettlementRepository 创建结算记录仓库
func NewSettlementRepository(db *gorm.DB) *GormSettlementRepository {
	return &GormSettlementRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSettlementRepository) WithTx(tx *gorm.DB) SettlementRepository {
	if tx == nil {
		return r
	}
	return &GormSettlementRepository{db: tx}
}

// Create 创建结算记录
func (r *GormSettlementRepository) Create(settlement *models.Settlement) error {
	if settlement == nil {
		return errors.New("settlement is nil")
	}
	return r.db.Create(settlement).Error
}

// ListByPartner 获取合作方的结算记录
func (r *GormSettlementRepository) ListByPartner(partnerID uint, page, pageSize int) ([]models.Settlement, int64, error) {
	if partnerID == 0 {
		return nil, 0, errors.New("invalid partner id")
	}
	query := r.db.Model(&models.Settlement{}).Where("partner_id = ?", partnerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var settlements []models.Settlement
	query = applyPagination(query, page, pageSize)
	if err := query.Order("id desc").Find(&settlements).Error; err != nil {
		return nil, 0, err
	}
	return settlements, total, nil
}
