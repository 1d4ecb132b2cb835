package repository

import (
	"errors"
	"strings"

	"github.com/anbar-next/internal/models"

	"gorm.io/gorm"
)

// PartnerRepository 合作方数据访问接口
type PartnerRepository interface {
	GetByID(id uint) (*models.Partner, error)
	Create(partner *models.Partner) error
	Update(partner *models.Partner) error
	Delete(id uint) error
	List(filter PartnerListFilter) ([]models.Partner, int64, error)
	CountProducts(partnerID uint) (int64, error)
	WithTx(tx *gorm.DB) PartnerRepository
}

// GormPartnerRepository GORM 实现
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewPartnerRepository 创建合作方仓库
func NewPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPartnerRepository) WithTx(tx *gorm.DB) PartnerRepository {
	if tx == nil {
		return r
	}
	return &GormPartnerRepository{db: tx}
}

// GetByID 根据ID获取合作方
func (r *GormPartnerRepository) GetByID(id uint) (*models.Partner, error) {
	if id == 0 {
		return nil, errors.New("invalid partner id")
	}
	var partner models.Partner
	if err := r.db.First(&partner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &partner, nil
}

// Create 创建合作方
func (r *GormPartnerRepository) Create(partner *models.Partner) error {
	if partner == nil {
		return errors.New("partner is nil")
	}
	return r.db.Create(partner).Error
}

// Update 更新合作方
func (r *GormPartnerRepository) Update(partner *models.Partner) error {
	if partner == nil {
		return errors.New("partner is nil")
	}
	return r.db.Save(partner).Error
}

// Delete 删除合作方
func (r *GormPartnerRepository) Delete(id uint) error {
	if id == 0 {
		return errors.New("invalid partner id")
	}
	return r.db.Delete(&models.Partner{}, id).Error
}

// List 获取合作方列表
func (r *GormPartnerRepository) List(filter PartnerListFilter) ([]models.Partner, int64, error) {
	query := r.db.Model(&models.Partner{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if strings.TrimSpace(filter.Type) != "" {
		query = query.Where("type = ?", strings.TrimSpace(filter.Type))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var partners []models.Partner
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&partners).Error; err != nil {
		return nil, 0, err
	}
	return partners, total, nil
}

// CountProducts 统计合作方名下商品数量（删除保护用）
func (r *GormPartnerRepository) CountProducts(partnerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("partner_id = ?", partnerID).Count(&count).Error
	return count, err
}
