package repository

import (
	"errors"
	"strings"

	"github.com/anbar-next/internal/models"

	"gorm.io/gorm"
)

// SKURepository SKU 数据访问接口
type SKURepository interface {
	GetByID(id uint) (*models.SKU, error)
	GetByIDWithPartner(id uint) (*models.SKU, error)
	GetByCode(skuCode string) (*models.SKU, error)
	Create(sku *models.SKU) error
	Update(sku *models.SKU) error
	ListForRecompute(productID uint) ([]models.SKU, error)
	List(filter SKUListFilter) ([]models.SKU, int64, error)
	AdjustInventory(skuID uint, delta int) (int64, error)
	WithTx(tx *gorm.DB) SKURepository
}

// GormSKURepository GORM 实现
type GormSKURepository struct {
	db *gorm.DB
}

// NewSKURepository 创建 SKU 仓库
func NewSKURepository(db *gorm.DB) *GormSKURepository {
	return &GormSKURepository{db: db}
}

// WithTx 绑定事务
func (r *GormSKURepository) WithTx(tx *gorm.DB) SKURepository {
	if tx == nil {
		return r
	}
	return &GormSKURepository{db: tx}
}

// GetByID 根据ID获取 SKU
func (r *GormSKURepository) GetByID(id uint) (*models.SKU, error) {
	if id == 0 {
		return nil, errors.New("invalid sku id")
	}
	var sku models.SKU
	if err := r.db.First(&sku, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sku, nil
}

// GetByIDWithPartner 根据ID获取 SKU 并预加载商品与合作方
func (r *GormSKURepository) GetByIDWithPartner(id uint) (*models.SKU, error) {
	if id == 0 {
		return nil, errors.New("invalid sku id")
	}
	var sku models.SKU
	if err := r.db.Preload("Product.Partner").Preload("Product").First(&sku, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sku, nil
}

// GetByCode 根据 SKU 编码获取 SKU（预加载商品）
func (r *GormSKURepository) GetByCode(skuCode string) (*models.SKU, error) {
	code := strings.TrimSpace(skuCode)
	if code == "" {
		return nil, errors.New("invalid sku code")
	}
	var sku models.SKU
	if err := r.db.Preload("Product").Where("sku_code = ?", code).First(&sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sku, nil
}

// Create 创建 SKU
func (r *GormSKURepository) Create(sku *models.SKU) error {
	if sku == nil {
		return errors.New("sku is nil")
	}
	return r.db.Create(sku).Error
}

// Update 更新 SKU
func (r *GormSKURepository) Update(sku *models.SKU) error {
	if sku == nil {
		return errors.New("sku is nil")
	}
	return r.db.Save(sku).Error
}

// ListForRecompute 获取待重算销售价的 SKU（base_price 非空，预加载商品），
// productID 为 0 时覆盖全量。按 id 升序保证批次顺序稳定。
func (r *GormSKURepository) ListForRecompute(productID uint) ([]models.SKU, error) {
	query := r.db.Model(&models.SKU{}).
		Preload("Product").
		Where("base_price IS NOT NULL")
	if productID != 0 {
		query = query.Where("product_id = ?", productID)
	}
	var skus []models.SKU
	if err := query.Order("id ASC").Find(&skus).Error; err != nil {
		return nil, err
	}
	return skus, nil
}

// List 获取 SKU 列表
func (r *GormSKURepository) List(filter SKUListFilter) ([]models.SKU, int64, error) {
	query := r.db.Model(&models.SKU{})

	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithProduct {
		query = query.Preload("Product")
	}

	var skus []models.SKU
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&skus).Error; err != nil {
		return nil, 0, err
	}
	return skus, total, nil
}

// AdjustInventory 原子调整库存（delta 为负时带余量保护，防止超卖）
func (r *GormSKURepository) AdjustInventory(skuID uint, delta int) (int64, error) {
	if skuID == 0 || delta == 0 {
		return 0, errors.New("invalid inventory adjust params")
	}
	query := r.db.Model(&models.SKU{}).Where("id = ?", skuID)
	if delta < 0 {
		query = query.Where("inventory >= ?", -delta)
	}
	result := query.Updates(map[string]interface{}{
		"inventory": gorm.Expr("inventory + ?", delta),
		"quantity":  gorm.Expr("quantity + ?", delta),
	})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
