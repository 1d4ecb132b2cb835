package repository

import (
	"errors"
	"time"

	"github.com/anbar-next/internal/models"

	"gorm.io/gorm"
)

// PricingRuleRepository 定价规则数据访问接口
type PricingRuleRepository interface {
	GetByID(id uint) (*models.PricingRule, error)
	Create(rule *models.PricingRule) error
	Update(rule *models.PricingRule) error
	ListApplicable(partnerID uint, category *string, quantity int, now time.Time) ([]models.PricingRule, error)
	List(filter PricingRuleListFilter) ([]models.PricingRule, int64, error)
	WithTx(tx *gorm.DB) PricingRuleRepository
}

// GormPricingRuleRepository GORM 实现
type GormPricingRuleRepository struct {
	db *gorm.DB
}

// NewPricingRuleRepository 创建定价规则仓库
func NewPricingRuleRepository(db *gorm.DB) *GormPricingRuleRepository {
	return &GormPricingRuleRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPricingRuleRepository) WithTx(tx *gorm.DB) PricingRuleRepository {
	if tx == nil {
		return r
	}
	return &GormPricingRuleRepository{db: tx}
}

// GetByID 根据ID获取定价规则
func (r *GormPricingRuleRepository) GetByID(id uint) (*models.PricingRule, error) {
	if id == 0 {
		return nil, errors.New("invalid pricing rule id")
	}
	var rule models.PricingRule
	if err := r.db.First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// Create 创建定价规则
func (r *GormPricingRuleRepository) Create(rule *models.PricingRule) error {
	if rule == nil {
		return errors.New("pricing rule is nil")
	}
	return r.db.Create(rule).Error
}

// Update 更新定价规则
func (r *GormPricingRuleRepository) Update(rule *models.PricingRule) error {
	if rule == nil {
		return errors.New("pricing rule is nil")
	}
	return r.db.Save(rule).Error
}

// ListApplicable 获取对 (合作方, 分类, 数量, 时间点) 生效的规则，按优先级降序返回。
// 平手规则以 id 升序兜底，保证同一输入多次调用的应用顺序稳定可复现。
// 无匹配规则返回空切片，不视为错误。
func (r *GormPricingRuleRepository) ListApplicable(partnerID uint, category *string, quantity int, now time.Time) ([]models.PricingRule, error) {
	if partnerID == 0 {
		return []models.PricingRule{}, nil
	}

	query := r.db.Model(&models.PricingRule{}).
		Where("partner_id = ?", partnerID).
		Where("is_active = ?", true).
		Where("valid_from <= ?", now).
		Where("(valid_until IS NULL OR valid_until >= ?)", now).
		Where("min_quantity <= ?", quantity).
		Where("(max_quantity IS NULL OR max_quantity >= ?)", quantity)

	if category != nil && *category != "" {
		query = query.Where("(category_filter IS NULL OR category_filter = '' OR category_filter = ?)", *category)
	} else {
		query = query.Where("(category_filter IS NULL OR category_filter = '')")
	}

	var rules []models.PricingRule
	if err := query.Order("priority DESC, id ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// List 获取定价规则列表
func (r *GormPricingRuleRepository) List(filter PricingRuleListFilter) ([]models.PricingRule, int64, error) {
	query := r.db.Model(&models.PricingRule{})

	if filter.PartnerID != 0 {
		query = query.Where("partner_id = ?", filter.PartnerID)
	}
	if filter.RuleType != "" {
		query = query.Where("rule_type = ?", filter.RuleType)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rules []models.PricingRule
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("priority DESC, id DESC").Find(&rules).Error; err != nil {
		return nil, 0, err
	}
	return rules, total, nil
}
