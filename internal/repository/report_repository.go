package repository

import (
	"time"

	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportRepository 报表聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type ReportRepository interface {
	GetInventoryStats(lowStockThreshold int) (InventoryStatsRow, error)
	GetLowStockSKUs(lowStockThreshold, limit int) ([]models.SKU, error)
	GetPartnerDebtStats() (PartnerDebtStatsRow, error)
	GetOrderStats(startAt, endAt time.Time) (OrderStatsRow, error)
}

// InventoryStatsRow 库存统计原始结果
type InventoryStatsRow struct {
	TotalSKUs      int64
	ActiveSKUs     int64
	OutOfStockSKUs int64
	LowStockSKUs   int64
	TotalUnits     int64
}

// PartnerDebtStatsRow 合作方欠款统计原始结果
type PartnerDebtStatsRow struct {
	ActivePartners int64
	TotalDebt      decimal.Decimal
	TotalCredit    decimal.Decimal
}

// OrderStatsRow 订单统计原始结果
type OrderStatsRow struct {
	OrdersTotal    int64
	OrdersPending  int64
	OrdersCanceled int64
	TotalAmount    decimal.Decimal
}

// GormReportRepository GORM 报表聚合实现
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建报表仓库
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// GetInventoryStats 获取库存统计
func (r *GormReportRepository) GetInventoryStats(lowStockThreshold int) (InventoryStatsRow, error) {
	result := InventoryStatsRow{}

	skuBase := func() *gorm.DB {
		return r.db.Model(&models.SKU{})
	}

	if err := skuBase().Count(&result.TotalSKUs).Error; err != nil {
		return result, err
	}
	if err := skuBase().Where("is_active = ?", true).Count(&result.ActiveSKUs).Error; err != nil {
		return result, err
	}
	if err := skuBase().Where("is_active = ? AND inventory <= 0", true).Count(&result.OutOfStockSKUs).Error; err != nil {
		return result, err
	}
	if err := skuBase().Where("is_active = ? AND inventory > 0 AND inventory <= ?", true, lowStockThreshold).Count(&result.LowStockSKUs).Error; err != nil {
		return result, err
	}

	var totalUnits *int64
	if err := skuBase().Where("is_active = ?", true).Select("SUM(inventory)").Scan(&totalUnits).Error; err != nil {
		return result, err
	}
	if totalUnits != nil {
		result.TotalUnits = *totalUnits
	}
	return result, nil
}

// GetLowStockSKUs 获取低库存 SKU 列表（含缺货，库存升序）
func (r *GormReportRepository) GetLowStockSKUs(lowStockThreshold, limit int) ([]models.SKU, error) {
	if limit <= 0 {
		limit = 20
	}
	var skus []models.SKU
	err := r.db.Model(&models.SKU{}).
		Preload("Product").
		Where("is_active = ? AND inventory <= ?", true, lowStockThreshold).
		Order("inventory asc, id asc").
		Limit(limit).
		Find(&skus).Error
	if err != nil {
		return nil, err
	}
	return skus, nil
}

// GetPartnerDebtStats 获取合作方欠款统计
func (r *GormReportRepository) GetPartnerDebtStats() (PartnerDebtStatsRow, error) {
	result := PartnerDebtStatsRow{}

	base := func() *gorm.DB {
		return r.db.Model(&models.Partner{}).Where("is_active = ?", true)
	}

	if err := base().Count(&result.ActivePartners).Error; err != nil {
		return result, err
	}

	var totalDebt decimal.NullDecimal
	if err := base().Select("SUM(current_debt)").Scan(&totalDebt).Error; err != nil {
		return result, err
	}
	if totalDebt.Valid {
		result.TotalDebt = totalDebt.Decimal
	}

	var totalCredit decimal.NullDecimal
	if err := base().Select("SUM(credit_limit)").Scan(&totalCredit).Error; err != nil {
		return result, err
	}
	if totalCredit.Valid {
		result.TotalCredit = totalCredit.Decimal
	}
	return result, nil
}

// GetOrderStats 获取时间窗内订单统计
func (r *GormReportRepository) GetOrderStats(startAt, endAt time.Time) (OrderStatsRow, error) {
	result := OrderStatsRow{}

	orderBase := func() *gorm.DB {
		return r.db.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", startAt, endAt)
	}

	if err := orderBase().Count(&result.OrdersTotal).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusPending).Count(&result.OrdersPending).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusCanceled).Count(&result.OrdersCanceled).Error; err != nil {
		return result, err
	}

	var totalAmount decimal.NullDecimal
	if err := orderBase().Where("status <> ?", constants.OrderStatusCanceled).Select("SUM(total_amount)").Scan(&totalAmount).Error; err != nil {
		return result, err
	}
	if totalAmount.Valid {
		result.TotalAmount = totalAmount.Decimal
	}
	return result, nil
}
