package service

import (
	"context"
	"fmt"
	"time"

	"github.com/anbar-next/internal/cache"
	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/logger"
	"github.com/anbar-next/internal/models"
	"github.com/anbar-next/internal/repository"
)

const reportCacheTTL = 45 * time.Second

// ReportingService 报表服务：库存概览、低库存告警与经营快照。
// 聚合结果写入短 TTL 的 Redis 缓存，缓存未启用时直接落库查询。
type ReportingService struct {
	repo repository.ReportRepository
}

// NewReportingService 创建报表服务
func NewReportingService(repo repository.ReportRepository) *ReportingService {
	return &ReportingService{repo: repo}
}

// InventorySummaryResponse 库存概览响应
type InventorySummaryResponse struct {
	TotalSKUs      int64        `json:"total_skus"`
	ActiveSKUs     int64        `json:"active_skus"`
	OutOfStockSKUs int64        `json:"out_of_stock_skus"`
	LowStockSKUs   int64        `json:"low_stock_skus"`
	TotalUnits     int64        `json:"total_units"`
	LowStockItems  []models.SKU `json:"low_stock_items"`
	GeneratedAt    time.Time    `json:"generated_at"`
}

// PartnerDebtSummaryResponse 合作方欠款概览响应
type PartnerDebtSummaryResponse struct {
	ActivePartners int64     `json:"active_partners"`
	TotalDebt      string    `json:"total_debt"`
	TotalCredit    string    `json:"total_credit"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// OrderSummaryResponse 订单概览响应
type OrderSummaryResponse struct {
	Days           int       `json:"days"`
	OrdersTotal    int64     `json:"orders_total"`
	OrdersPending  int64     `json:"orders_pending"`
	OrdersCanceled int64     `json:"orders_canceled"`
	TotalAmount    string    `json:"total_amount"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// GetInventorySummary 获取库存概览
func (s *ReportingService) GetInventorySummary(ctx context.Context, forceRefresh bool) (*InventorySummaryResponse, error) {
	cacheKey := "report:inventory_summary"
	if !forceRefresh {
		var cached InventorySummaryResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr != nil {
			logger.Warnw("report_cache_read_failed", "key", cacheKey, "error", cacheErr)
		}
		if hit {
			return &cached, nil
		}
	}

	stats, err := s.repo.GetInventoryStats(constants.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.repo.GetLowStockSKUs(constants.LowStockThreshold, 20)
	if err != nil {
		return nil, err
	}

	response := &InventorySummaryResponse{
		TotalSKUs:      stats.TotalSKUs,
		ActiveSKUs:     stats.ActiveSKUs,
		OutOfStockSKUs: stats.OutOfStockSKUs,
		LowStockSKUs:   stats.LowStockSKUs,
		TotalUnits:     stats.TotalUnits,
		LowStockItems:  lowStock,
		GeneratedAt:    time.Now(),
	}
	_ = cache.SetJSON(ctx, cacheKey, response, reportCacheTTL)
	return response, nil
}

// GetPartnerDebtSummary 获取合作方欠款概览
func (s *ReportingService) GetPartnerDebtSummary(ctx context.Context) (*PartnerDebtSummaryResponse, error) {
	cacheKey := "report:partner_debt_summary"
	var cached PartnerDebtSummaryResponse
	hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
	if cacheErr != nil {
		logger.Warnw("report_cache_read_failed", "key", cacheKey, "error", cacheErr)
	}
	if hit {
		return &cached, nil
	}

	stats, err := s.repo.GetPartnerDebtStats()
	if err != nil {
		return nil, err
	}
	response := &PartnerDebtSummaryResponse{
		ActivePartners: stats.ActivePartners,
		TotalDebt:      stats.TotalDebt.StringFixed(2),
		TotalCredit:    stats.TotalCredit.StringFixed(2),
		GeneratedAt:    time.Now(),
	}
	_ = cache.SetJSON(ctx, cacheKey, response, reportCacheTTL)
	return response, nil
}

// GetOrderSummary 获取近 N 天订单概览
func (s *ReportingService) GetOrderSummary(ctx context.Context, days int) (*OrderSummaryResponse, error) {
	if days <= 0 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	cacheKey := fmt.Sprintf("report:order_summary:%dd", days)
	var cached OrderSummaryResponse
	hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
	if cacheErr != nil {
		logger.Warnw("report_cache_read_failed", "key", cacheKey, "error", cacheErr)
	}
	if hit {
		return &cached, nil
	}

	endAt := time.Now()
	startAt := endAt.AddDate(0, 0, -days)
	stats, err := s.repo.GetOrderStats(startAt, endAt)
	if err != nil {
		return nil, err
	}
	response := &OrderSummaryResponse{
		Days:           days,
		OrdersTotal:    stats.OrdersTotal,
		OrdersPending:  stats.OrdersPending,
		OrdersCanceled: stats.OrdersCanceled,
		TotalAmount:    stats.TotalAmount.StringFixed(2),
		GeneratedAt:    time.Now(),
	}
	_ = cache.SetJSON(ctx, cacheKey, response, reportCacheTTL)
	return response, nil
}
