package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/anbar-next/internal/cache"
	"github.com/anbar-next/internal/logger"
	"github.com/anbar-next/internal/provider"
	"github.com/anbar-next/internal/queue"
	"github.com/anbar-next/internal/service"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

const priceRecomputeLockTTL = 5 * time.Minute

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPriceRecompute, c.handlePriceRecompute)
	mux.HandleFunc(queue.TaskSupplierFeed, c.handleSupplierFeed)
}

// handlePriceRecompute 批量重算 SKU 销售价。重算本身幂等，
// Redis 互斥锁只用来挡住同一范围任务的并发执行。
func (c *Consumer) handlePriceRecompute(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_price_recompute_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PriceRecomputePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_price_recompute_unmarshal_failed", "error", err)
		return err
	}
	if c.PricingService == nil {
		logger.Warnw("worker_price_recompute_skip_pricing_service_nil", "product_id", payload.ProductID)
		return nil
	}

	lockKey := "lock:price_recompute"
	locked, err := cache.TryLock(ctx, lockKey, priceRecomputeLockTTL)
	if err != nil {
		logger.Warnw("worker_price_recompute_lock_failed", "error", err)
		return err
	}
	if !locked {
		logger.Debugw("worker_price_recompute_skip_locked", "product_id", payload.ProductID)
		return nil
	}
	defer func() {
		if err := cache.Unlock(ctx, lockKey); err != nil {
			logger.Warnw("worker_price_recompute_unlock_failed", "error", err)
		}
	}()

	updated, err := c.PricingService.UpdateSKUFinalPrices(payload.ProductID)
	if err != nil {
		logger.Warnw("worker_price_recompute_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	logger.Infow("worker_price_recompute_done", "product_id", payload.ProductID, "reason", payload.Reason, "updated", updated)
	return nil
}

// handleSupplierFeed 处理供应商库存回报
func (c *Consumer) handleSupplierFeed(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_supplier_feed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.SupplierFeedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_supplier_feed_unmarshal_failed", "error", err)
		return err
	}
	if len(payload.Items) == 0 {
		logger.Debugw("worker_supplier_feed_skip_empty", "source_platform_id", payload.SourcePlatformID)
		return nil
	}
	if c.InventoryUpdateService == nil {
		logger.Warnw("worker_supplier_feed_skip_service_nil", "source_platform_id", payload.SourcePlatformID)
		return nil
	}

	input := service.SupplierFeedInput{SourcePlatformID: payload.SourcePlatformID}
	for _, item := range payload.Items {
		feedItem := service.SupplierFeedItemInput{
			SKUCode:   item.SKUCode,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.BasePrice != nil {
			price, err := decimal.NewFromString(*item.BasePrice)
			if err != nil {
				logger.Warnw("worker_supplier_feed_price_parse_failed", "sku_code", item.SKUCode, "error", err)
			} else {
				feedItem.BasePrice = &price
			}
		}
		input.Items = append(input.Items, feedItem)
	}

	result, err := c.InventoryUpdateService.ProcessSupplierFeed(input)
	if err != nil {
		logger.Warnw("worker_supplier_feed_failed", "source_platform_id", payload.SourcePlatformID, "error", err)
		return err
	}
	logger.Infow("worker_supplier_feed_done",
		"source_platform_id", payload.SourcePlatformID,
		"processed", result.Processed,
		"failed", result.Failed)
	return nil
}
