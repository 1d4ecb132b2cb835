package queue

import (
	"encoding/json"

	"github.com/anbar-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPriceRecompute 批量重算销售价任务
	TaskPriceRecompute = constants.TaskPriceRecompute
	// TaskSupplierFeed 供应商库存回报处理任务
	TaskSupplierFeed = constants.TaskSupplierFeed
)

// PriceRecomputePayload 批量重算任务载荷（ProductID 为 0 表示全量）
type PriceRecomputePayload struct {
	ProductID uint   `json:"product_id"`
	Reason    string `json:"reason"`
}

// SupplierFeedItem 供应商回报单条记录
type SupplierFeedItem struct {
	SKUCode   string  `json:"sku_code"`
	ProductID uint    `json:"product_id,omitempty"` // 非零时允许对未知编码自动建 SKU
	Quantity  int     `json:"quantity"`
	BasePrice *string `json:"base_price,omitempty"` // 十进制字符串，缺省表示价格不变
}

// SupplierFeedPayload 供应商回报任务载荷
type SupplierFeedPayload struct {
	SourcePlatformID uint               `json:"source_platform_id"`
	Items            []SupplierFeedItem `json:"items"`
}

// NewPriceRecomputeTask 创建批量重算任务
func NewPriceRecomputeTask(payload PriceRecomputePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPriceRecompute, body), nil
}

// NewSupplierFeedTask 创建供应商回报任务
func NewSupplierFeedTask(payload SupplierFeedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSupplierFeed, body), nil
}
