package api

import (
	"strconv"

	"github.com/anbar-next/internal/http/response"
	"github.com/anbar-next/internal/queue"
	"github.com/anbar-next/internal/repository"
	"github.com/anbar-next/internal/service"

	"github.com/gin-gonic/gin"
)

// InventorySetRequest 手动库存调整请求
type InventorySetRequest struct {
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// SupplierFeedRequest 供应商库存回报请求
type SupplierFeedRequest struct {
	SourcePlatformID uint                      `json:"source_platform_id"`
	Async            *bool                     `json:"async"` // 默认走队列
	Items            []SupplierFeedItemRequest `json:"items" binding:"required"`
}

// SupplierFeedItemRequest 供应商回报单条记录
type SupplierFeedItemRequest struct {
	SKUCode   string  `json:"sku_code" binding:"required"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	BasePrice *string `json:"base_price"`
}

// SetSKUInventory 手动设置 SKU 库存
func (h *Handler) SetSKUInventory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "SKU ID不合法", nil)
		return
	}
	var req InventorySetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	update, err := h.InventoryUpdateService.SetQuantity(id, req.Quantity, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, update)
}

// IngestSupplierFeed 接收供应商库存回报。
// 默认投递异步任务；async=false 时同步处理并返回逐条结果。
func (h *Handler) IngestSupplierFeed(c *gin.Context) {
	var req SupplierFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	if len(req.Items) == 0 {
		respondError(c, response.CodeBadRequest, "回报条目不能为空", nil)
		return
	}

	async := true
	if req.Async != nil {
		async = *req.Async
	}
	if async && h.QueueClient.Enabled() {
		payload := queue.SupplierFeedPayload{SourcePlatformID: req.SourcePlatformID}
		for _, item := range req.Items {
			payload.Items = append(payload.Items, queue.SupplierFeedItem{
				SKUCode:   item.SKUCode,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				BasePrice: item.BasePrice,
			})
		}
		if err := h.QueueClient.EnqueueSupplierFeed(payload); err != nil {
			respondError(c, response.CodeInternal, "任务投递失败", err)
			return
		}
		response.SuccessWithMsg(c, "feed enqueued", gin.H{"items": len(req.Items)})
		return
	}

	input := service.SupplierFeedInput{SourcePlatformID: req.SourcePlatformID}
	for _, item := range req.Items {
		feedItem := service.SupplierFeedItemInput{
			SKUCode:   item.SKUCode,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.BasePrice != nil {
			price, err := parseDecimalField(*item.BasePrice)
			if err != nil {
				respondError(c, response.CodeBadRequest, "价格格式不合法", err)
				return
			}
			feedItem.BasePrice = price
		}
		input.Items = append(input.Items, feedItem)
	}

	result, err := h.InventoryUpdateService.ProcessSupplierFeed(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// ListInventoryUpdates 获取库存流水列表
func (h *Handler) ListInventoryUpdates(c *gin.Context) {
	page, pageSize := parsePagination(c)
	skuID, _ := strconv.ParseUint(c.Query("sku_id"), 10, 64)
	filter := repository.InventoryUpdateListFilter{
		Page:       page,
		PageSize:   pageSize,
		SKUID:      uint(skuID),
		UpdateType: c.Query("update_type"),
	}
	updates, total, err := h.InventoryUpdateService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, updates, response.NewPagination(page, pageSize, total))
}
