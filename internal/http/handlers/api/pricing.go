package api

import (
	"github.com/anbar-next/internal/http/response"
	"github.com/anbar-next/internal/queue"
	"github.com/anbar-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CalculatePriceRequest 定价计算请求
type CalculatePriceRequest struct {
	Strategy  string `json:"strategy" binding:"required"`
	SKUID     uint   `json:"sku_id"`
	ProductID uint   `json:"product_id"`
	PartnerID uint   `json:"partner_id"`
	BasePrice string `json:"base_price" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// RecomputeRequest 批量重算请求
type RecomputeRequest struct {
	ProductID uint   `json:"product_id"` // 0 表示全量
	Async     *bool  `json:"async"`      // 默认走队列
	Reason    string `json:"reason"`
}

// CalculatePrice 计算价格（规则路径或公式路径）
func (h *Handler) CalculatePrice(c *gin.Context) {
	var req CalculatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	basePrice, err := decimal.NewFromString(req.BasePrice)
	if err != nil {
		respondError(c, response.CodeBadRequest, "价格格式不合法", err)
		return
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	price, err := h.PricingService.Calculate(service.PriceRequest{
		Strategy:  req.Strategy,
		SKUID:     req.SKUID,
		ProductID: req.ProductID,
		PartnerID: req.PartnerID,
		BasePrice: basePrice,
		Quantity:  quantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"strategy":    req.Strategy,
		"base_price":  basePrice.Round(2).String(),
		"final_price": price.Round(2).String(),
		"quantity":    quantity,
	})
}

// RecomputeFinalPrices 触发 SKU 销售价批量重算。
// 默认投递异步任务；async=false 时同步执行并直接返回变更条数。
func (h *Handler) RecomputeFinalPrices(c *gin.Context) {
	var req RecomputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	async := true
	if req.Async != nil {
		async = *req.Async
	}
	if async && h.QueueClient.Enabled() {
		reason := req.Reason
		if reason == "" {
			reason = "manual"
		}
		payload := queue.PriceRecomputePayload{ProductID: req.ProductID, Reason: reason}
		if err := h.QueueClient.EnqueuePriceRecompute(payload); err != nil {
			respondError(c, response.CodeInternal, "任务投递失败", err)
			return
		}
		response.SuccessWithMsg(c, "recompute enqueued", gin.H{"product_id": req.ProductID})
		return
	}

	updated, err := h.PricingService.UpdateSKUFinalPrices(req.ProductID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"product_id": req.ProductID, "updated": updated})
}
