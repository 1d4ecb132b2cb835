package api

import (
	"strconv"

	"github.com/anbar-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetInventorySummary 获取库存概览
func (h *Handler) GetInventorySummary(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"
	summary, err := h.ReportingService.GetInventorySummary(c.Request.Context(), forceRefresh)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, summary)
}

// GetPartnerDebtSummary 获取合作方欠款概览
func (h *Handler) GetPartnerDebtSummary(c *gin.Context) {
	summary, err := h.ReportingService.GetPartnerDebtSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, summary)
}

// GetOrderSummary 获取近 N 天订单概览
func (h *Handler) GetOrderSummary(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	summary, err := h.ReportingService.GetOrderSummary(c.Request.Context(), days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, summary)
}
