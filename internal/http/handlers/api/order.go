package api

import (
	"strconv"

	"github.com/anbar-next/internal/http/response"
	"github.com/anbar-next/internal/repository"
	"github.com/anbar-next/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderCreateRequest 下单请求
type OrderCreateRequest struct {
	PlatformID   *uint                    `json:"platform_id"`
	CustomerInfo map[string]interface{}   `json:"customer_info"`
	Items        []OrderItemCreateRequest `json:"items" binding:"required"`
}

// OrderItemCreateRequest 下单明细
type OrderItemCreateRequest struct {
	SKUID     uint    `json:"sku_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
	UnitPrice *string `json:"unit_price"`
}

// OrderStatusRequest 订单状态更新请求
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	var req OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	input := service.CreateOrderInput{
		PlatformID:   req.PlatformID,
		CustomerInfo: req.CustomerInfo,
	}
	for _, item := range req.Items {
		itemInput := service.CreateOrderItemInput{
			SKUID:    item.SKUID,
			Quantity: item.Quantity,
		}
		if item.UnitPrice != nil {
			price, err := parseDecimalField(*item.UnitPrice)
			if err != nil {
				respondError(c, response.CodeBadRequest, "价格格式不合法", err)
				return
			}
			itemInput.UnitPrice = price
		}
		input.Items = append(input.Items, itemInput)
	}

	order, err := h.OrderService.CreateOrder(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders 获取订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := parsePagination(c)
	platformID, _ := strconv.ParseUint(c.Query("platform_id"), 10, 64)
	filter := repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		PlatformID: uint(platformID),
		Status:     c.Query("status"),
		OrderNo:    c.Query("order_no"),
	}
	orders, total, err := h.OrderService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "订单ID不合法", nil)
		return
	}
	order, err := h.OrderService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// GetOrderByOrderNo 根据订单号获取订单
func (h *Handler) GetOrderByOrderNo(c *gin.Context) {
	orderNo := c.Param("order_no")
	order, err := h.OrderService.GetByOrderNo(orderNo)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消订单
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "订单ID不合法", nil)
		return
	}
	order, err := h.OrderService.CancelOrder(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "订单ID不合法", nil)
		return
	}
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}
