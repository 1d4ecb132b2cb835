package api

import (
	"strconv"

	"github.com/anbar-next/internal/http/response"
	"github.com/anbar-next/internal/repository"
	"github.com/anbar-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductUpsertRequest 商品创建/更新请求
type ProductUpsertRequest struct {
	PartnerID   uint     `json:"partner_id"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Category    *string  `json:"category"`
	Brand       string   `json:"brand"`
	Images      []string `json:"images"`
	IsActive    *bool    `json:"is_active"`
}

// SKUCreateRequest SKU 创建请求
type SKUCreateRequest struct {
	ProductID  uint                   `json:"product_id"`
	SKUCode    string                 `json:"sku_code" binding:"required"`
	Size       string                 `json:"size"`
	Color      string                 `json:"color"`
	BasePrice  string                 `json:"base_price"`
	Inventory  int                    `json:"inventory"`
	Link       string                 `json:"link"`
	Weight     string                 `json:"weight"`
	Dimensions map[string]interface{} `json:"dimensions"`
}

// SKUBasePriceRequest SKU 成本价更新请求
type SKUBasePriceRequest struct {
	BasePrice string `json:"base_price" binding:"required"`
}

// ListProducts 获取商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)
	partnerID, _ := strconv.ParseUint(c.Query("partner_id"), 10, 64)
	filter := repository.ProductListFilter{
		Page:        page,
		PageSize:    pageSize,
		PartnerID:   uint(partnerID),
		Category:    c.Query("category"),
		Search:      c.Query("search"),
		OnlyActive:  c.Query("only_active") == "true",
		WithPartner: c.Query("with_partner") == "true",
	}
	products, total, err := h.ProductService.ListProducts(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "商品ID不合法", nil)
		return
	}
	product, err := h.ProductService.GetProduct(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	product, err := h.ProductService.CreateProduct(service.CreateProductInput{
		PartnerID:   req.PartnerID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		Images:      req.Images,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "商品ID不合法", nil)
		return
	}
	var req ProductUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	product, err := h.ProductService.UpdateProduct(id, service.CreateProductInput{
		PartnerID:   req.PartnerID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		Images:      req.Images,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "商品ID不合法", nil)
		return
	}
	if err := h.ProductService.DeleteProduct(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "deleted", nil)
}

// ListSKUs 获取 SKU 列表
func (h *Handler) ListSKUs(c *gin.Context) {
	page, pageSize := parsePagination(c)
	productID, _ := strconv.ParseUint(c.Query("product_id"), 10, 64)
	filter := repository.SKUListFilter{
		Page:        page,
		PageSize:    pageSize,
		ProductID:   uint(productID),
		OnlyActive:  c.Query("only_active") == "true",
		WithProduct: c.Query("with_product") == "true",
	}
	skus, total, err := h.ProductService.ListSKUs(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, skus, response.NewPagination(page, pageSize, total))
}

// GetSKU 获取 SKU 详情
func (h *Handler) GetSKU(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "SKU ID不合法", nil)
		return
	}
	sku, err := h.ProductService.GetSKU(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sku)
}

// CreateSKU 创建 SKU
func (h *Handler) CreateSKU(c *gin.Context) {
	var req SKUCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	input := service.CreateSKUInput{
		ProductID:  req.ProductID,
		SKUCode:    req.SKUCode,
		Size:       req.Size,
		Color:      req.Color,
		Inventory:  req.Inventory,
		Link:       req.Link,
		Dimensions: req.Dimensions,
	}
	basePrice, err := parseDecimalField(req.BasePrice)
	if err != nil {
		respondError(c, response.CodeBadRequest, "价格格式不合法", err)
		return
	}
	input.BasePrice = basePrice
	weight, err := parseDecimalField(req.Weight)
	if err != nil {
		respondError(c, response.CodeBadRequest, "重量格式不合法", err)
		return
	}
	input.Weight = weight

	sku, err := h.ProductService.CreateSKU(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sku)
}

// UpdateSKUBasePrice 更新 SKU 成本价（销售价缓存同步刷新）
func (h *Handler) UpdateSKUBasePrice(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "SKU ID不合法", nil)
		return
	}
	var req SKUBasePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	basePrice, err := decimal.NewFromString(req.BasePrice)
	if err != nil {
		respondError(c, response.CodeBadRequest, "价格格式不合法", err)
		return
	}
	sku, err := h.ProductService.UpdateSKUBasePrice(id, basePrice)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sku)
}
