package api

import (
	"strconv"

	"github.com/anbar-next/internal/http/response"
	"github.com/anbar-next/internal/repository"
	"github.com/anbar-next/internal/service"

	"github.com/gin-gonic/gin"
)

// PricingRuleUpsertRequest 定价规则创建/更新请求
type PricingRuleUpsertRequest struct {
	PartnerID      uint    `json:"partner_id"`
	RuleName       string  `json:"rule_name" binding:"required"`
	RuleType       string  `json:"rule_type" binding:"required"`
	RuleValue      string  `json:"rule_value"`
	MinQuantity    int     `json:"min_quantity"`
	MaxQuantity    *int    `json:"max_quantity"`
	CategoryFilter *string `json:"category_filter"`
	Priority       int     `json:"priority"`
	ValidFrom      string  `json:"valid_from"`
	ValidUntil     string  `json:"valid_until"`
}

func (r PricingRuleUpsertRequest) toInput() (service.CreatePricingRuleInput, error) {
	input := service.CreatePricingRuleInput{
		PartnerID:      r.PartnerID,
		RuleName:       r.RuleName,
		RuleType:       r.RuleType,
		MinQuantity:    r.MinQuantity,
		MaxQuantity:    r.MaxQuantity,
		CategoryFilter: r.CategoryFilter,
		Priority:       r.Priority,
	}
	value, err := parseDecimalField(r.RuleValue)
	if err != nil {
		return input, err
	}
	input.RuleValue = value

	validFrom, err := parseTimeNullable(r.ValidFrom)
	if err != nil {
		return input, err
	}
	input.ValidFrom = validFrom

	validUntil, err := parseTimeNullable(r.ValidUntil)
	if err != nil {
		return input, err
	}
	input.ValidUntil = validUntil
	return input, nil
}

// ListPricingRules 获取定价规则列表
func (h *Handler) ListPricingRules(c *gin.Context) {
	page, pageSize := parsePagination(c)
	partnerID, _ := strconv.ParseUint(c.Query("partner_id"), 10, 64)
	filter := repository.PricingRuleListFilter{
		Page:       page,
		PageSize:   pageSize,
		PartnerID:  uint(partnerID),
		RuleType:   c.Query("rule_type"),
		OnlyActive: c.Query("only_active") == "true",
	}
	rules, total, err := h.PricingRuleAdminService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, rules, response.NewPagination(page, pageSize, total))
}

// GetPricingRule 获取定价规则详情
func (h *Handler) GetPricingRule(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "规则ID不合法", nil)
		return
	}
	rule, err := h.PricingRuleAdminService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, rule)
}

// CreatePricingRule 创建定价规则
func (h *Handler) CreatePricingRule(c *gin.Context) {
	var req PricingRuleUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "字段格式不合法", err)
		return
	}
	rule, err := h.PricingRuleAdminService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, rule)
}

// UpdatePricingRule 更新定价规则
func (h *Handler) UpdatePricingRule(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "规则ID不合法", nil)
		return
	}
	var req PricingRuleUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "字段格式不合法", err)
		return
	}
	rule, err := h.PricingRuleAdminService.Update(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, rule)
}

// DeactivatePricingRule 停用定价规则
func (h *Handler) DeactivatePricingRule(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "规则ID不合法", nil)
		return
	}
	if err := h.PricingRuleAdminService.Deactivate(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "deactivated", nil)
}

// ActivatePricingRule 启用定价规则
func (h *Handler) ActivatePricingRule(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "规则ID不合法", nil)
		return
	}
	if err := h.PricingRuleAdminService.Activate(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "activated", nil)
}
