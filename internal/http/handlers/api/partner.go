package api

import (
	"github.com/anbar-next/internal/http/response"
	"github.com/anbar-next/internal/repository"
	"github.com/anbar-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PartnerUpsertRequest 合作方创建/更新请求
type PartnerUpsertRequest struct {
	UserID          uint   `json:"user_id"`
	Name            string `json:"name" binding:"required"`
	Type            string `json:"type"`
	ContactEmail    string `json:"contact_email"`
	ContactPhone    string `json:"contact_phone"`
	Address         string `json:"address"`
	Description     string `json:"description"`
	PlatformName    string `json:"platform_name"`
	PlatformAddress string `json:"platform_address"`
	CreditLimit     string `json:"credit_limit"`
	PaymentTerms    string `json:"payment_terms"`
	SettlementDays  int    `json:"settlement_period_days"`
	ProfitPct       string `json:"profit_percentage"`
	FixedAmount     string `json:"fixed_amount"`
	PriceEnding     int    `json:"price_ending_digit"`
	IsActive        *bool  `json:"is_active"`
}

// PartnerDebtRequest 欠款调整请求
type PartnerDebtRequest struct {
	Delta  string `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

// PartnerSettleRequest 结算请求
type PartnerSettleRequest struct {
	Amount    string `json:"amount" binding:"required"`
	SettledBy string `json:"settled_by"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes"`
}

func (r PartnerUpsertRequest) toInput() (service.CreatePartnerInput, error) {
	input := service.CreatePartnerInput{
		UserID:          r.UserID,
		Name:            r.Name,
		Type:            r.Type,
		ContactEmail:    r.ContactEmail,
		ContactPhone:    r.ContactPhone,
		Address:         r.Address,
		Description:     r.Description,
		PlatformName:    r.PlatformName,
		PlatformAddress: r.PlatformAddress,
		PaymentTerms:    r.PaymentTerms,
		SettlementDays:  r.SettlementDays,
		PriceEnding:     r.PriceEnding,
		IsActive:        r.IsActive,
	}
	for _, field := range []struct {
		raw  string
		dest *decimal.Decimal
	}{
		{r.CreditLimit, &input.CreditLimit},
		{r.ProfitPct, &input.ProfitPct},
		{r.FixedAmount, &input.FixedAmount},
	} {
		parsed, err := parseDecimalField(field.raw)
		if err != nil {
			return input, err
		}
		if parsed != nil {
			*field.dest = *parsed
		}
	}
	return input, nil
}

// ListPartners 获取合作方列表
func (h *Handler) ListPartners(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.PartnerListFilter{
		Page:       page,
		PageSize:   pageSize,
		Type:       c.Query("type"),
		Search:     c.Query("search"),
		OnlyActive: c.Query("only_active") == "true",
	}
	partners, total, err := h.PartnerService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, partners, response.NewPagination(page, pageSize, total))
}

// GetPartner 获取合作方详情
func (h *Handler) GetPartner(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "合作方ID不合法", nil)
		return
	}
	partner, err := h.PartnerService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, partner)
}

// CreatePartner 创建合作方
func (h *Handler) CreatePartner(c *gin.Context) {
	var req PartnerUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "金额格式不合法", err)
		return
	}
	partner, err := h.PartnerService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, partner)
}

// UpdatePartner 更新合作方
func (h *Handler) UpdatePartner(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "合作方ID不合法", nil)
		return
	}
	var req PartnerUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "金额格式不合法", err)
		return
	}
	partner, err := h.PartnerService.Update(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, partner)
}

// DeletePartner 删除合作方
func (h *Handler) DeletePartner(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "合作方ID不合法", nil)
		return
	}
	if err := h.PartnerService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "deleted", nil)
}

// AdjustPartnerDebt 调整合作方欠款
func (h *Handler) AdjustPartnerDebt(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "合作方ID不合法", nil)
		return
	}
	var req PartnerDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	delta, err := decimal.NewFromString(req.Delta)
	if err != nil {
		respondError(c, response.CodeBadRequest, "金额格式不合法", err)
		return
	}
	partner, err := h.PartnerService.AdjustDebt(id, delta, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, partner)
}

// SettlePartner 结算合作方欠款
func (h *Handler) SettlePartner(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "合作方ID不合法", nil)
		return
	}
	var req PartnerSettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(c, response.CodeBadRequest, "金额格式不合法", err)
		return
	}
	settlement, err := h.PartnerService.Settle(id, amount, req.SettledBy, req.Reason, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, settlement)
}

// ListPartnerSettlements 获取合作方结算记录
func (h *Handler) ListPartnerSettlements(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "合作方ID不合法", nil)
		return
	}
	page, pageSize := parsePagination(c)
	settlements, total, err := h.PartnerService.ListSettlements(id, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, settlements, response.NewPagination(page, pageSize, total))
}
