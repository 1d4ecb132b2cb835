package api

import (
	"errors"

	"github.com/anbar-next/internal/http/response"
	"github.com/anbar-next/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError 把业务语义错误映射为统一响应码；
// 未识别的错误按内部错误处理并记日志。
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrPricingStrategyUnknown),
		errors.Is(err, service.ErrPricingRuleTypeInvalid),
		errors.Is(err, service.ErrPricingRuleValueRequired),
		errors.Is(err, service.ErrPricingRuleQuantityInvalid),
		errors.Is(err, service.ErrPricingRuleValidityInvalid),
		errors.Is(err, service.ErrPartnerNameRequired),
		errors.Is(err, service.ErrPartnerFormulaInvalid),
		errors.Is(err, service.ErrSKUCodeRequired),
		errors.Is(err, service.ErrSKUPriceInvalid),
		errors.Is(err, service.ErrOrderEmptyItems),
		errors.Is(err, service.ErrOrderItemInvalid),
		errors.Is(err, service.ErrOrderStatusInvalid),
		errors.Is(err, service.ErrSettlementAmountInvalid):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrPartnerCreditLimitExceeded),
		errors.Is(err, service.ErrPartnerHasProducts),
		errors.Is(err, service.ErrSKUCodeExists),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrOrderNotCancelable):
		respondError(c, response.CodeConflict, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, "内部错误", err)
	}
}
