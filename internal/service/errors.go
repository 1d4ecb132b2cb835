package service

import "errors"

// 业务语义错误，HTTP 层据此映射状态码与业务码
var (
	ErrNotFound = errors.New("记录不存在")

	ErrPricingStrategyUnknown = errors.New("未知的定价策略")

	ErrPricingRuleTypeInvalid     = errors.New("不支持的定价规则类型")
	ErrPricingRuleValueRequired   = errors.New("该规则类型必须提供规则数值")
	ErrPricingRuleQuantityInvalid = errors.New("规则数量区间不合法")
	ErrPricingRuleValidityInvalid = errors.New("规则有效期区间不合法")

	ErrPartnerNameRequired        = errors.New("合作方名称不能为空")
	ErrPartnerFormulaInvalid      = errors.New("合作方定价公式参数不合法")
	ErrPartnerCreditLimitExceeded = errors.New("超出合作方授信额度")
	ErrPartnerHasProducts         = errors.New("合作方名下存在商品，禁止删除")

	ErrSKUCodeRequired   = errors.New("SKU 编码不能为空")
	ErrSKUCodeExists     = errors.New("SKU 编码已存在")
	ErrSKUPriceInvalid   = errors.New("SKU 价格不合法")
	ErrInsufficientStock = errors.New("库存不足")

	ErrOrderEmptyItems    = errors.New("订单明细不能为空")
	ErrOrderItemInvalid   = errors.New("订单明细参数不合法")
	ErrOrderNotCancelable = errors.New("当前状态的订单不可取消")
	ErrOrderStatusInvalid = errors.New("不允许的订单状态流转")

	ErrSettlementAmountInvalid = errors.New("结算金额必须为正数")
)
