package service

import (
	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/models"

	"github.com/shopspring/decimal"
)

// applyPricingRule 对当前价格应用单条定价规则。
// percentage：current * (1 + value/100)，value 为负表示折扣；
// fixed_amount：current + value，value 为负表示减价；
// custom：占位类型，不执行任何合作方自定义表达式，原样返回。
// 纯函数，规则数值缺失时不做任何调整。
func applyPricingRule(currentPrice decimal.Decimal, rule models.PricingRule, quantity int) decimal.Decimal {
	switch rule.RuleType {
	case constants.RuleTypePercentage:
		if rule.RuleValue == nil {
			return currentPrice
		}
		multiplier := decimal.New(1, 0).Add(rule.RuleValue.Decimal.Div(decimalHundred))
		return currentPrice.Mul(multiplier)
	case constants.RuleTypeFixedAmount:
		if rule.RuleValue == nil {
			return currentPrice
		}
		return currentPrice.Add(rule.RuleValue.Decimal)
	case constants.RuleTypeCustom:
		return currentPrice
	default:
		return currentPrice
	}
}

// foldPricingRules 从成本价出发按序左折叠规则列表：
// 每条规则作用在前一条的输出上，而不是原始成本价上。
func foldPricingRules(costPrice decimal.Decimal, rules []models.PricingRule, quantity int) decimal.Decimal {
	finalPrice := costPrice
	for _, rule := range rules {
		finalPrice = applyPricingRule(finalPrice, rule, quantity)
	}
	return finalPrice
}
