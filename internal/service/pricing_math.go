package service

import (
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// priceWithProfit 按合作方公式计算销售价：base + base*pct/100 + fixed。
// base 非正时返回零（防御性收敛，不作为错误）。纯函数，无 I/O。
func priceWithProfit(basePrice, profitPercentage, fixedAmount decimal.Decimal) decimal.Decimal {
	if basePrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	profitAmount := basePrice.Mul(profitPercentage).Div(decimalHundred)
	return basePrice.Add(profitAmount).Add(fixedAmount)
}

// applyPriceEnding 价格尾数归一：把价格向上补足到下一个 endingDigit 的整数倍。
// endingDigit 非正表示关闭归一；已满足尾数的价格原样返回。
// 只向上补足，归一结果不会低于输入价格；结果取整到元（四舍五入）。
// 未实现按余数大小向下取整的非对称规则，当前语义即为最终语义。
func applyPriceEnding(price decimal.Decimal, endingDigit int) decimal.Decimal {
	if endingDigit <= 0 {
		return price
	}
	ending := decimal.NewFromInt(int64(endingDigit))
	remainder := price.Mod(ending)
	if remainder.IsZero() {
		return price
	}
	adjustment := ending.Sub(remainder)
	return price.Add(adjustment).Round(0)
}
