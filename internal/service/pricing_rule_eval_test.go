package service

import (
	"testing"

	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/models"

	"github.com/shopspring/decimal"
)

func moneyPtr(v int64) *models.Money {
	m := models.NewMoneyFromInt(v)
	return &m
}

func TestApplyPricingRulePercentage(t *testing.T) {
	rule := models.PricingRule{RuleType: constants.RuleTypePercentage, RuleValue: moneyPtr(10)}
	got := applyPricingRule(decimal.NewFromInt(100000), rule, 1)
	if !got.Equal(decimal.NewFromInt(110000)) {
		t.Fatalf("expected 110000, got %s", got.String())
	}
}

func TestApplyPricingRulePercentageDiscount(t *testing.T) {
	rule := models.PricingRule{RuleType: constants.RuleTypePercentage, RuleValue: moneyPtr(-10)}
	got := applyPricingRule(decimal.NewFromInt(100000), rule, 1)
	if !got.Equal(decimal.NewFromInt(90000)) {
		t.Fatalf("expected 90000, got %s", got.String())
	}
}

func TestApplyPricingRuleFixedAmount(t *testing.T) {
	rule := models.PricingRule{RuleType: constants.RuleTypeFixedAmount, RuleValue: moneyPtr(2000)}
	got := applyPricingRule(decimal.NewFromInt(110000), rule, 1)
	if !got.Equal(decimal.NewFromInt(112000)) {
		t.Fatalf("expected 112000, got %s", got.String())
	}
}

func TestApplyPricingRuleCustomIsIdentity(t *testing.T) {
	rule := models.PricingRule{RuleType: constants.RuleTypeCustom, RuleValue: moneyPtr(50)}
	price := decimal.NewFromInt(100000)
	if got := applyPricingRule(price, rule, 1); !got.Equal(price) {
		t.Fatalf("expected custom rule to be identity, got %s", got.String())
	}
}

func TestApplyPricingRuleMissingValueIsIdentity(t *testing.T) {
	price := decimal.NewFromInt(100000)
	for _, ruleType := range []string{constants.RuleTypePercentage, constants.RuleTypeFixedAmount} {
		rule := models.PricingRule{RuleType: ruleType, RuleValue: nil}
		if got := applyPricingRule(price, rule, 1); !got.Equal(price) {
			t.Fatalf("expected identity for %s without value, got %s", ruleType, got.String())
		}
	}
}

func TestFoldPricingRulesChainsOnPreviousOutput(t *testing.T) {
	rules := []models.PricingRule{
		{RuleType: constants.RuleTypePercentage, RuleValue: moneyPtr(10)},
		{RuleType: constants.RuleTypeFixedAmount, RuleValue: moneyPtr(2000)},
	}
	// 100000 * 1.10 = 110000，再 + 2000 = 112000
	got := foldPricingRules(decimal.NewFromInt(100000), rules, 1)
	if !got.Equal(decimal.NewFromInt(112000)) {
		t.Fatalf("expected 112000, got %s", got.String())
	}
}

func TestFoldPricingRulesOrderMatters(t *testing.T) {
	forward := []models.PricingRule{
		{RuleType: constants.RuleTypePercentage, RuleValue: moneyPtr(10)},
		{RuleType: constants.RuleTypeFixedAmount, RuleValue: moneyPtr(2000)},
	}
	reversed := []models.PricingRule{
		{RuleType: constants.RuleTypeFixedAmount, RuleValue: moneyPtr(2000)},
		{RuleType: constants.RuleTypePercentage, RuleValue: moneyPtr(10)},
	}
	base := decimal.NewFromInt(100000)
	a := foldPricingRules(base, forward, 1)
	b := foldPricingRules(base, reversed, 1)
	// (100000+2000)*1.10 = 112200 != 112000
	if a.Equal(b) {
		t.Fatalf("expected different results for different orders, both %s", a.String())
	}
	if !b.Equal(decimal.NewFromInt(112200)) {
		t.Fatalf("expected 112200 for reversed order, got %s", b.String())
	}
}

func TestFoldPricingRulesEmpty(t *testing.T) {
	base := decimal.NewFromInt(100000)
	if got := foldPricingRules(base, nil, 1); !got.Equal(base) {
		t.Fatalf("expected cost price unchanged without rules, got %s", got.String())
	}
}
