package service

import (
	"testing"
	"time"

	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/models"
	"github.com/anbar-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newPricingRuleAdminServiceForTest(db *gorm.DB) *PricingRuleAdminService {
	return NewPricingRuleAdminService(
		repository.NewPricingRuleRepository(db),
		repository.NewPartnerRepository(db),
	)
}

func TestValidatePricingRuleInput(t *testing.T) {
	value := decimal.NewFromInt(10)
	tooDeep := decimal.NewFromInt(-150)
	maxQty := 3

	cases := []struct {
		name  string
		input CreatePricingRuleInput
		want  error
	}{
		{
			name:  "percentage without value",
			input: CreatePricingRuleInput{RuleType: constants.RuleTypePercentage},
			want:  ErrPricingRuleValueRequired,
		},
		{
			name:  "fixed amount without value",
			input: CreatePricingRuleInput{RuleType: constants.RuleTypeFixedAmount},
			want:  ErrPricingRuleValueRequired,
		},
		{
			name:  "percentage below -100",
			input: CreatePricingRuleInput{RuleType: constants.RuleTypePercentage, RuleValue: &tooDeep},
			want:  ErrPricingRuleTypeInvalid,
		},
		{
			name:  "unknown rule type",
			input: CreatePricingRuleInput{RuleType: "magic"},
			want:  ErrPricingRuleTypeInvalid,
		},
		{
			name:  "custom without value is fine",
			input: CreatePricingRuleInput{RuleType: constants.RuleTypeCustom},
			want:  nil,
		},
		{
			name: "max below min",
			input: CreatePricingRuleInput{
				RuleType:    constants.RuleTypePercentage,
				RuleValue:   &value,
				MinQuantity: 5,
				MaxQuantity: &maxQty,
			},
			want: ErrPricingRuleQuantityInvalid,
		},
	}

	for _, c := range cases {
		input := c.input
		if err := validatePricingRuleInput(&input); err != c.want {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, err)
		}
	}
}

func TestValidatePricingRuleInputNormalizes(t *testing.T) {
	value := decimal.NewFromInt(10)
	blank := "   "
	input := CreatePricingRuleInput{
		RuleType:       constants.RuleTypePercentage,
		RuleValue:      &value,
		MinQuantity:    0,
		CategoryFilter: &blank,
	}
	if err := validatePricingRuleInput(&input); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if input.MinQuantity != 1 {
		t.Fatalf("expected min quantity normalized to 1, got %d", input.MinQuantity)
	}
	if input.CategoryFilter != nil {
		t.Fatalf("expected blank category filter normalized to nil")
	}
}

func TestValidatePricingRuleInputValidity(t *testing.T) {
	value := decimal.NewFromInt(10)
	from := time.Now()
	until := from.Add(-time.Hour)
	input := CreatePricingRuleInput{
		RuleType:   constants.RuleTypePercentage,
		RuleValue:  &value,
		ValidFrom:  &from,
		ValidUntil: &until,
	}
	if err := validatePricingRuleInput(&input); err != ErrPricingRuleValidityInvalid {
		t.Fatalf("expected ErrPricingRuleValidityInvalid, got %v", err)
	}
}

func TestCreatePricingRuleRequiresPartner(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPricingRuleAdminServiceForTest(db)

	value := decimal.NewFromInt(10)
	_, err := svc.Create(CreatePricingRuleInput{
		PartnerID: 9999,
		RuleName:  "orphan rule",
		RuleType:  constants.RuleTypePercentage,
		RuleValue: &value,
	})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeactivateActivateRule(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newPricingRuleAdminServiceForTest(db)
	partner := seedTestPartner(t, db, 0, 0, 0)

	value := decimal.NewFromInt(10)
	rule, err := svc.Create(CreatePricingRuleInput{
		PartnerID: partner.ID,
		RuleName:  "toggle rule",
		RuleType:  constants.RuleTypePercentage,
		RuleValue: &value,
	})
	if err != nil {
		t.Fatalf("create rule failed: %v", err)
	}
	if !rule.IsActive {
		t.Fatalf("expected new rule active")
	}

	if err := svc.Deactivate(rule.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	var reloaded models.PricingRule
	if err := db.First(&reloaded, rule.ID).Error; err != nil {
		t.Fatalf("reload rule failed: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("expected rule inactive after deactivate")
	}

	// 重复停用幂等
	if err := svc.Deactivate(rule.ID); err != nil {
		t.Fatalf("repeated deactivate failed: %v", err)
	}

	if err := svc.Activate(rule.ID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if err := db.First(&reloaded, rule.ID).Error; err != nil {
		t.Fatalf("reload rule failed: %v", err)
	}
	if !reloaded.IsActive {
		t.Fatalf("expected rule active after activate")
	}
}
