package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPricingRuleRepoTest(t *testing.T) (*GormPricingRuleRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:pricing_rule_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Partner{}, &models.PricingRule{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewPricingRuleRepository(db), db
}

func createRepoTestRule(t *testing.T, db *gorm.DB, rule models.PricingRule) *models.PricingRule {
	t.Helper()
	if rule.RuleName == "" {
		rule.RuleName = fmt.Sprintf("rule_%d", time.Now().UnixNano())
	}
	if rule.RuleType == "" {
		rule.RuleType = constants.RuleTypePercentage
	}
	if rule.MinQuantity == 0 {
		rule.MinQuantity = 1
	}
	if rule.ValidFrom.IsZero() {
		rule.ValidFrom = time.Now().Add(-time.Hour)
	}
	if err := db.Create(&rule).Error; err != nil {
		t.Fatalf("create rule failed: %v", err)
	}
	return &rule
}

func TestListApplicableOrdering(t *testing.T) {
	repo, db := setupPricingRuleRepoTest(t)

	low := createRepoTestRule(t, db, models.PricingRule{PartnerID: 1, Priority: 1, IsActive: true})
	highA := createRepoTestRule(t, db, models.PricingRule{PartnerID: 1, Priority: 10, IsActive: true})
	highB := createRepoTestRule(t, db, models.PricingRule{PartnerID: 1, Priority: 10, IsActive: true})

	rules, err := repo.ListApplicable(1, nil, 1, time.Now())
	if err != nil {
		t.Fatalf("list applicable failed: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
	// 优先级降序，平手按 id 升序
	if rules[0].ID != highA.ID || rules[1].ID != highB.ID || rules[2].ID != low.ID {
		t.Fatalf("unexpected order: %d, %d, %d", rules[0].ID, rules[1].ID, rules[2].ID)
	}
}

func TestListApplicableFiltersInactive(t *testing.T) {
	repo, db := setupPricingRuleRepoTest(t)

	createRepoTestRule(t, db, models.PricingRule{PartnerID: 1, IsActive: false})
	active := createRepoTestRule(t, db, models.PricingRule{PartnerID: 1, IsActive: true})

	rules, err := repo.ListApplicable(1, nil, 1, time.Now())
	if err != nil {
		t.Fatalf("list applicable failed: %v", err)
	}
	if len(rules) != 1 || rules[0].ID != active.ID {
		t.Fatalf("expected only active rule, got %+v", rules)
	}
}

func TestListApplicableFiltersValidity(t *testing.T) {
	repo, db := setupPricingRuleRepoTest(t)
	now := time.Now()

	// 未来生效
	createRepoTestRule(t, db, models.PricingRule{
		PartnerID: 1, IsActive: true, ValidFrom: now.Add(time.Hour),
	})
	// 已过期
	expired := now.Add(-time.Minute)
	createRepoTestRule(t, db, models.PricingRule{
		PartnerID: 1, IsActive: true,
		ValidFrom: now.Add(-48 * time.Hour), ValidUntil: &expired,
	})
	// 长期有效
	open := createRepoTestRule(t, db, models.PricingRule{PartnerID: 1, IsActive: true})
	// 边界：valid_until 等于查询时间点应视为有效（含边界）
	until := now.Add(time.Minute)
	bounded := createRepoTestRule(t, db, models.PricingRule{
		PartnerID: 1, IsActive: true, ValidUntil: &until,
	})

	rules, err := repo.ListApplicable(1, nil, 1, now)
	if err != nil {
		t.Fatalf("list applicable failed: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 valid rules, got %d", len(rules))
	}
	ids := map[uint]bool{rules[0].ID: true, rules[1].ID: true}
	if !ids[open.ID] || !ids[bounded.ID] {
		t.Fatalf("unexpected rules: %+v", rules)
	}
}

func TestListApplicableFiltersQuantity(t *testing.T) {
	repo, db := setupPricingRuleRepoTest(t)

	maxQty := 10
	ranged := createRepoTestRule(t, db, models.PricingRule{
		PartnerID: 1, IsActive: true, MinQuantity: 5, MaxQuantity: &maxQty,
	})

	for qty, want := range map[int]int{4: 0, 5: 1, 10: 1, 11: 0} {
		rules, err := repo.ListApplicable(1, nil, qty, time.Now())
		if err != nil {
			t.Fatalf("list applicable failed: %v", err)
		}
		if len(rules) != want {
			t.Fatalf("quantity %d: expected %d rules, got %d", qty, want, len(rules))
		}
		if want == 1 && rules[0].ID != ranged.ID {
			t.Fatalf("quantity %d: unexpected rule %d", qty, rules[0].ID)
		}
	}
}

func TestListApplicableCategoryFilter(t *testing.T) {
	repo, db := setupPricingRuleRepoTest(t)

	clothing := "clothing"
	scoped := createRepoTestRule(t, db, models.PricingRule{
		PartnerID: 1, IsActive: true, CategoryFilter: &clothing,
	})
	global := createRepoTestRule(t, db, models.PricingRule{PartnerID: 1, IsActive: true})

	// 匹配分类：分类规则与无过滤规则都适用
	rules, err := repo.ListApplicable(1, &clothing, 1, time.Now())
	if err != nil {
		t.Fatalf("list applicable failed: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules for matching category, got %d", len(rules))
	}
	found := map[uint]bool{rules[0].ID: true, rules[1].ID: true}
	if !found[scoped.ID] || !found[global.ID] {
		t.Fatalf("unexpected rules for matching category: %+v", rules)
	}

	// 其他分类：只有无过滤规则适用
	shoes := "shoes"
	rules, err = repo.ListApplicable(1, &shoes, 1, time.Now())
	if err != nil {
		t.Fatalf("list applicable failed: %v", err)
	}
	if len(rules) != 1 || rules[0].ID != global.ID {
		t.Fatalf("expected only unfiltered rule, got %+v", rules)
	}

	// 无分类：分类规则不适用
	rules, err = repo.ListApplicable(1, nil, 1, time.Now())
	if err != nil {
		t.Fatalf("list applicable failed: %v", err)
	}
	if len(rules) != 1 || rules[0].ID != global.ID {
		t.Fatalf("expected only unfiltered rule without category, got %+v", rules)
	}
}

func TestListApplicableOtherPartnerExcluded(t *testing.T) {
	repo, db := setupPricingRuleRepoTest(t)

	createRepoTestRule(t, db, models.PricingRule{PartnerID: 2, IsActive: true})

	rules, err := repo.ListApplicable(1, nil, 1, time.Now())
	if err != nil {
		t.Fatalf("list applicable failed: %v", err)
	}
	if len(rules) != 0 {
		t.Fatalf("expected no rules for other partner, got %d", len(rules))
	}

	// partner_id 为 0 直接返回空
	rules, err = repo.ListApplicable(0, nil, 1, time.Now())
	if err != nil {
		t.Fatalf("list applicable failed: %v", err)
	}
	if len(rules) != 0 {
		t.Fatalf("expected empty result for zero partner id, got %d", len(rules))
	}
}
