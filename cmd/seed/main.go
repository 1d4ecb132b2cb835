package main

import (
	"time"

	"github.com/anbar-next/internal/config"
	"github.com/anbar-next/internal/constants"
	"github.com/anbar-next/internal/logger"
	"github.com/anbar-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加演示用户
	user := models.User{
		Email:    "demo@anbar.local",
		Name:     "Demo Operator",
		IsActive: true,
	}
	var existingUser models.User
	if err := models.DB.Where("email = ?", user.Email).First(&existingUser).Error; err != nil {
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Fatalf("Failed to create user: %v", err)
		}
		stdLog.Printf("Created user: %s", user.Email)
	} else {
		user = existingUser
		stdLog.Printf("User already exists: %s", user.Email)
	}

	// 添加合作方（携带定价公式）
	partners := []models.Partner{
		{
			UserID:         user.ID,
			Name:           "Tehran Textile Co",
			Type:           constants.PartnerTypeSupplier,
			ContactEmail:   "sales@tehran-textile.example",
			PlatformName:   "telegram",
			CreditLimit:    models.NewMoneyFromInt(50000000),
			SettlementDays: 30,
			ProfitPct:      models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
			FixedAmount:    models.NewMoneyFromInt(5000),
			PriceEnding:    1000,
			IsActive:       true,
		},
		{
			UserID:         user.ID,
			Name:           "Caspian Distribution",
			Type:           constants.PartnerTypeDistributor,
			ContactEmail:   "orders@caspian-dist.example",
			PlatformName:   "instagram",
			CreditLimit:    models.NewMoneyFromInt(0),
			SettlementDays: 14,
			ProfitPct:      models.NewMoneyFromDecimal(decimal.NewFromInt(35)),
			FixedAmount:    models.NewMoneyFromInt(0),
			PriceEnding:    0,
			IsActive:       true,
		},
	}
	partnerIDs := map[string]uint{}
	for _, p := range partners {
		var existing models.Partner
		if err := models.DB.Where("name = ?", p.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("Failed to create partner %s: %v", p.Name, err)
				continue
			}
			stdLog.Printf("Created partner: %s", p.Name)
			partnerIDs[p.Name] = p.ID
		} else {
			stdLog.Printf("Partner already exists: %s", existing.Name)
			partnerIDs[existing.Name] = existing.ID
		}
	}
	supplierID := partnerIDs["Tehran Textile Co"]
	distributorID := partnerIDs["Caspian Distribution"]

	// 添加商品
	clothing := "clothing"
	accessories := "accessories"
	products := []models.Product{
		{
			PartnerID:   supplierID,
			Name:        "棉质基础T恤",
			Description: "纯棉面料，四季可穿",
			Category:    &clothing,
			Brand:       "Anbar Basics",
			IsActive:    true,
		},
		{
			PartnerID:   supplierID,
			Name:        "帆布托特包",
			Description: "大容量日常帆布包",
			Category:    &accessories,
			Brand:       "Anbar Basics",
			IsActive:    true,
		},
		{
			PartnerID:   distributorID,
			Name:        "针织开衫",
			Description: "秋冬保暖针织外套",
			Category:    &clothing,
			Brand:       "Caspian Knit",
			IsActive:    true,
		},
	}
	productIDs := map[string]uint{}
	for _, p := range products {
		var existing models.Product
		if err := models.DB.Where("name = ? AND partner_id = ?", p.Name, p.PartnerID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", p.Name, err)
				continue
			}
			stdLog.Printf("Created product: %s", p.Name)
			productIDs[p.Name] = p.ID
		} else {
			stdLog.Printf("Product already exists: %s", existing.Name)
			productIDs[existing.Name] = existing.ID
		}
	}

	// 添加 SKU（final_price 按合作方公式预计算，等价于批量重算的结果）
	type skuSeed struct {
		productName string
		code        string
		size        string
		color       string
		basePrice   int64
		inventory   int
		finalPrice  int64
	}
	// 125000 * 1.20 + 5000 = 155000（尾数 1000 已对齐）
	// 98000 * 1.20 + 5000 = 122600 -> 尾数归一到 123000
	// 210000 * 1.35 = 283500（尾数归一关闭）
	skus := []skuSeed{
		{"棉质基础T恤", "TSH-BASE-M-WHT", "M", "白色", 125000, 120, 155000},
		{"棉质基础T恤", "TSH-BASE-L-BLK", "L", "黑色", 98000, 80, 123000},
		{"帆布托特包", "BAG-TOTE-STD", "", "米色", 98000, 45, 123000},
		{"针织开衫", "CRD-KNIT-M-GRY", "M", "灰色", 210000, 30, 283500},
	}
	for _, s := range skus {
		productID, ok := productIDs[s.productName]
		if !ok {
			continue
		}
		var existing models.SKU
		if err := models.DB.Where("sku_code = ?", s.code).First(&existing).Error; err != nil {
			base := models.NewMoneyFromInt(s.basePrice)
			final := models.NewMoneyFromInt(s.finalPrice)
			sku := models.SKU{
				ProductID:  productID,
				SKUCode:    s.code,
				Size:       s.size,
				Color:      s.color,
				BasePrice:  &base,
				FinalPrice: &final,
				Inventory:  s.inventory,
				Quantity:   s.inventory,
				Price:      &final,
				CostPrice:  &base,
				IsActive:   true,
			}
			if err := models.DB.Create(&sku).Error; err != nil {
				stdLog.Printf("Failed to create sku %s: %v", s.code, err)
			} else {
				stdLog.Printf("Created sku: %s", s.code)
			}
		} else {
			stdLog.Printf("SKU already exists: %s", existing.SKUCode)
		}
	}

	// 添加定价规则（规则路径演示：批量折扣 + 旺季加价）
	bulkDiscount := models.NewMoneyFromDecimal(decimal.NewFromInt(-10))
	seasonMarkup := models.NewMoneyFromInt(15000)
	maxQty := 999
	rules := []models.PricingRule{
		{
			PartnerID:   supplierID,
			RuleName:    "批量采购折扣",
			RuleType:    constants.RuleTypePercentage,
			RuleValue:   &bulkDiscount,
			MinQuantity: 10,
			MaxQuantity: &maxQty,
			Priority:    10,
			IsActive:    true,
			ValidFrom:   time.Now().AddDate(0, -1, 0),
		},
		{
			PartnerID:      distributorID,
			RuleName:       "服装旺季加价",
			RuleType:       constants.RuleTypeFixedAmount,
			RuleValue:      &seasonMarkup,
			MinQuantity:    1,
			CategoryFilter: &clothing,
			Priority:       5,
			IsActive:       true,
			ValidFrom:      time.Now().AddDate(0, -1, 0),
		},
	}
	for _, r := range rules {
		var existing models.PricingRule
		if err := models.DB.Where("rule_name = ? AND partner_id = ?", r.RuleName, r.PartnerID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&r).Error; err != nil {
				stdLog.Printf("Failed to create pricing rule %s: %v", r.RuleName, err)
			} else {
				stdLog.Printf("Created pricing rule: %s", r.RuleName)
			}
		} else {
			stdLog.Printf("Pricing rule already exists: %s", existing.RuleName)
		}
	}

	// 添加平台与来源平台绑定
	platform := models.Platform{
		Name:     "Supplier Feed Gateway",
		Type:     constants.PlatformTypeSource,
		IsActive: true,
	}
	var existingPlatform models.Platform
	if err := models.DB.Where("name = ?", platform.Name).First(&existingPlatform).Error; err != nil {
		if err := models.DB.Create(&platform).Error; err != nil {
			stdLog.Printf("Failed to create platform: %v", err)
		} else {
			stdLog.Printf("Created platform: %s", platform.Name)
		}
	} else {
		platform = existingPlatform
		stdLog.Printf("Platform already exists: %s", platform.Name)
	}

	if platform.ID != 0 {
		var existingSource models.SourcePlatform
		if err := models.DB.Where("platform_id = ? AND user_id = ?", platform.ID, user.ID).First(&existingSource).Error; err != nil {
			source := models.SourcePlatform{
				UserID:       user.ID,
				PlatformID:   platform.ID,
				SyncInterval: 3600,
				IsActive:     true,
			}
			if err := models.DB.Create(&source).Error; err != nil {
				stdLog.Printf("Failed to create source platform binding: %v", err)
			} else {
				stdLog.Printf("Created source platform binding: platform %d", platform.ID)
			}
		} else {
			stdLog.Printf("Source platform binding already exists: platform %d", platform.ID)
		}
	}

	stdLog.Println("Seed completed")
}
