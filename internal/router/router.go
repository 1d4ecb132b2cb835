package router

import (
	"github.com/anbar-next/internal/config"
	apihandlers "github.com/anbar-next/internal/http/handlers/api"
	"github.com/anbar-next/internal/logger"
	"github.com/anbar-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	apiHandler := apihandlers.New(c)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 定价
		pricing := apiV1.Group("/pricing")
		{
			pricing.POST("/calculate", apiHandler.CalculatePrice)
			pricing.POST("/recompute", apiHandler.RecomputeFinalPrices)
		}

		// 定价规则
		rules := apiV1.Group("/pricing-rules")
		{
			rules.GET("", apiHandler.ListPricingRules)
			rules.POST("", apiHandler.CreatePricingRule)
			rules.GET("/:id", apiHandler.GetPricingRule)
			rules.PUT("/:id", apiHandler.UpdatePricingRule)
			rules.POST("/:id/activate", apiHandler.ActivatePricingRule)
			rules.POST("/:id/deactivate", apiHandler.DeactivatePricingRule)
		}

		// 合作方
		partners := apiV1.Group("/partners")
		{
			partners.GET("", apiHandler.ListPartners)
			partners.POST("", apiHandler.CreatePartner)
			partners.GET("/:id", apiHandler.GetPartner)
			partners.PUT("/:id", apiHandler.UpdatePartner)
			partners.DELETE("/:id", apiHandler.DeletePartner)
			partners.POST("/:id/debt", apiHandler.AdjustPartnerDebt)
			partners.POST("/:id/settle", apiHandler.SettlePartner)
			partners.GET("/:id/settlements", apiHandler.ListPartnerSettlements)
		}

		// 商品与 SKU
		products := apiV1.Group("/products")
		{
			products.GET("", apiHandler.ListProducts)
			products.POST("", apiHandler.CreateProduct)
			products.GET("/:id", apiHandler.GetProduct)
			products.PUT("/:id", apiHandler.UpdateProduct)
			products.DELETE("/:id", apiHandler.DeleteProduct)
		}
		skus := apiV1.Group("/skus")
		{
			skus.GET("", apiHandler.ListSKUs)
			skus.POST("", apiHandler.CreateSKU)
			skus.GET("/:id", apiHandler.GetSKU)
			skus.PUT("/:id/base-price", apiHandler.UpdateSKUBasePrice)
			skus.PUT("/:id/inventory", apiHandler.SetSKUInventory)
		}

		// 库存
		inventory := apiV1.Group("/inventory")
		{
			inventory.POST("/supplier-feed", apiHandler.IngestSupplierFeed)
			inventory.GET("/updates", apiHandler.ListInventoryUpdates)
		}

		// 订单
		orders := apiV1.Group("/orders")
		{
			orders.GET("", apiHandler.ListOrders)
			orders.POST("", apiHandler.CreateOrder)
			orders.GET("/:id", apiHandler.GetOrder)
			orders.GET("/by-order-no/:order_no", apiHandler.GetOrderByOrderNo)
			orders.POST("/:id/cancel", apiHandler.CancelOrder)
			orders.PUT("/:id/status", apiHandler.UpdateOrderStatus)
		}

		// 平台
		platforms := apiV1.Group("/platforms")
		{
			platforms.GET("", apiHandler.ListPlatforms)
			platforms.POST("", apiHandler.CreatePlatform)
		}

		// 报表
		reports := apiV1.Group("/reports")
		{
			reports.GET("/inventory", apiHandler.GetInventorySummary)
			reports.GET("/partner-debt", apiHandler.GetPartnerDebtSummary)
			reports.GET("/orders", apiHandler.GetOrderSummary)
		}
	}

	// 健康检查
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
