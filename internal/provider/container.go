package provider

import (
	"github.com/anbar-next/internal/cache"
	"github.com/anbar-next/internal/config"
	"github.com/anbar-next/internal/logger"
	"github.com/anbar-next/internal/models"
	"github.com/anbar-next/internal/queue"
	"github.com/anbar-next/internal/repository"
	"github.com/anbar-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo            repository.UserRepository
	PartnerRepo         repository.PartnerRepository
	PricingRuleRepo     repository.PricingRuleRepository
	ProductRepo         repository.ProductRepository
	SKURepo             repository.SKURepository
	OrderRepo           repository.OrderRepository
	SettlementRepo      repository.SettlementRepository
	InventoryUpdateRepo repository.InventoryUpdateRepository
	SyncLogRepo         repository.SyncLogRepository
	PlatformRepo        repository.PlatformRepository
	SourcePlatformRepo  repository.SourcePlatformRepository
	ReportRepo          repository.ReportRepository

	// Services
	PricingService          *service.PricingService
	PricingRuleAdminService *service.PricingRuleAdminService
	PartnerService          *service.PartnerService
	ProductService          *service.ProductService
	InventoryUpdateService  *service.InventoryUpdateService
	OrderService            *service.OrderService
	ReportingService        *service.ReportingService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.PartnerRepo = repository.NewPartnerRepository(db)
	c.PricingRuleRepo = repository.NewPricingRuleRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.SKURepo = repository.NewSKURepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SettlementRepo = repository.NewSettlementRepository(db)
	c.InventoryUpdateRepo = repository.NewInventoryUpdateRepository(db)
	c.SyncLogRepo = repository.NewSyncLogRepository(db)
	c.PlatformRepo = repository.NewPlatformRepository(db)
	c.SourcePlatformRepo = repository.NewSourcePlatformRepository(db)
	c.ReportRepo = repository.NewReportRepository(db)
}

func (c *Container) initServices() {
	c.PricingService = service.NewPricingService(c.PartnerRepo, c.ProductRepo, c.SKURepo, c.PricingRuleRepo)
	c.PricingRuleAdminService = service.NewPricingRuleAdminService(c.PricingRuleRepo, c.PartnerRepo)
	c.PartnerService = service.NewPartnerService(c.PartnerRepo, c.ProductRepo, c.SettlementRepo, c.QueueClient)
	c.ProductService = service.NewProductService(c.ProductRepo, c.SKURepo, c.PartnerRepo, c.PricingService)
	c.InventoryUpdateService = service.NewInventoryUpdateService(c.SKURepo, c.ProductRepo, c.InventoryUpdateRepo, c.SourcePlatformRepo, c.SyncLogRepo, c.PricingService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.SKURepo, c.InventoryUpdateRepo, c.PricingService)
	c.ReportingService = service.NewReportingService(c.ReportRepo)
}
