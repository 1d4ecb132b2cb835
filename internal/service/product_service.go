package service

import (
	"strings"

	"github.com/anbar-next/internal/models"
	"github.com/anbar-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品与 SKU 业务服务
type ProductService struct {
	productRepo repository.ProductRepository
	skuRepo     repository.SKURepository
	partnerRepo repository.PartnerRepository
	pricing     *PricingService
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, skuRepo repository.SKURepository, partnerRepo repository.PartnerRepository, pricing *PricingService) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		skuRepo:     skuRepo,
		partnerRepo: partnerRepo,
		pricing:     pricing,
	}
}

// CreateProductInput 创建/更新商品输入
type CreateProductInput struct {
	PartnerID   uint
	Name        string
	Description string
	Category    *string
	Brand       string
	Images      []string
	IsActive    *bool
}

// CreateSKUInput 创建 SKU 输入
type CreateSKUInput struct {
	ProductID  uint
	SKUCode    string
	Size       string
	Color      string
	BasePrice  *decimal.Decimal
	Inventory  int
	Link       string
	Weight     *decimal.Decimal
	Dimensions map[string]interface{}
}

// CreateProduct 创建商品
func (s *ProductService) CreateProduct(input CreateProductInput) (*models.Product, error) {
	partner, err := s.partnerRepo.GetByID(input.PartnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrNotFound
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	product := &models.Product{
		PartnerID:   input.PartnerID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Category:    normalizeCategory(input.Category),
		Brand:       strings.TrimSpace(input.Brand),
		Images:      models.StringArray(input.Images),
		IsActive:    isActive,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct 更新商品
func (s *ProductService) UpdateProduct(id uint, input CreateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Category = normalizeCategory(input.Category)
	product.Brand = strings.TrimSpace(input.Brand)
	product.Images = models.StringArray(input.Images)
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct 获取商品详情（含合作方）
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByIDWithPartner(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// ListProducts 获取商品列表
func (s *ProductService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// DeleteProduct 删除商品
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.productRepo.Delete(id)
}

// CreateSKU 创建 SKU。base_price 存在时按合作方公式同步算出销售价缓存，
// 后续公式变更由批量重算刷新。
func (s *ProductService) CreateSKU(input CreateSKUInput) (*models.SKU, error) {
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	code := strings.TrimSpace(input.SKUCode)
	if code == "" {
		return nil, ErrSKUCodeRequired
	}
	existing, err := s.skuRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSKUCodeExists
	}
	if input.BasePrice != nil && input.BasePrice.LessThan(decimal.Zero) {
		return nil, ErrSKUPriceInvalid
	}

	sku := &models.SKU{
		ProductID: input.ProductID,
		SKUCode:   code,
		Size:      strings.TrimSpace(input.Size),
		Color:     strings.TrimSpace(input.Color),
		Inventory: input.Inventory,
		Quantity:  input.Inventory, // 历史别名字段同步
		Link:      strings.TrimSpace(input.Link),
		IsActive:  true,
	}
	if input.Dimensions != nil {
		sku.Dimensions = models.JSON(input.Dimensions)
	}
	if input.Weight != nil {
		weight := models.NewMoneyFromDecimal(*input.Weight)
		sku.Weight = &weight
	}
	if input.BasePrice != nil {
		base := models.NewMoneyFromDecimal(*input.BasePrice)
		sku.BasePrice = &base
		sku.CostPrice = &base

		finalPrice, err := s.pricing.CalculateFinalPriceWithFormula(input.BasePrice.Round(2), product.PartnerID, 1)
		if err != nil {
			return nil, err
		}
		price := models.NewMoneyFromDecimal(finalPrice)
		sku.FinalPrice = &price
		sku.Price = &price
	}

	if err := s.skuRepo.Create(sku); err != nil {
		return nil, err
	}
	return sku, nil
}

// UpdateSKUBasePrice 更新 SKU 成本价并立即重算销售价缓存
func (s *ProductService) UpdateSKUBasePrice(skuID uint, basePrice decimal.Decimal) (*models.SKU, error) {
	if basePrice.LessThan(decimal.Zero) {
		return nil, ErrSKUPriceInvalid
	}
	sku, err := s.skuRepo.GetByID(skuID)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, ErrNotFound
	}
	product, err := s.productRepo.GetByID(sku.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	base := models.NewMoneyFromDecimal(basePrice)
	sku.BasePrice = &base
	sku.CostPrice = &base

	finalPrice, err := s.pricing.CalculateFinalPriceWithFormula(basePrice, product.PartnerID, 1)
	if err != nil {
		return nil, err
	}
	price := models.NewMoneyFromDecimal(finalPrice)
	sku.FinalPrice = &price
	sku.Price = &price

	if err := s.skuRepo.Update(sku); err != nil {
		return nil, err
	}
	return sku, nil
}

// GetSKU 获取 SKU 详情
func (s *ProductService) GetSKU(id uint) (*models.SKU, error) {
	sku, err := s.skuRepo.GetByIDWithPartner(id)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, ErrNotFound
	}
	return sku, nil
}

// ListSKUs 获取 SKU 列表
func (s *ProductService) ListSKUs(filter repository.SKUListFilter) ([]models.SKU, int64, error) {
	return s.skuRepo.List(filter)
}

func normalizeCategory(category *string) *string {
	if category == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*category)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
