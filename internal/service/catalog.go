package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"

	"gorm.io/gorm"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, req *dto.ProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint, req *dto.ProductRequest) (*model.Product, error)
	// DeleteProduct removes the product and its reviews, images, cart items
	// and price variations in one transaction.
	DeleteProduct(ctx context.Context, id uint) error
	GetProduct(ctx context.Context, id uint) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, includeHidden bool) ([]*dto.ProductResponse, error)

	AddVariation(ctx context.Context, productID uint, req *dto.VariationRequest) (*model.ProductPriceVariation, error)
	UpdateVariation(ctx context.Context, id uint, req *dto.VariationRequest) (*model.ProductPriceVariation, error)
	DeleteVariation(ctx context.Context, id uint) error
	ListVariations(ctx context.Context, productID uint) ([]*model.ProductPriceVariation, error)

	CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uint, req *dto.CategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	ListCategories(ctx context.Context) ([]*model.Category, error)

	AddImage(ctx context.Context, productID uint, url, alt string, primary bool) (*model.ProductImage, error)
	DeleteImage(ctx context.Context, imageID uint) error
}

type catalogServiceImpl struct {
	db            *gorm.DB
	productRepo   repository.ProductRepository
	variationRepo repository.VariationRepository
	categoryRepo  repository.CategoryRepository
	reviewRepo    repository.ReviewRepository
	cartRepo      repository.CartRepository
	pricing       PricingService
	logger        *slog.Logger
}

func NewCatalogService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	variationRepo repository.VariationRepository,
	categoryRepo repository.CategoryRepository,
	reviewRepo repository.ReviewRepository,
	cartRepo repository.CartRepository,
	pricing PricingService,
	logger *slog.Logger,
) CatalogService {
	return &catalogServiceImpl{
		db:            db,
		productRepo:   productRepo,
		variationRepo: variationRepo,
		categoryRepo:  categoryRepo,
		reviewRepo:    reviewRepo,
		cartRepo:      cartRepo,
		pricing:       pricing,
		logger:        logger,
	}
}

func marshalOptions(options []string) string {
	if len(options) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(options)
	return string(data)
}

func unmarshalOptions(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var options []string
	if err := json.Unmarshal([]byte(raw), &options); err != nil {
		return []string{}
	}
	return options
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, req *dto.ProductRequest) (*model.Product, error) {
	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	product := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		BasePrice:     req.BasePrice,
		Currency:      "usd",
		CategoryID:    req.CategoryID,
		SizeOptions:   marshalOptions(req.SizeOptions),
		TypeOptions:   marshalOptions(req.TypeOptions),
		ShapeOptions:  marshalOptions(req.ShapeOptions),
		SaleType:      req.SaleType,
		SaleValue:     req.SaleValue,
		SaleActive:    req.SaleActive,
		SaleStartDate: req.SaleStartDate,
		SaleEndDate:   req.SaleEndDate,
		DisplayOrder:  req.DisplayOrder,
		Visible:       visible,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, id uint, req *dto.ProductRequest) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.BasePrice = req.BasePrice
	product.CategoryID = req.CategoryID
	product.SizeOptions = marshalOptions(req.SizeOptions)
	product.TypeOptions = marshalOptions(req.TypeOptions)
	product.ShapeOptions = marshalOptions(req.ShapeOptions)
	product.SaleType = req.SaleType
	product.SaleValue = req.SaleValue
	product.SaleActive = req.SaleActive
	product.SaleStartDate = req.SaleStartDate
	product.SaleEndDate = req.SaleEndDate
	product.DisplayOrder = req.DisplayOrder
	if req.Visible != nil {
		product.Visible = *req.Visible
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.DeleteByProduct(ctx, tx, id); err != nil {
			return fmt.Errorf("delete product reviews: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
			return fmt.Errorf("delete product images: %w", err)
		}
		if err := s.cartRepo.DeleteByProduct(ctx, tx, id); err != nil {
			return fmt.Errorf("delete product cart items: %w", err)
		}
		if err := s.variationRepo.DeleteByProduct(ctx, tx, id); err != nil {
			return fmt.Errorf("delete product variations: %w", err)
		}
		if err := s.productRepo.Delete(ctx, tx, id); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return nil
	})
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}

	return s.toResponse(ctx, product), nil
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, includeHidden bool) ([]*dto.ProductResponse, error) {
	products, err := s.productRepo.List(ctx, !includeHidden)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	responses := make([]*dto.ProductResponse, len(products))
	for i, product := range products {
		responses[i] = s.toResponse(ctx, product)
	}

	return responses, nil
}

func (s *catalogServiceImpl) toResponse(ctx context.Context, product *model.Product) *dto.ProductResponse {
	identifier := strconv.FormatUint(uint64(product.ID), 10)
	price := s.pricing.ResolveBasePrice(ctx, identifier)

	images := make([]string, len(product.Images))
	for i, img := range product.Images {
		images[i] = img.URL
	}

	resp := &dto.ProductResponse{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		Price:        price,
		CategoryID:   product.CategoryID,
		SizeOptions:  unmarshalOptions(product.SizeOptions),
		TypeOptions:  unmarshalOptions(product.TypeOptions),
		ShapeOptions: unmarshalOptions(product.ShapeOptions),
		SaleActive:   product.SaleActive,
		DisplayOrder: product.DisplayOrder,
		Visible:      product.Visible,
		Images:       images,
		Rating:       product.AverageRating,
		ReviewCount:  product.ReviewCount,
	}

	if sale, ok := salePrice(product, price, time.Now()); ok {
		resp.SalePrice = &sale
	}

	return resp
}

func salePrice(product *model.Product, price float64, now time.Time) (float64, bool) {
	if !product.SaleActive {
		return 0, false
	}
	if product.SaleStartDate != nil && now.Before(*product.SaleStartDate) {
		return 0, false
	}
	if product.SaleEndDate != nil && now.After(*product.SaleEndDate) {
		return 0, false
	}

	var sale float64
	switch product.SaleType {
	case "percentage":
		sale = price * (1 - product.SaleValue/100)
	case "fixed":
		sale = price - product.SaleValue
	default:
		return 0, false
	}

	if sale < 0 {
		sale = 0
	}

	return sale, true
}

func (s *catalogServiceImpl) AddVariation(ctx context.Context, productID uint, req *dto.VariationRequest) (*model.ProductPriceVariation, error) {
	variation := &model.ProductPriceVariation{
		ProductID:     productID,
		Size:          req.Size,
		Type:          req.Type,
		Shape:         req.Shape,
		PriceModifier: req.PriceModifier,
		IsAbsolute:    req.IsAbsolute,
		DisplayOrder:  req.DisplayOrder,
	}

	if err := s.variationRepo.Create(ctx, variation); err != nil {
		return nil, fmt.Errorf("create variation: %w", err)
	}

	return variation, nil
}

func (s *catalogServiceImpl) UpdateVariation(ctx context.Context, id uint, req *dto.VariationRequest) (*model.ProductPriceVariation, error) {
	variation := &model.ProductPriceVariation{
		ID:            id,
		Size:          req.Size,
		Type:          req.Type,
		Shape:         req.Shape,
		PriceModifier: req.PriceModifier,
		IsAbsolute:    req.IsAbsolute,
		DisplayOrder:  req.DisplayOrder,
	}

	var existing model.ProductPriceVariation
	if err := s.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		return nil, fmt.Errorf("find variation: %w", err)
	}
	variation.ProductID = existing.ProductID

	if err := s.variationRepo.Update(ctx, variation); err != nil {
		return nil, fmt.Errorf("update variation: %w", err)
	}

	return variation, nil
}

func (s *catalogServiceImpl) DeleteVariation(ctx context.Context, id uint) error {
	return s.variationRepo.Delete(ctx, id)
}

func (s *catalogServiceImpl) ListVariations(ctx context.Context, productID uint) ([]*model.ProductPriceVariation, error) {
	return s.variationRepo.ListByProduct(ctx, productID)
}

func (s *catalogServiceImpl) CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*model.Category, error) {
	category := &model.Category{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

func (s *catalogServiceImpl) UpdateCategory(ctx context.Context, id uint, req *dto.CategoryRequest) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}

	category.Name = req.Name
	category.Description = req.Description
	category.DisplayOrder = req.DisplayOrder

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	return category, nil
}

func (s *catalogServiceImpl) DeleteCategory(ctx context.Context, id uint) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogServiceImpl) AddImage(ctx context.Context, productID uint, url, alt string, primary bool) (*model.ProductImage, error) {
	image := &model.ProductImage{
		ProductID: productID,
		URL:       url,
		Alt:       alt,
		IsPrimary: primary,
	}

	if err := s.productRepo.AddImage(ctx, image); err != nil {
		return nil, fmt.Errorf("add product image: %w", err)
	}

	return image, nil
}

func (s *catalogServiceImpl) DeleteImage(ctx context.Context, imageID uint) error {
	return s.productRepo.DeleteImage(ctx, imageID)
}
