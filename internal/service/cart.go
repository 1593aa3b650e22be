package service

import (
	"context"
	"fmt"
	"strconv"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"

	"gorm.io/gorm"
)

type CartLine struct {
	Item  *model.CartItem `json:"item"`
	Name  string          `json:"name"`
	Price float64         `json:"price"` // resolved unit price
}

type CartService interface {
	Add(ctx context.Context, userID string, req *dto.CartItemRequest) error
	Get(ctx context.Context, userID string) ([]*CartLine, float64, error)
	UpdateQuantity(ctx context.Context, userID string, itemID uint, quantity int) error
	Remove(ctx context.Context, userID string, itemID uint) error
	Clear(ctx context.Context, userID string) error
}

type cartServiceImpl struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	pricing     PricingService
}

func NewCartService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	pricing PricingService,
) CartService {
	return &cartServiceImpl{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		pricing:     pricing,
	}
}

func (s *cartServiceImpl) Add(ctx context.Context, userID string, req *dto.CartItemRequest) error {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return ErrNotFound
	}

	return s.cartRepo.Add(ctx, &model.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Size:      req.Size,
		Type:      req.Type,
		Shape:     req.Shape,
		Quantity:  req.Quantity,
	})
}

func (s *cartServiceImpl) Get(ctx context.Context, userID string) ([]*CartLine, float64, error) {
	items, err := s.cartRepo.List(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("list cart: %w", err)
	}

	lines := make([]*CartLine, len(items))
	subtotal := 0.0
	for i, item := range items {
		identifier := strconv.FormatUint(uint64(item.ProductID), 10)
		price := s.pricing.ResolvePrice(ctx, identifier, item.Size, item.Type, item.Shape)

		name := identifier
		if product, err := s.productRepo.FindByID(ctx, item.ProductID); err == nil {
			name = product.Name
		}

		lines[i] = &CartLine{Item: item, Name: name, Price: price}
		subtotal += price * float64(item.Quantity)
	}

	return lines, subtotal, nil
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID string, itemID uint, quantity int) error {
	if quantity <= 0 {
		return s.cartRepo.Remove(ctx, userID, itemID)
	}
	return s.cartRepo.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (s *cartServiceImpl) Remove(ctx context.Context, userID string, itemID uint) error {
	return s.cartRepo.Remove(ctx, userID, itemID)
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID string) error {
	return s.cartRepo.Clear(ctx, s.db, userID)
}
