package service

import (
	"context"
	"encoding/json"
	"fmt"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"
)

type CustomOrderService interface {
	Create(ctx context.Context, req *dto.CustomOrderRequest) (*model.CustomOrder, error)
	Get(ctx context.Context, id uint) (*model.CustomOrder, error)
	List(ctx context.Context, status string) ([]*model.CustomOrder, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type customOrderServiceImpl struct {
	repo repository.CustomOrderRepository
}

func NewCustomOrderService(repo repository.CustomOrderRepository) CustomOrderService {
	return &customOrderServiceImpl{
		repo: repo,
	}
}

func (s *customOrderServiceImpl) Create(ctx context.Context, req *dto.CustomOrderRequest) (*model.CustomOrder, error) {
	flavors, _ := json.Marshal(req.Flavors)

	order := &model.CustomOrder{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Occasion:      req.Occasion,
		Flavors:       string(flavors),
		Quantity:      req.Quantity,
		Budget:        req.Budget,
		Notes:         req.Notes,
		NeededBy:      req.NeededBy,
		Status:        "pending",
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create custom order: %w", err)
	}

	return order, nil
}

func (s *customOrderServiceImpl) Get(ctx context.Context, id uint) (*model.CustomOrder, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *customOrderServiceImpl) List(ctx context.Context, status string) ([]*model.CustomOrder, error) {
	return s.repo.List(ctx, status)
}

func (s *customOrderServiceImpl) UpdateStatus(ctx context.Context, id uint, status string) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *customOrderServiceImpl) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
