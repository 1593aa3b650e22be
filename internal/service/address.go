package service

import (
	"context"
	"fmt"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"
)

type AddressService interface {
	Create(ctx context.Context, userID string, req *dto.AddressRequest) (*model.Address, error)
	Update(ctx context.Context, userID string, id uint, req *dto.AddressRequest) (*model.Address, error)
	Delete(ctx context.Context, userID string, id uint) error
	List(ctx context.Context, userID string) ([]*model.Address, error)
	SetDefault(ctx context.Context, userID string, id uint) error
}

type addressServiceImpl struct {
	repo repository.AddressRepository
}

func NewAddressService(repo repository.AddressRepository) AddressService {
	return &addressServiceImpl{
		repo: repo,
	}
}

func (s *addressServiceImpl) Create(ctx context.Context, userID string, req *dto.AddressRequest) (*model.Address, error) {
	address := &model.Address{
		UserID:     userID,
		Label:      req.Label,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}

	if err := s.repo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	if req.IsDefault {
		if err := s.repo.SetDefault(ctx, userID, address.ID); err != nil {
			return nil, fmt.Errorf("set default address: %w", err)
		}
		address.IsDefault = true
	}

	return address, nil
}

func (s *addressServiceImpl) Update(ctx context.Context, userID string, id uint, req *dto.AddressRequest) (*model.Address, error) {
	addresses, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	var address *model.Address
	for _, a := range addresses {
		if a.ID == id {
			address = a
			break
		}
	}
	if address == nil {
		return nil, ErrNotFound
	}

	address.Label = req.Label
	address.Line1 = req.Line1
	address.Line2 = req.Line2
	address.City = req.City
	address.State = req.State
	address.PostalCode = req.PostalCode
	address.Country = req.Country

	if err := s.repo.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	if req.IsDefault && !address.IsDefault {
		if err := s.repo.SetDefault(ctx, userID, id); err != nil {
			return nil, fmt.Errorf("set default address: %w", err)
		}
		address.IsDefault = true
	}

	return address, nil
}

func (s *addressServiceImpl) Delete(ctx context.Context, userID string, id uint) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *addressServiceImpl) List(ctx context.Context, userID string) ([]*model.Address, error) {
	return s.repo.List(ctx, userID)
}

func (s *addressServiceImpl) SetDefault(ctx context.Context, userID string, id uint) error {
	return s.repo.SetDefault(ctx, userID, id)
}
