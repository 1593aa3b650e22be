package service

import (
	"context"
	"fmt"

	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"
)

// Featured-product override keys. These used to live on an in-memory
// singleton patched by admin handlers; they are ordinary rows now.
const (
	KeyFeaturedProductID    = "featured_product_id"
	KeyFeaturedProductBadge = "featured_product_badge"
	KeyFeaturedProductImage = "featured_product_image"
)

type SiteService interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (*model.SiteCustomization, error)
	List(ctx context.Context) (map[string]string, error)
	Delete(ctx context.Context, key string) error
}

type siteServiceImpl struct {
	repo repository.SiteCustomizationRepository
}

func NewSiteService(repo repository.SiteCustomizationRepository) SiteService {
	return &siteServiceImpl{
		repo: repo,
	}
}

func (s *siteServiceImpl) Set(ctx context.Context, key, value string) error {
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return fmt.Errorf("upsert site customization: %w", err)
	}
	return nil
}

func (s *siteServiceImpl) Get(ctx context.Context, key string) (*model.SiteCustomization, error) {
	row, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, ErrNotFound
	}
	return row, nil
}

func (s *siteServiceImpl) List(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list site customizations: %w", err)
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}

	return values, nil
}

func (s *siteServiceImpl) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}
