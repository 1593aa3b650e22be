package service

import (
	"context"
	"fmt"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	// Create inserts the review and recomputes the product's average rating
	// in the same transaction.
	Create(ctx context.Context, req *dto.ReviewRequest) (*model.Review, error)
	ListByProduct(ctx context.Context, productID uint) ([]*model.Review, error)
	Delete(ctx context.Context, id uint) error
}

type reviewServiceImpl struct {
	db          *gorm.DB
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewService(
	db *gorm.DB,
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
) ReviewService {
	return &reviewServiceImpl{
		db:          db,
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

func (s *reviewServiceImpl) Create(ctx context.Context, req *dto.ReviewRequest) (*model.Review, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, ErrNotFound
	}

	review := &model.Review{
		ProductID:    req.ProductID,
		CustomerName: req.CustomerName,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			return fmt.Errorf("create review: %w", err)
		}

		average, count, err := s.reviewRepo.AverageForProduct(ctx, tx, req.ProductID)
		if err != nil {
			return fmt.Errorf("recompute average: %w", err)
		}

		return s.productRepo.UpdateRating(ctx, tx, req.ProductID, average, count)
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (s *reviewServiceImpl) ListByProduct(ctx context.Context, productID uint) ([]*model.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}

func (s *reviewServiceImpl) Delete(ctx context.Context, id uint) error {
	var review model.Review
	if err := s.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Delete(ctx, tx, id); err != nil {
			return err
		}

		average, count, err := s.reviewRepo.AverageForProduct(ctx, tx, review.ProductID)
		if err != nil {
			return err
		}

		return s.productRepo.UpdateRating(ctx, tx, review.ProductID, average, count)
	})
}
