package repository

import (
	"context"

	"chocolate-storefront/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *model.Review) error
	ListByProduct(ctx context.Context, productID uint) ([]*model.Review, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	DeleteByProduct(ctx context.Context, tx *gorm.DB, productID uint) error
	AverageForProduct(ctx context.Context, tx *gorm.DB, productID uint) (float64, int, error)
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepoImpl{
		db: db,
	}
}

func (r *reviewRepoImpl) Create(ctx context.Context, tx *gorm.DB, review *model.Review) error {
	return tx.WithContext(ctx).Create(review).Error
}

func (r *reviewRepoImpl) ListByProduct(ctx context.Context, productID uint) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&reviews).Error

	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepoImpl) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&model.Review{}, id).Error
}

func (r *reviewRepoImpl) DeleteByProduct(ctx context.Context, tx *gorm.DB, productID uint) error {
	return tx.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.Review{}).Error
}

func (r *reviewRepoImpl) AverageForProduct(ctx context.Context, tx *gorm.DB, productID uint) (float64, int, error) {
	var result struct {
		Average float64
		Count   int
	}
	err := tx.WithContext(ctx).Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as count").
		Where("product_id = ?", productID).
		Scan(&result).Error

	return result.Average, result.Count, err
}
