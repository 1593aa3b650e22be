package repository

import (
	"context"

	"chocolate-storefront/internal/model"

	"gorm.io/gorm"
)

type VariationRepository interface {
	Create(ctx context.Context, variation *model.ProductPriceVariation) error
	Update(ctx context.Context, variation *model.ProductPriceVariation) error
	Delete(ctx context.Context, id uint) error
	ListByProduct(ctx context.Context, productID uint) ([]*model.ProductPriceVariation, error)
	DeleteByProduct(ctx context.Context, tx *gorm.DB, productID uint) error
}

type variationRepoImpl struct {
	db *gorm.DB
}

func NewVariationRepository(db *gorm.DB) VariationRepository {
	return &variationRepoImpl{
		db: db,
	}
}

func (r *variationRepoImpl) Create(ctx context.Context, variation *model.ProductPriceVariation) error {
	return r.db.WithContext(ctx).Create(variation).Error
}

func (r *variationRepoImpl) Update(ctx context.Context, variation *model.ProductPriceVariation) error {
	return r.db.WithContext(ctx).Save(variation).Error
}

func (r *variationRepoImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.ProductPriceVariation{}, id).Error
}

func (r *variationRepoImpl) ListByProduct(ctx context.Context, productID uint) ([]*model.ProductPriceVariation, error) {
	var variations []*model.ProductPriceVariation
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("display_order asc, id asc").
		Find(&variations).Error

	if err != nil {
		return nil, err
	}

	return variations, nil
}

func (r *variationRepoImpl) DeleteByProduct(ctx context.Context, tx *gorm.DB, productID uint) error {
	return tx.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.ProductPriceVariation{}).Error
}
