package repository

import (
	"context"

	"chocolate-storefront/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	List(ctx context.Context, visibleOnly bool) ([]*model.Product, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]*model.Product, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	UpdateRating(ctx context.Context, tx *gorm.DB, id uint, average float64, count int) error

	AddImage(ctx context.Context, image *model.ProductImage) error
	DeleteImage(ctx context.Context, imageID uint) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Variations").
		First(&product, id).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) List(ctx context.Context, visibleOnly bool) ([]*model.Product, error) {
	var products []*model.Product

	q := r.db.WithContext(ctx).Preload("Images").Order("display_order asc, id asc")
	if visibleOnly {
		q = q.Where("visible = ?", true)
	}

	err := q.Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) ListByCategory(ctx context.Context, categoryID uint) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("category_id = ? AND visible = ?", categoryID, true).
		Order("display_order asc, id asc").
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := tx.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *productRepoImpl) UpdateRating(ctx context.Context, tx *gorm.DB, id uint, average float64, count int) error {
	return tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"average_rating": average,
			"review_count":   count,
		}).Error
}

func (r *productRepoImpl) AddImage(ctx context.Context, image *model.ProductImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *productRepoImpl) DeleteImage(ctx context.Context, imageID uint) error {
	return r.db.WithContext(ctx).Delete(&model.ProductImage{}, imageID).Error
}
