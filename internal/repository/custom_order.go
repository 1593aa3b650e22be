package repository

import (
	"context"
	"time"

	"chocolate-storefront/internal/model"

	"gorm.io/gorm"
)

type CustomOrderRepository interface {
	Create(ctx context.Context, order *model.CustomOrder) error
	FindByID(ctx context.Context, id uint) (*model.CustomOrder, error)
	List(ctx context.Context, status string) ([]*model.CustomOrder, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type customOrderRepoImpl struct {
	db *gorm.DB
}

func NewCustomOrderRepository(db *gorm.DB) CustomOrderRepository {
	return &customOrderRepoImpl{
		db: db,
	}
}

func (r *customOrderRepoImpl) Create(ctx context.Context, order *model.CustomOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *customOrderRepoImpl) FindByID(ctx context.Context, id uint) (*model.CustomOrder, error) {
	var order model.CustomOrder
	err := r.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *customOrderRepoImpl) List(ctx context.Context, status string) ([]*model.CustomOrder, error) {
	var orders []*model.CustomOrder

	q := r.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	err := q.Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *customOrderRepoImpl) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&model.CustomOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *customOrderRepoImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.CustomOrder{}, id).Error
}
