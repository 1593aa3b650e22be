package repository

import (
	"context"
	"time"

	"chocolate-storefront/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindBySessionID(ctx context.Context, sessionID string) (*model.Order, error)
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*model.Order, error)
	List(ctx context.Context, status string) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status string) error
	MarkPaid(ctx context.Context, tx *gorm.DB, id uint) (*model.Order, error)

	CreateItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	GetItems(ctx context.Context, orderID uint) ([]*model.OrderItem, error)
	ReplaceItems(ctx context.Context, tx *gorm.DB, orderID uint, items []*model.OrderItem) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, id).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("payment_intent_id = ?", paymentIntentID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) List(ctx context.Context, status string) ([]*model.Order, error) {
	var orders []*model.Order

	q := r.db.WithContext(ctx).Preload("Items").Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	err := q.Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status string) error {
	result := tx.WithContext(ctx).Model(&model.Order{}).
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

func (r *orderRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, id uint) (*model.Order, error) {
	var order model.Order
	err := tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", id, "pending").
			Updates(map[string]interface{}{
				"status":     "paid",
				"updated_at": time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}

		return tx.Preload("Items").First(&order, id).Error
	})

	return &order, err
}

func (r *orderRepoImpl) CreateItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) GetItems(ctx context.Context, orderID uint) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *orderRepoImpl) ReplaceItems(ctx context.Context, tx *gorm.DB, orderID uint, items []*model.OrderItem) error {
	if err := tx.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}

	for _, item := range items {
		item.ID = 0
		item.OrderID = orderID
	}

	return r.CreateItems(ctx, tx, items)
}
