package repository

import (
	"context"
	"errors"

	"chocolate-storefront/internal/model"

	"gorm.io/gorm"
)

type CartRepository interface {
	Add(ctx context.Context, item *model.CartItem) error
	List(ctx context.Context, userID string) ([]*model.CartItem, error)
	UpdateQuantity(ctx context.Context, userID string, itemID uint, quantity int) error
	Remove(ctx context.Context, userID string, itemID uint) error
	Clear(ctx context.Context, tx *gorm.DB, userID string) error
	DeleteByProduct(ctx context.Context, tx *gorm.DB, productID uint) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

// Add merges with an existing row for the same product and option
// combination instead of inserting a duplicate line.
func (r *cartRepoImpl) Add(ctx context.Context, item *model.CartItem) error {
	var existing model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND size = ? AND type = ? AND shape = ?",
			item.UserID, item.ProductID, item.Size, item.Type, item.Shape).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(item).Error
	}
	if err != nil {
		return err
	}

	existing.Quantity += item.Quantity
	return r.db.WithContext(ctx).Save(&existing).Error
}

func (r *cartRepoImpl) List(ctx context.Context, userID string) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) UpdateQuantity(ctx context.Context, userID string, itemID uint, quantity int) error {
	result := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", quantity)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *cartRepoImpl) Remove(ctx context.Context, userID string, itemID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) Clear(ctx context.Context, tx *gorm.DB, userID string) error {
	return tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) DeleteByProduct(ctx context.Context, tx *gorm.DB, productID uint) error {
	return tx.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.CartItem{}).Error
}
