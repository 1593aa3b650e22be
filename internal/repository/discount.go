package repository

import (
	"context"
	"fmt"
	"time"

	"chocolate-storefront/internal/model"

	"gorm.io/gorm"
)

type DiscountRepository interface {
	Create(ctx context.Context, discount *model.Discount) error
	Update(ctx context.Context, discount *model.Discount) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Discount, error)
	FindByCode(ctx context.Context, code string) (*model.Discount, error)
	List(ctx context.Context) ([]*model.Discount, error)
	// IncrementUsage enforces the max-uses ceiling only for serialized
	// callers: it is a check-then-act, two concurrent calls can both pass
	// the check.
	IncrementUsage(ctx context.Context, id uint) error
	SetStripeCouponID(ctx context.Context, id uint, couponID string) error
}

type discountRepoImpl struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepoImpl{
		db: db,
	}
}

func (r *discountRepoImpl) Create(ctx context.Context, discount *model.Discount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

func (r *discountRepoImpl) Update(ctx context.Context, discount *model.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

func (r *discountRepoImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Discount{}, id).Error
}

func (r *discountRepoImpl) FindByID(ctx context.Context, id uint) (*model.Discount, error) {
	var discount model.Discount
	err := r.db.WithContext(ctx).First(&discount, id).Error
	if err != nil {
		return nil, err
	}

	return &discount, nil
}

func (r *discountRepoImpl) FindByCode(ctx context.Context, code string) (*model.Discount, error) {
	var discount model.Discount
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&discount).Error

	if err != nil {
		return nil, err
	}

	return &discount, nil
}

func (r *discountRepoImpl) List(ctx context.Context) ([]*model.Discount, error) {
	var discounts []*model.Discount
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&discounts).Error

	if err != nil {
		return nil, err
	}

	return discounts, nil
}

func (r *discountRepoImpl) IncrementUsage(ctx context.Context, id uint) error {
	var discount model.Discount
	if err := r.db.WithContext(ctx).First(&discount, id).Error; err != nil {
		return err
	}

	if discount.MaxUses > 0 && discount.UsedCount >= discount.MaxUses {
		return fmt.Errorf("discount %q: usage limit reached", discount.Code)
	}

	return r.db.WithContext(ctx).Model(&model.Discount{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"used_count": gorm.Expr("used_count + 1"),
			"updated_at": time.Now(),
		}).Error
}

func (r *discountRepoImpl) SetStripeCouponID(ctx context.Context, id uint, couponID string) error {
	return r.db.WithContext(ctx).Model(&model.Discount{}).
		Where("id = ?", id).
		Update("stripe_coupon_id", couponID).Error
}

type PostPurchaseDiscountRepository interface {
	Create(ctx context.Context, discount *model.PostPurchaseDiscount) error
	FindByCode(ctx context.Context, code string) (*model.PostPurchaseDiscount, error)
	MarkUsed(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*model.PostPurchaseDiscount, error)
	Delete(ctx context.Context, id uint) error
}

type postPurchaseDiscountRepoImpl struct {
	db *gorm.DB
}

func NewPostPurchaseDiscountRepository(db *gorm.DB) PostPurchaseDiscountRepository {
	return &postPurchaseDiscountRepoImpl{
		db: db,
	}
}

func (r *postPurchaseDiscountRepoImpl) Create(ctx context.Context, discount *model.PostPurchaseDiscount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

func (r *postPurchaseDiscountRepoImpl) FindByCode(ctx context.Context, code string) (*model.PostPurchaseDiscount, error) {
	var discount model.PostPurchaseDiscount
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&discount).Error

	if err != nil {
		return nil, err
	}

	return &discount, nil
}

func (r *postPurchaseDiscountRepoImpl) MarkUsed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.PostPurchaseDiscount{}).
		Where("id = ?", id).
		Update("used", true).Error
}

func (r *postPurchaseDiscountRepoImpl) List(ctx context.Context) ([]*model.PostPurchaseDiscount, error) {
	var discounts []*model.PostPurchaseDiscount
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&discounts).Error

	if err != nil {
		return nil, err
	}

	return discounts, nil
}

func (r *postPurchaseDiscountRepoImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.PostPurchaseDiscount{}, id).Error
}
