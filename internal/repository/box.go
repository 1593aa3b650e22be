package repository

import (
	"context"

	"chocolate-storefront/internal/model"

	"gorm.io/gorm"
)

type BoxRepository interface {
	CreateType(ctx context.Context, boxType *model.BoxType) error
	UpdateType(ctx context.Context, boxType *model.BoxType) error
	DeleteType(ctx context.Context, id uint) error
	FindType(ctx context.Context, id uint) (*model.BoxType, error)
	ListTypes(ctx context.Context) ([]*model.BoxType, error)

	AddInventory(ctx context.Context, entry *model.BoxInventory) error
	ListInventory(ctx context.Context, boxTypeID uint) ([]*model.BoxInventory, error)
	// StockLevel sums the delta log for one box type.
	StockLevel(ctx context.Context, boxTypeID uint) (int, error)
}

type boxRepoImpl struct {
	db *gorm.DB
}

func NewBoxRepository(db *gorm.DB) BoxRepository {
	return &boxRepoImpl{
		db: db,
	}
}

func (r *boxRepoImpl) CreateType(ctx context.Context, boxType *model.BoxType) error {
	return r.db.WithContext(ctx).Create(boxType).Error
}

func (r *boxRepoImpl) UpdateType(ctx context.Context, boxType *model.BoxType) error {
	return r.db.WithContext(ctx).Save(boxType).Error
}

func (r *boxRepoImpl) DeleteType(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("box_type_id = ?", id).Delete(&model.BoxInventory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.BoxType{}, id).Error
	})
}

func (r *boxRepoImpl) FindType(ctx context.Context, id uint) (*model.BoxType, error) {
	var boxType model.BoxType
	err := r.db.WithContext(ctx).First(&boxType, id).Error
	if err != nil {
		return nil, err
	}

	return &boxType, nil
}

func (r *boxRepoImpl) ListTypes(ctx context.Context) ([]*model.BoxType, error) {
	var types []*model.BoxType
	err := r.db.WithContext(ctx).Order("name asc").Find(&types).Error
	if err != nil {
		return nil, err
	}

	return types, nil
}

func (r *boxRepoImpl) AddInventory(ctx context.Context, entry *model.BoxInventory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *boxRepoImpl) ListInventory(ctx context.Context, boxTypeID uint) ([]*model.BoxInventory, error) {
	var entries []*model.BoxInventory
	err := r.db.WithContext(ctx).
		Where("box_type_id = ?", boxTypeID).
		Order("created_at desc").
		Find(&entries).Error

	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *boxRepoImpl) StockLevel(ctx context.Context, boxTypeID uint) (int, error) {
	var total struct {
		Total int
	}
	err := r.db.WithContext(ctx).Model(&model.BoxInventory{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("box_type_id = ?", boxTypeID).
		Scan(&total).Error

	return total.Total, err
}
