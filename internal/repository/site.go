package repository

import (
	"context"
	"time"

	"chocolate-storefront/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SiteCustomizationRepository interface {
	Upsert(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (*model.SiteCustomization, error)
	List(ctx context.Context) ([]*model.SiteCustomization, error)
	Delete(ctx context.Context, key string) error
}

type siteCustomizationRepoImpl struct {
	db *gorm.DB
}

func NewSiteCustomizationRepository(db *gorm.DB) SiteCustomizationRepository {
	return &siteCustomizationRepoImpl{
		db: db,
	}
}

func (r *siteCustomizationRepoImpl) Upsert(ctx context.Context, key, value string) error {
	row := &model.SiteCustomization{
		Key:   key,
		Value: value,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now(),
		}),
	}).Create(row).Error
}

func (r *siteCustomizationRepoImpl) Get(ctx context.Context, key string) (*model.SiteCustomization, error) {
	var row model.SiteCustomization
	err := r.db.WithContext(ctx).
		Where("`key` = ?", key).
		First(&row).Error

	if err != nil {
		return nil, err
	}

	return &row, nil
}

func (r *siteCustomizationRepoImpl) List(ctx context.Context) ([]*model.SiteCustomization, error) {
	var rows []*model.SiteCustomization
	err := r.db.WithContext(ctx).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *siteCustomizationRepoImpl) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("`key` = ?", key).
		Delete(&model.SiteCustomization{}).Error
}
