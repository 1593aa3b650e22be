package repository

import (
	"context"

	"chocolate-storefront/internal/model"

	"gorm.io/gorm"
)

type RedirectRepository interface {
	Create(ctx context.Context, redirect *model.RedirectURL) error
	Update(ctx context.Context, redirect *model.RedirectURL) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.RedirectURL, error)
	FindBySlug(ctx context.Context, slug string) (*model.RedirectURL, error)
	List(ctx context.Context) ([]*model.RedirectURL, error)

	// RecordScan inserts the scan row and bumps the counter in one
	// transaction.
	RecordScan(ctx context.Context, scan *model.RedirectScan) error
	ListScans(ctx context.Context, redirectURLID uint) ([]*model.RedirectScan, error)
}

type redirectRepoImpl struct {
	db *gorm.DB
}

func NewRedirectRepository(db *gorm.DB) RedirectRepository {
	return &redirectRepoImpl{
		db: db,
	}
}

func (r *redirectRepoImpl) Create(ctx context.Context, redirect *model.RedirectURL) error {
	return r.db.WithContext(ctx).Create(redirect).Error
}

func (r *redirectRepoImpl) Update(ctx context.Context, redirect *model.RedirectURL) error {
	return r.db.WithContext(ctx).Save(redirect).Error
}

func (r *redirectRepoImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("redirect_url_id = ?", id).Delete(&model.RedirectScan{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.RedirectURL{}, id).Error
	})
}

func (r *redirectRepoImpl) FindByID(ctx context.Context, id uint) (*model.RedirectURL, error) {
	var redirect model.RedirectURL
	err := r.db.WithContext(ctx).First(&redirect, id).Error
	if err != nil {
		return nil, err
	}

	return &redirect, nil
}

func (r *redirectRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.RedirectURL, error) {
	var redirect model.RedirectURL
	err := r.db.WithContext(ctx).
		Where("slug = ? AND active = ?", slug, true).
		First(&redirect).Error

	if err != nil {
		return nil, err
	}

	return &redirect, nil
}

func (r *redirectRepoImpl) List(ctx context.Context) ([]*model.RedirectURL, error) {
	var redirects []*model.RedirectURL
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&redirects).Error

	if err != nil {
		return nil, err
	}

	return redirects, nil
}

func (r *redirectRepoImpl) RecordScan(ctx context.Context, scan *model.RedirectScan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(scan).Error; err != nil {
			return err
		}
		return tx.Model(&model.RedirectURL{}).
			Where("id = ?", scan.RedirectURLID).
			Update("scan_count", gorm.Expr("scan_count + 1")).Error
	})
}

func (r *redirectRepoImpl) ListScans(ctx context.Context, redirectURLID uint) ([]*model.RedirectScan, error) {
	var scans []*model.RedirectScan
	err := r.db.WithContext(ctx).
		Where("redirect_url_id = ?", redirectURLID).
		Order("created_at desc").
		Find(&scans).Error

	if err != nil {
		return nil, err
	}

	return scans, nil
}
