package service

import (
	"context"
	"testing"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewService(t *testing.T) (ReviewService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	return NewReviewService(db, repository.NewReviewRepository(db), repository.NewProductRepository(db)), db
}

func TestReviewCreateRecomputesAverage(t *testing.T) {
	svc, db := newReviewService(t)
	ctx := context.Background()

	product := &model.Product{Name: "Bar", BasePrice: 500, Currency: "usd", Visible: true}
	require.NoError(t, db.Create(product).Error)

	_, err := svc.Create(ctx, &dto.ReviewRequest{ProductID: product.ID, Rating: 5, Comment: "excellent"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.ReviewRequest{ProductID: product.ID, Rating: 2, CustomerName: "Sam"})
	require.NoError(t, err)

	var got model.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.InDelta(t, 3.5, got.AverageRating, 1e-9)
	assert.Equal(t, 2, got.ReviewCount)
}

func TestReviewCreateUnknownProduct(t *testing.T) {
	svc, _ := newReviewService(t)

	_, err := svc.Create(context.Background(), &dto.ReviewRequest{ProductID: 42, Rating: 4})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewDeleteRecomputesAverage(t *testing.T) {
	svc, db := newReviewService(t)
	ctx := context.Background()

	product := &model.Product{Name: "Bar", BasePrice: 500, Currency: "usd", Visible: true}
	require.NoError(t, db.Create(product).Error)

	keep, err := svc.Create(ctx, &dto.ReviewRequest{ProductID: product.ID, Rating: 4})
	require.NoError(t, err)
	drop, err := svc.Create(ctx, &dto.ReviewRequest{ProductID: product.ID, Rating: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, drop.ID))

	var got model.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.InDelta(t, 4.0, got.AverageRating, 1e-9)
	assert.Equal(t, 1, got.ReviewCount)

	reviews, err := svc.ListByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, keep.ID, reviews[0].ID)
}
