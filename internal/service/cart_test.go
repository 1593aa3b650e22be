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

func newCartService(t *testing.T) (CartService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	productRepo := repository.NewProductRepository(db)
	pricing := NewPricingService(productRepo, repository.NewVariationRepository(db), testLogger())

	return NewCartService(db, repository.NewCartRepository(db), productRepo, pricing), db
}

func seedCartProduct(t *testing.T, db *gorm.DB) *model.Product {
	t.Helper()

	product := &model.Product{ID: 10, Name: "Sea Salt Caramels", BasePrice: 800, Currency: "usd", Visible: true}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestCartAddMergesSameCombination(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()
	seedCartProduct(t, db)

	req := &dto.CartItemRequest{ProductID: 10, Size: "small", Type: "milk", Quantity: 1}
	require.NoError(t, svc.Add(ctx, "u1", req))
	require.NoError(t, svc.Add(ctx, "u1", req))

	lines, _, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Item.Quantity)
}

func TestCartAddDistinctCombinationsStaySeparate(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()
	seedCartProduct(t, db)

	require.NoError(t, svc.Add(ctx, "u1", &dto.CartItemRequest{ProductID: 10, Size: "small", Type: "milk", Quantity: 1}))
	require.NoError(t, svc.Add(ctx, "u1", &dto.CartItemRequest{ProductID: 10, Size: "small", Type: "dark", Quantity: 1}))

	lines, subtotal, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	// 8.00 milk + 10.00 dark (surcharge)
	assert.InDelta(t, 18.00, subtotal, 1e-9)
}

func TestCartAddUnknownProduct(t *testing.T) {
	svc, _ := newCartService(t)

	err := svc.Add(context.Background(), "u1", &dto.CartItemRequest{ProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartCartsAreScopedPerUser(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()
	seedCartProduct(t, db)

	require.NoError(t, svc.Add(ctx, "u1", &dto.CartItemRequest{ProductID: 10, Quantity: 1}))
	require.NoError(t, svc.Add(ctx, "u2", &dto.CartItemRequest{ProductID: 10, Quantity: 5}))

	lines, _, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Item.Quantity)
}

func TestCartUpdateQuantityZeroRemoves(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()
	seedCartProduct(t, db)

	require.NoError(t, svc.Add(ctx, "u1", &dto.CartItemRequest{ProductID: 10, Quantity: 2}))

	lines, _, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)

	require.NoError(t, svc.UpdateQuantity(ctx, "u1", lines[0].Item.ID, 0))

	lines, _, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartClear(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()
	seedCartProduct(t, db)

	require.NoError(t, svc.Add(ctx, "u1", &dto.CartItemRequest{ProductID: 10, Quantity: 1}))
	require.NoError(t, svc.Clear(ctx, "u1"))

	lines, subtotal, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Zero(t, subtotal)
}
