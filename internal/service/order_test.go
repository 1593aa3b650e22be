package service

import (
	"context"
	"testing"

	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(t *testing.T) (OrderService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	pricing := NewPricingService(
		repository.NewProductRepository(db),
		repository.NewVariationRepository(db),
		testLogger(),
	)

	return NewOrderService(db, repository.NewOrderRepository(db), pricing, testLogger()), db
}

func TestResolveItemsPrefersStructuredRows(t *testing.T) {
	orders, db := newOrderService(t)

	order := &model.Order{Status: "paid", Metadata: `{"cart_items":[{"id":"classic","qty":5}]}`}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Create(&model.OrderItem{OrderID: order.ID, ProductID: "10", Name: "Sea Salt Caramels", Quantity: 1, Price: 8.00}).Error)

	items, err := orders.ResolveItems(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "10", items[0].ProductID)
}

func TestReconstructDubaiBarFromMetadataString(t *testing.T) {
	orders, db := newOrderService(t)

	// cart_items stored as a JSON string containing an array
	order := &model.Order{
		Status:   "paid",
		Metadata: `{"cart_items":"[{\"id\":\"DubaiBar\",\"qty\":2}]"}`,
	}
	require.NoError(t, db.Create(order).Error)

	items, err := orders.ResolveItems(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "4", items[0].ProductID) // slug translated to the numeric id
	assert.Equal(t, "rectangular", items[0].Shape)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 14.95, items[0].Price, 1e-9)
}

func TestReconstructFromMetadataArray(t *testing.T) {
	orders, db := newOrderService(t)

	require.NoError(t, db.Create(&model.Product{ID: 10, Name: "Sea Salt Caramels", BasePrice: 800, Currency: "usd", Visible: true}).Error)

	order := &model.Order{
		Status:   "pending",
		Metadata: `{"cart_items":[{"id":10,"quantity":3},{"id":"classic"}]}`,
	}
	require.NoError(t, db.Create(order).Error)

	items, err := orders.ResolveItems(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "10", items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "none", items[0].Shape) // only DubaiBar defaults to rectangular
	assert.InDelta(t, 8.00, items[0].Price, 1e-9)

	// missing qty defaults to 1
	assert.Equal(t, 1, items[1].Quantity)
	assert.InDelta(t, 8.00, items[1].Price, 1e-9)
}

func TestReconstructKeepsStoredPrice(t *testing.T) {
	orders, db := newOrderService(t)

	order := &model.Order{
		Status:   "paid",
		Metadata: `{"cart_items":[{"id":"classic","qty":1,"price":6.50}]}`,
	}
	require.NoError(t, db.Create(order).Error)

	items, err := orders.ResolveItems(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.InDelta(t, 6.50, items[0].Price, 1e-9)
}

func TestReconstructNameMatchFallback(t *testing.T) {
	orders, db := newOrderService(t)

	require.NoError(t, db.Create(&model.Product{ID: 42, Name: "Rose Truffles", BasePrice: 1200, Currency: "usd", Visible: true}).Error)

	order := &model.Order{
		Status:   "paid",
		Metadata: `{"cart_items":[{"id":"Rose Truffles","qty":2}]}`,
	}
	require.NoError(t, db.Create(order).Error)

	items, err := orders.ResolveItems(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "42", items[0].ProductID)
	assert.InDelta(t, 12.00, items[0].Price, 1e-9)
}

func TestResolveItemsNoMetadata(t *testing.T) {
	orders, db := newOrderService(t)

	order := &model.Order{Status: "pending"}
	require.NoError(t, db.Create(order).Error)

	items, err := orders.ResolveItems(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFixUpItemsPersistsReconstruction(t *testing.T) {
	orders, db := newOrderService(t)
	ctx := context.Background()

	order := &model.Order{
		Status:   "paid",
		Metadata: `{"cart_items":"[{\"id\":\"DubaiBar\",\"qty\":2}]"}`,
	}
	require.NoError(t, db.Create(order).Error)

	items, err := orders.FixUpItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	var stored []model.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "rectangular", stored[0].Shape)
	assert.Equal(t, 2, stored[0].Quantity)

	// resolving again now uses the structured rows
	resolved, err := orders.ResolveItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.NotZero(t, resolved[0].ID)
}

func TestOrderUpdateStatus(t *testing.T) {
	orders, db := newOrderService(t)
	ctx := context.Background()

	order := &model.Order{Status: "paid"}
	require.NoError(t, db.Create(order).Error)

	require.NoError(t, orders.UpdateStatus(ctx, order.ID, "shipped"))

	got, err := orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "shipped", got.Status)

	assert.Error(t, orders.UpdateStatus(ctx, 9999, "shipped"))
}
