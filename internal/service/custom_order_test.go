package service

import (
	"context"
	"testing"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomOrderService(t *testing.T) CustomOrderService {
	t.Helper()
	return NewCustomOrderService(repository.NewCustomOrderRepository(newTestDB(t)))
}

func TestCustomOrderLifecycle(t *testing.T) {
	svc := newCustomOrderService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CustomOrderRequest{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Occasion:      "wedding",
		Flavors:       []string{"raspberry", "sea salt"},
		Quantity:      120,
		Budget:        300,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)
	assert.JSONEq(t, `["raspberry","sea salt"]`, created.Flavors)

	require.NoError(t, svc.UpdateStatus(ctx, created.ID, "quoted"))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "quoted", got.Status)
}

func TestCustomOrderListFiltersByStatus(t *testing.T) {
	svc := newCustomOrderService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, &dto.CustomOrderRequest{CustomerName: "A", CustomerEmail: "a@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.CustomOrderRequest{CustomerName: "B", CustomerEmail: "b@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, a.ID, "completed"))

	pending, err := svc.List(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "B", pending[0].CustomerName)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
