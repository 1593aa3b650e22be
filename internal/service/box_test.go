package service

import (
	"context"
	"testing"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoxService(t *testing.T) BoxService {
	t.Helper()
	return NewBoxService(repository.NewBoxRepository(newTestDB(t)))
}

func TestBoxStockIsSumOfDeltas(t *testing.T) {
	svc := newBoxService(t)
	ctx := context.Background()

	boxType, err := svc.CreateType(ctx, &dto.BoxTypeRequest{Name: "9-piece", Capacity: 9})
	require.NoError(t, err)

	_, err = svc.Adjust(ctx, &dto.BoxInventoryRequest{BoxTypeID: boxType.ID, Quantity: 50, Note: "initial order"})
	require.NoError(t, err)
	_, err = svc.Adjust(ctx, &dto.BoxInventoryRequest{BoxTypeID: boxType.ID, Quantity: -12, Note: "weekend market"})
	require.NoError(t, err)

	stocks, err := svc.ListStock(ctx)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, 38, stocks[0].Stock)

	history, err := svc.History(ctx, boxType.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestBoxAdjustUnknownType(t *testing.T) {
	svc := newBoxService(t)

	_, err := svc.Adjust(context.Background(), &dto.BoxInventoryRequest{BoxTypeID: 99, Quantity: 10})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoxTypeUpdate(t *testing.T) {
	svc := newBoxService(t)
	ctx := context.Background()

	boxType, err := svc.CreateType(ctx, &dto.BoxTypeRequest{Name: "4-piece", Capacity: 4})
	require.NoError(t, err)

	updated, err := svc.UpdateType(ctx, boxType.ID, &dto.BoxTypeRequest{Name: "6-piece", Capacity: 6})
	require.NoError(t, err)
	assert.Equal(t, "6-piece", updated.Name)
	assert.Equal(t, 6, updated.Capacity)
}

func TestBoxStockEmptyTypeIsZero(t *testing.T) {
	svc := newBoxService(t)
	ctx := context.Background()

	_, err := svc.CreateType(ctx, &dto.BoxTypeRequest{Name: "12-piece", Capacity: 12})
	require.NoError(t, err)

	stocks, err := svc.ListStock(ctx)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Zero(t, stocks[0].Stock)
}
