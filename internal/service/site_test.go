package service

import (
	"context"
	"testing"

	"chocolate-storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSiteService(t *testing.T) SiteService {
	t.Helper()
	return NewSiteService(repository.NewSiteCustomizationRepository(newTestDB(t)))
}

func TestSiteSetUpserts(t *testing.T) {
	svc := newSiteService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "hero_title", "Small Batch Chocolate"))
	require.NoError(t, svc.Set(ctx, "hero_title", "Fresh Batch Weekly"))

	row, err := svc.Get(ctx, "hero_title")
	require.NoError(t, err)
	assert.Equal(t, "Fresh Batch Weekly", row.Value)

	values, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, values, 1)
}

func TestSiteFeaturedProductKeys(t *testing.T) {
	svc := newSiteService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, KeyFeaturedProductID, "7"))
	require.NoError(t, svc.Set(ctx, KeyFeaturedProductBadge, "New"))

	values, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7", values[KeyFeaturedProductID])
	assert.Equal(t, "New", values[KeyFeaturedProductBadge])
}

func TestSiteGetMissingKey(t *testing.T) {
	svc := newSiteService(t)

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSiteDelete(t *testing.T) {
	svc := newSiteService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "banner", "closed for holidays"))
	require.NoError(t, svc.Delete(ctx, "banner"))

	_, err := svc.Get(ctx, "banner")
	assert.ErrorIs(t, err, ErrNotFound)
}
