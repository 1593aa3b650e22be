package service

import (
	"context"
	"net/url"
	"testing"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const iphoneUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

func newRedirectService(t *testing.T) (RedirectService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	return NewRedirectService(repository.NewRedirectRepository(db), testLogger()), db
}

func TestRedirectResolveRecordsScan(t *testing.T) {
	svc, db := newRedirectService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.RedirectURLRequest{
		Slug:           "spring-box",
		DestinationURL: "https://example.com/spring",
		Campaign:       "spring-2026",
	})
	require.NoError(t, err)

	query := url.Values{}
	query.Set("utm_source", "instagram")
	query.Set("utm_medium", "social")
	query.Set("utm_campaign", "spring-2026")

	dest, err := svc.Resolve(ctx, "spring-box", iphoneUA, "203.0.113.9", "https://instagram.com", query)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/spring", dest)

	var scans []model.RedirectScan
	require.NoError(t, db.Where("redirect_url_id = ?", created.ID).Find(&scans).Error)
	require.Len(t, scans, 1)

	assert.NotEmpty(t, scans[0].ID)
	assert.Equal(t, "mobile", scans[0].Device)
	assert.Equal(t, "iOS", scans[0].OS)
	assert.Equal(t, "instagram", scans[0].UTMSource)
	assert.Equal(t, "social", scans[0].UTMMedium)
	assert.Equal(t, "spring-2026", scans[0].UTMCampaign)
	assert.Equal(t, "203.0.113.9", scans[0].IP)

	var redirect model.RedirectURL
	require.NoError(t, db.First(&redirect, created.ID).Error)
	assert.Equal(t, 1, redirect.ScanCount)
}

func TestRedirectResolveUnknownSlug(t *testing.T) {
	svc, _ := newRedirectService(t)

	_, err := svc.Resolve(context.Background(), "nope", "", "", "", url.Values{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedirectInactiveSlugNotResolved(t *testing.T) {
	svc, _ := newRedirectService(t)
	ctx := context.Background()

	inactive := false
	created, err := svc.Create(ctx, &dto.RedirectURLRequest{
		Slug:           "retired",
		DestinationURL: "https://example.com/old",
		Active:         &inactive,
	})
	require.NoError(t, err)
	require.False(t, created.Active)

	_, err = svc.Resolve(ctx, "retired", "", "", "", url.Values{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedirectStatsAggregation(t *testing.T) {
	svc, db := newRedirectService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.RedirectURLRequest{
		Slug:           "qr-box",
		DestinationURL: "https://example.com/box",
	})
	require.NoError(t, err)

	desktopUA := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	q := url.Values{}
	q.Set("utm_campaign", "holiday")

	_, err = svc.Resolve(ctx, "qr-box", iphoneUA, "", "", q)
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, "qr-box", desktopUA, "", "", url.Values{})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "qr-box", stats.Slug)
	assert.Equal(t, 2, stats.ScanCount)
	assert.Equal(t, 1, stats.ByDevice["mobile"])
	assert.Equal(t, 1, stats.ByDevice["desktop"])
	assert.Equal(t, 1, stats.ByCampaign["holiday"])

	var count int64
	require.NoError(t, db.Model(&model.RedirectScan{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestRedirectDeleteRemovesScans(t *testing.T) {
	svc, db := newRedirectService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.RedirectURLRequest{
		Slug:           "gone",
		DestinationURL: "https://example.com/gone",
	})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, "gone", iphoneUA, "", "", url.Values{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	var scans int64
	require.NoError(t, db.Model(&model.RedirectScan{}).Where("redirect_url_id = ?", created.ID).Count(&scans).Error)
	assert.Zero(t, scans)
}
