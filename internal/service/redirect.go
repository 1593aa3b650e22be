package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"
)

type RedirectService interface {
	Create(ctx context.Context, req *dto.RedirectURLRequest) (*model.RedirectURL, error)
	Update(ctx context.Context, id uint, req *dto.RedirectURLRequest) (*model.RedirectURL, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*model.RedirectURL, error)

	// Resolve looks up the destination for a slug and records the scan. A
	// scan-recording failure is logged, not returned: the visitor still
	// gets redirected.
	Resolve(ctx context.Context, slug, rawUA, ip, referrer string, query url.Values) (string, error)
	Stats(ctx context.Context, id uint) (*dto.RedirectStatsResponse, error)
}

type redirectServiceImpl struct {
	repo   repository.RedirectRepository
	logger *slog.Logger
}

func NewRedirectService(repo repository.RedirectRepository, logger *slog.Logger) RedirectService {
	return &redirectServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *redirectServiceImpl) Create(ctx context.Context, req *dto.RedirectURLRequest) (*model.RedirectURL, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	redirect := &model.RedirectURL{
		Slug:           req.Slug,
		DestinationURL: req.DestinationURL,
		Campaign:       req.Campaign,
		Active:         active,
	}

	if err := s.repo.Create(ctx, redirect); err != nil {
		return nil, fmt.Errorf("create redirect: %w", err)
	}

	return redirect, nil
}

func (s *redirectServiceImpl) Update(ctx context.Context, id uint, req *dto.RedirectURLRequest) (*model.RedirectURL, error) {
	redirect, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	redirect.Slug = req.Slug
	redirect.DestinationURL = req.DestinationURL
	redirect.Campaign = req.Campaign
	if req.Active != nil {
		redirect.Active = *req.Active
	}

	if err := s.repo.Update(ctx, redirect); err != nil {
		return nil, fmt.Errorf("update redirect: %w", err)
	}

	return redirect, nil
}

func (s *redirectServiceImpl) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *redirectServiceImpl) List(ctx context.Context) ([]*model.RedirectURL, error) {
	return s.repo.List(ctx)
}

func (s *redirectServiceImpl) Resolve(ctx context.Context, slug, rawUA, ip, referrer string, query url.Values) (string, error) {
	redirect, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return "", ErrNotFound
	}

	ua := useragent.Parse(rawUA)

	scan := &model.RedirectScan{
		ID:            uuid.NewString(),
		RedirectURLID: redirect.ID,
		Browser:       ua.Name,
		OS:            ua.OS,
		Device:        deviceClass(ua),
		UserAgent:     rawUA,
		IP:            ip,
		Referrer:      referrer,
		UTMSource:     query.Get("utm_source"),
		UTMMedium:     query.Get("utm_medium"),
		UTMCampaign:   query.Get("utm_campaign"),
	}

	if err := s.repo.RecordScan(ctx, scan); err != nil {
		s.logger.Error("record redirect scan", "slug", slug, "error", err)
	}

	return redirect.DestinationURL, nil
}

func deviceClass(ua useragent.UserAgent) string {
	switch {
	case ua.Bot:
		return "bot"
	case ua.Mobile:
		return "mobile"
	case ua.Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

func (s *redirectServiceImpl) Stats(ctx context.Context, id uint) (*dto.RedirectStatsResponse, error) {
	redirect, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	scans, err := s.repo.ListScans(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}

	stats := &dto.RedirectStatsResponse{
		Slug:       redirect.Slug,
		ScanCount:  redirect.ScanCount,
		ByDevice:   map[string]int{},
		ByBrowser:  map[string]int{},
		ByOS:       map[string]int{},
		ByCampaign: map[string]int{},
	}

	for _, scan := range scans {
		stats.ByDevice[scan.Device]++
		if scan.Browser != "" {
			stats.ByBrowser[scan.Browser]++
		}
		if scan.OS != "" {
			stats.ByOS[scan.OS]++
		}
		if scan.UTMCampaign != "" {
			stats.ByCampaign[scan.UTMCampaign]++
		}
	}

	return stats, nil
}
