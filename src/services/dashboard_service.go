package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/painelvendas/backend/src/filter"
	"github.com/username/painelvendas/backend/src/loader"
	"github.com/username/painelvendas/backend/src/logger"
	"github.com/username/painelvendas/backend/src/models"
	"github.com/username/painelvendas/backend/src/normalizer"
	"github.com/username/painelvendas/backend/src/reports"
)

type dashboardServiceImpl struct {
	loader   loader.Loader
	sessions *cache.Cache
}

// NewDashboardService wires the pipeline behind a session store. Each
// session holds its own Dataset; the cache TTL is the session lifetime and
// expired entries are simply re-fetched on the next login.
func NewDashboardService(l loader.Loader, sessionTTL, cleanupInterval time.Duration) DashboardService {
	return &dashboardServiceImpl{
		loader:   l,
		sessions: cache.New(sessionTTL, cleanupInterval),
	}
}

// OpenSession runs Loader and Normalizer once and parks the result under a
// fresh session ID. A source failure aborts the session entirely.
func (s *dashboardServiceImpl) OpenSession(ctx context.Context) (string, models.Dataset, error) {
	startTime := time.Now()

	table, err := s.loader.Load(ctx)
	if err != nil {
		return "", models.Dataset{}, err
	}

	ds := normalizer.Normalize(table)
	if len(ds.Records) == 0 {
		return "", models.Dataset{}, fmt.Errorf("%w: snapshot contains no valid sales records", loader.ErrSourceUnavailable)
	}

	sessionID := uuid.NewString()
	s.sessions.SetDefault(sessionID, ds)

	logger.L.Info("Dashboard session opened",
		"sessionID", sessionID,
		"rawRows", len(table.Rows),
		"validRecords", len(ds.Records),
		"duration", time.Since(startTime))
	return sessionID, ds, nil
}

func (s *dashboardServiceImpl) GetDataset(sessionID string) (models.Dataset, error) {
	v, found := s.sessions.Get(sessionID)
	if !found {
		return models.Dataset{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	ds, ok := v.(models.Dataset)
	if !ok {
		return models.Dataset{}, fmt.Errorf("%w: corrupt session entry", ErrSessionNotFound)
	}
	return ds, nil
}

func (s *dashboardServiceImpl) FilterOptions(ds models.Dataset) models.FilterOptions {
	return filter.Options(ds)
}

func (s *dashboardServiceImpl) BuildDashboard(ds models.Dataset, criteria models.FilterCriteria) models.DashboardReport {
	filtered := filter.Apply(ds, criteria)
	return reports.Build(filtered)
}

func (s *dashboardServiceImpl) ExportFiltered(ds models.Dataset, criteria models.FilterCriteria) ([]byte, error) {
	filtered := filter.Apply(ds, criteria)
	return reports.ExportCSV(filtered)
}
