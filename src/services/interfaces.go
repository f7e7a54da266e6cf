package services

import (
	"context"
	"errors"

	"github.com/username/painelvendas/backend/src/models"
)

// ErrSessionNotFound means the session expired or never existed; the caller
// has to log in again, which re-fetches the snapshot.
var ErrSessionNotFound = errors.New("session not found or expired")

// DashboardService owns the per-session pipeline: it opens sessions by
// fetching and normalizing the remote snapshot, and answers every
// interaction by re-running Filter Engine and Aggregator over the session's
// Dataset.
type DashboardService interface {
	OpenSession(ctx context.Context) (string, models.Dataset, error)
	GetDataset(sessionID string) (models.Dataset, error)
	FilterOptions(ds models.Dataset) models.FilterOptions
	BuildDashboard(ds models.Dataset, criteria models.FilterCriteria) models.DashboardReport
	ExportFiltered(ds models.Dataset, criteria models.FilterCriteria) ([]byte, error)
}
