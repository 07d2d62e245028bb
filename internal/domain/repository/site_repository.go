package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/proforma-service/internal/domain"
)

// SiteRepository - candidate parcels fed to feasibility lookups
type SiteRepository interface {
	// ListSites returns stored sites, optionally narrowed by a parcel filter expression
	ListSites(ctx context.Context, filter string) ([]domain.Site, error)

	// SaveSites inserts or replaces sites by id
	SaveSites(ctx context.Context, sites []domain.Site) error
}

// ResultRepository - feasibility results produced by asynchronous runs
type ResultRepository interface {
	// SaveResults stores one run's results, replacing rows with the same run, form and site
	SaveResults(ctx context.Context, runID uuid.UUID, results []domain.FeasibilityResult) error

	// ListResults returns a run's results ordered by form then site
	ListResults(ctx context.Context, runID uuid.UUID) ([]domain.FeasibilityResult, error)
}
