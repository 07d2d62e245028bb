// Package app wires the pieces shared by the api, worker and CLI binaries.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/proforma-service/internal/config"
	"github.com/proforma-service/internal/domain/repository"
	"github.com/proforma-service/internal/proforma"
	"github.com/proforma-service/internal/repository/postgres"
	"github.com/proforma-service/internal/repository/sites"
	"github.com/proforma-service/internal/repository/sqlite"
)

// LoadEngine - the pro forma from PROFORMA_CONFIG, or the stock parameter set
func LoadEngine(cfg *config.Config, logger *zap.Logger) (*proforma.ProForma, error) {
	if cfg.ProForma.ConfigPath == "" {
		logger.Info("Using default pro forma parameter set")
		return proforma.NewDefault(logger)
	}

	pcfg, err := proforma.LoadConfigFile(cfg.ProForma.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load parameter set: %w", err)
	}
	logger.Info("Loaded pro forma parameter set", zap.String("path", cfg.ProForma.ConfigPath))
	return proforma.New(pcfg, logger)
}

// Store - site and result repositories over whichever database is configured
type Store struct {
	Backend string
	Sites   repository.SiteRepository
	Results repository.ResultRepository

	db     *sqlx.DB
	health func(ctx context.Context) error
}

// OpenStore - SQLite when SQLITE_PATH is set, Postgres otherwise
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	if cfg.UseSQLite() {
		db, err := sqlite.Open(ctx, cfg.SQLite.Path, logger)
		if err != nil {
			return nil, err
		}
		return newStore("sqlite", db.DB, db.Health, logger), nil
	}

	db, err := postgres.New(&cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	return newStore("postgres", db.DB, db.Health, logger), nil
}

func newStore(backend string, db *sqlx.DB, health func(ctx context.Context) error, logger *zap.Logger) *Store {
	return &Store{
		Backend: backend,
		Sites:   sites.NewSiteRepository(db, logger),
		Results: sites.NewResultRepository(db, logger),
		db:      db,
		health:  health,
	}
}

func (s *Store) Health(ctx context.Context) error {
	return s.health(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
