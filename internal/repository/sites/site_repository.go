package sites

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/proforma-service/internal/domain"
	"github.com/proforma-service/internal/domain/repository"
)

const selectSites = `
	SELECT site_id, land_cost, parcel_size, max_far, max_height, max_dua, ave_unit_size, rents, attributes
	FROM sites`

const upsertSite = `
	INSERT INTO sites (site_id, land_cost, parcel_size, max_far, max_height, max_dua, ave_unit_size, rents, attributes)
	VALUES (:site_id, :land_cost, :parcel_size, :max_far, :max_height, :max_dua, :ave_unit_size, :rents, :attributes)
	ON CONFLICT (site_id) DO UPDATE SET
		land_cost = excluded.land_cost,
		parcel_size = excluded.parcel_size,
		max_far = excluded.max_far,
		max_height = excluded.max_height,
		max_dua = excluded.max_dua,
		ave_unit_size = excluded.ave_unit_size,
		rents = excluded.rents,
		attributes = excluded.attributes`

type siteRow struct {
	ID          string         `db:"site_id"`
	LandCost    float64        `db:"land_cost"`
	ParcelSize  float64        `db:"parcel_size"`
	MaxFar      *float64       `db:"max_far"`
	MaxHeight   *float64       `db:"max_height"`
	MaxDua      *float64       `db:"max_dua"`
	AveUnitSize *float64       `db:"ave_unit_size"`
	Rents       string         `db:"rents"`
	Attributes  sql.NullString `db:"attributes"`
}

type siteRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSiteRepository(db *sqlx.DB, logger *zap.Logger) repository.SiteRepository {
	return &siteRepository{db: db, logger: logger}
}

// ListSites - the filter is a SQL boolean expression over site columns. It
// comes from the operator's parameter set, never from request input.
func (r *siteRepository) ListSites(ctx context.Context, filter string) ([]domain.Site, error) {
	query := selectSites
	if filter != "" {
		query += " WHERE " + filter
	}
	query += " ORDER BY site_id"

	var rows []siteRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("Failed to list sites", zap.String("filter", filter), zap.Error(err))
		return nil, fmt.Errorf("list sites: %w", err)
	}

	out := make([]domain.Site, 0, len(rows))
	for _, row := range rows {
		s, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	r.logger.Debug("Sites loaded", zap.Int("count", len(out)), zap.String("filter", filter))
	return out, nil
}

func (r *siteRepository) SaveSites(ctx context.Context, sites []domain.Site) error {
	if len(sites) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, s := range sites {
		row, err := siteRowFromDomain(s)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, upsertSite, row); err != nil {
			r.logger.Error("Failed to save site", zap.String("site_id", s.ID), zap.Error(err))
			return fmt.Errorf("save site %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.logger.Info("Sites saved", zap.Int("count", len(sites)))
	return nil
}

func siteRowFromDomain(s domain.Site) (siteRow, error) {
	rents, err := json.Marshal(s.Rents)
	if err != nil {
		return siteRow{}, fmt.Errorf("encode rents for site %s: %w", s.ID, err)
	}
	row := siteRow{
		ID:          s.ID,
		LandCost:    s.LandCost,
		ParcelSize:  s.ParcelSize,
		MaxFar:      s.MaxFar,
		MaxHeight:   s.MaxHeight,
		MaxDua:      s.MaxDua,
		AveUnitSize: s.AveUnitSize,
		Rents:       string(rents),
	}
	if len(s.Attributes) > 0 {
		attrs, err := json.Marshal(s.Attributes)
		if err != nil {
			return siteRow{}, fmt.Errorf("encode attributes for site %s: %w", s.ID, err)
		}
		row.Attributes = sql.NullString{String: string(attrs), Valid: true}
	}
	return row, nil
}

func (row siteRow) toDomain() (domain.Site, error) {
	s := domain.Site{
		ID:          row.ID,
		LandCost:    row.LandCost,
		ParcelSize:  row.ParcelSize,
		MaxFar:      row.MaxFar,
		MaxHeight:   row.MaxHeight,
		MaxDua:      row.MaxDua,
		AveUnitSize: row.AveUnitSize,
	}
	if err := json.Unmarshal([]byte(row.Rents), &s.Rents); err != nil {
		return domain.Site{}, fmt.Errorf("decode rents for site %s: %w", row.ID, err)
	}
	if row.Attributes.Valid && row.Attributes.String != "" {
		if err := json.Unmarshal([]byte(row.Attributes.String), &s.Attributes); err != nil {
			return domain.Site{}, fmt.Errorf("decode attributes for site %s: %w", row.ID, err)
		}
	}
	return s, nil
}
