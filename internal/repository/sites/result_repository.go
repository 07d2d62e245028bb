package sites

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/proforma-service/internal/domain"
	"github.com/proforma-service/internal/domain/repository"
)

const upsertResult = `
	INSERT INTO feasibility_results (
		run_id, form, site_id, parking_config, max_profit_far, building_sqft,
		residential_sqft, non_residential_sqft, building_cost, financing_cost,
		total_cost, building_revenue, max_profit, stories, construction_time,
		parking_ratio, pass_through
	) VALUES (
		:run_id, :form, :site_id, :parking_config, :max_profit_far, :building_sqft,
		:residential_sqft, :non_residential_sqft, :building_cost, :financing_cost,
		:total_cost, :building_revenue, :max_profit, :stories, :construction_time,
		:parking_ratio, :pass_through
	)
	ON CONFLICT (run_id, form, site_id) DO UPDATE SET
		parking_config = excluded.parking_config,
		max_profit_far = excluded.max_profit_far,
		building_sqft = excluded.building_sqft,
		residential_sqft = excluded.residential_sqft,
		non_residential_sqft = excluded.non_residential_sqft,
		building_cost = excluded.building_cost,
		financing_cost = excluded.financing_cost,
		total_cost = excluded.total_cost,
		building_revenue = excluded.building_revenue,
		max_profit = excluded.max_profit,
		stories = excluded.stories,
		construction_time = excluded.construction_time,
		parking_ratio = excluded.parking_ratio,
		pass_through = excluded.pass_through`

const selectResults = `
	SELECT run_id, form, site_id, parking_config, max_profit_far, building_sqft,
		residential_sqft, non_residential_sqft, building_cost, financing_cost,
		total_cost, building_revenue, max_profit, stories, construction_time,
		parking_ratio, pass_through
	FROM feasibility_results
	WHERE run_id = ?
	ORDER BY form, site_id`

type resultRow struct {
	RunID string `db:"run_id"`
	domain.FeasibilityResult
	PassThroughJSON sql.NullString `db:"pass_through"`
}

type resultRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewResultRepository(db *sqlx.DB, logger *zap.Logger) repository.ResultRepository {
	return &resultRepository{db: db, logger: logger}
}

func (r *resultRepository) SaveResults(ctx context.Context, runID uuid.UUID, results []domain.FeasibilityResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, res := range results {
		row := resultRow{RunID: runID.String(), FeasibilityResult: res}
		if len(res.PassThrough) > 0 {
			data, err := json.Marshal(res.PassThrough)
			if err != nil {
				return fmt.Errorf("encode pass-through for site %s: %w", res.SiteID, err)
			}
			row.PassThroughJSON = sql.NullString{String: string(data), Valid: true}
		}
		if _, err := tx.NamedExecContext(ctx, upsertResult, row); err != nil {
			r.logger.Error("Failed to save result",
				zap.String("run_id", runID.String()),
				zap.String("form", res.Form),
				zap.String("site_id", res.SiteID),
				zap.Error(err))
			return fmt.Errorf("save result %s/%s: %w", res.Form, res.SiteID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.logger.Info("Feasibility results saved",
		zap.String("run_id", runID.String()),
		zap.Int("count", len(results)))
	return nil
}

func (r *resultRepository) ListResults(ctx context.Context, runID uuid.UUID) ([]domain.FeasibilityResult, error) {
	var rows []resultRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(selectResults), runID.String()); err != nil {
		r.logger.Error("Failed to list results", zap.String("run_id", runID.String()), zap.Error(err))
		return nil, fmt.Errorf("list results: %w", err)
	}

	out := make([]domain.FeasibilityResult, 0, len(rows))
	for _, row := range rows {
		res := row.FeasibilityResult
		if row.PassThroughJSON.Valid && row.PassThroughJSON.String != "" {
			if err := json.Unmarshal([]byte(row.PassThroughJSON.String), &res.PassThrough); err != nil {
				return nil, fmt.Errorf("decode pass-through for site %s: %w", row.SiteID, err)
			}
		}
		out = append(out, res)
	}
	return out, nil
}
