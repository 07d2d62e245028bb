package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/proforma-service/internal/domain"
	"github.com/proforma-service/internal/domain/repository"
	apperrors "github.com/proforma-service/internal/pkg/errors"
	"github.com/proforma-service/internal/usecase/dto"
)

// RunUseCase - asynchronous feasibility runs over the stored sites
type RunUseCase struct {
	feasibility *FeasibilityUseCase
	siteRepo    repository.SiteRepository
	resultRepo  repository.ResultRepository
	streamRepo  repository.StreamRepository
	logger      *zap.Logger
}

func NewRunUseCase(
	feasibility *FeasibilityUseCase,
	siteRepo repository.SiteRepository,
	resultRepo repository.ResultRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *RunUseCase {
	return &RunUseCase{
		feasibility: feasibility,
		siteRepo:    siteRepo,
		resultRepo:  resultRepo,
		streamRepo:  streamRepo,
		logger:      logger,
	}
}

// StartRun - validates the forms and queues a run request
func (uc *RunUseCase) StartRun(ctx context.Context, req dto.RunRequest) (*dto.RunResponse, error) {
	forms := req.Forms
	if len(forms) == 0 {
		forms = uc.feasibility.Engine().FormsToTest()
	}
	known := uc.feasibility.Engine().Forms()
	for _, f := range forms {
		if !slices.Contains(known, f) {
			return nil, apperrors.ErrUnknownForm.WithDetails(map[string]interface{}{"form": f})
		}
	}

	event := domain.RunRequestEvent{
		RunID:       uuid.New(),
		Forms:       req.Forms,
		RequestedAt: time.Now().UTC(),
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamProFormaRun, event); err != nil {
		uc.logger.Error("Failed to queue run", zap.String("run_id", event.RunID.String()), zap.Error(err))
		return nil, apperrors.ErrStreamError
	}

	uc.logger.Info("Feasibility run queued",
		zap.String("run_id", event.RunID.String()),
		zap.Strings("forms", forms))

	return &dto.RunResponse{
		RunID:  event.RunID.String(),
		Forms:  forms,
		Stream: domain.StreamProFormaRun,
	}, nil
}

// Execute - evaluates every stored site that passes the parcel filter and
// stores the results. The returned event is ready to publish.
func (uc *RunUseCase) Execute(ctx context.Context, event domain.RunRequestEvent) (*domain.RunDoneEvent, error) {
	engine := uc.feasibility.Engine()

	sites, err := uc.siteRepo.ListSites(ctx, engine.ParcelFilter())
	if err != nil {
		return nil, fmt.Errorf("load sites: %w", err)
	}

	byForm, err := uc.feasibility.LookupForms(ctx, event.Forms, sites)
	if err != nil {
		return nil, fmt.Errorf("evaluate run %s: %w", event.RunID, err)
	}

	done := &domain.RunDoneEvent{
		RunID:    event.RunID,
		Feasible: make(map[string]int, len(byForm)),
		Sites:    len(sites),
	}
	var all []domain.FeasibilityResult
	for form, results := range byForm {
		done.Feasible[form] = len(results)
		all = append(all, results...)
	}

	if err := uc.resultRepo.SaveResults(ctx, event.RunID, all); err != nil {
		return nil, fmt.Errorf("save run %s: %w", event.RunID, err)
	}

	done.FinishedAt = time.Now().UTC()
	return done, nil
}

// Results - stored results of a run; an unknown run has no results
func (uc *RunUseCase) Results(ctx context.Context, runID string) (*dto.RunResultsResponse, error) {
	id, err := uuid.Parse(runID)
	if err != nil {
		return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{"run_id": runID})
	}

	results, err := uc.resultRepo.ListResults(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to list run results", zap.String("run_id", runID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &dto.RunResultsResponse{
		RunID:   id.String(),
		Results: results,
		Total:   len(results),
	}, nil
}
