package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/proforma-service/internal/domain"
	"github.com/proforma-service/internal/domain/repository"
	apperrors "github.com/proforma-service/internal/pkg/errors"
	"github.com/proforma-service/internal/proforma"
	"github.com/proforma-service/internal/repository/cache"
	"github.com/proforma-service/internal/usecase/dto"
)

// FeasibilityUseCase - synchronous lookups, reference tables and the active parameter set
type FeasibilityUseCase struct {
	engine      *proforma.ProForma
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
	cacheTTL    time.Duration
	configYAML  []byte
	fingerprint []byte
}

// NewFeasibilityUseCase - cacheRepo may be nil to disable result caching
func NewFeasibilityUseCase(
	engine *proforma.ProForma,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) (*FeasibilityUseCase, error) {
	var buf bytes.Buffer
	if err := engine.Dump(&buf); err != nil {
		return nil, fmt.Errorf("dump parameter set: %w", err)
	}

	return &FeasibilityUseCase{
		engine:      engine,
		cacheRepo:   cacheRepo,
		logger:      logger,
		cacheTTL:    cacheTTL,
		configYAML:  buf.Bytes(),
		fingerprint: cache.Fingerprint(buf.Bytes()),
	}, nil
}

// Engine - the underlying pro forma
func (uc *FeasibilityUseCase) Engine() *proforma.ProForma {
	return uc.engine
}

// Lookup - evaluates sites for one form, serving repeated requests from the cache.
// The bool reports a cache hit.
func (uc *FeasibilityUseCase) Lookup(ctx context.Context, form string, sites []domain.Site) ([]domain.FeasibilityResult, bool, error) {
	key, err := uc.cacheKey(form, sites)
	if err != nil {
		return nil, false, err
	}

	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetFeasibility(ctx, key)
		if err != nil {
			// a broken cache degrades to recomputation
			uc.logger.Warn("Feasibility cache read failed", zap.String("form", form), zap.Error(err))
		} else if cached != nil {
			return cached, true, nil
		}
	}

	start := time.Now()
	results, err := uc.engine.Lookup(form, sites, nil)
	if err != nil {
		uc.logger.Warn("Feasibility lookup failed", zap.String("form", form), zap.Error(err))
		return nil, false, translateEngineError(err)
	}
	uc.logger.Info("Feasibility lookup completed",
		zap.String("form", form),
		zap.Int("sites", len(sites)),
		zap.Int("feasible", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetFeasibility(ctx, key, results, uc.cacheTTL); err != nil {
			uc.logger.Warn("Feasibility cache write failed", zap.String("form", form), zap.Error(err))
		}
	}
	return results, false, nil
}

// LookupForms - evaluates several forms concurrently; empty forms means forms_to_test
func (uc *FeasibilityUseCase) LookupForms(ctx context.Context, forms []string, sites []domain.Site) (map[string][]domain.FeasibilityResult, error) {
	if len(forms) == 0 {
		forms = uc.engine.FormsToTest()
	}
	forms = slices.Compact(slices.Sorted(slices.Values(forms)))

	var mu sync.Mutex
	out := make(map[string][]domain.FeasibilityResult, len(forms))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, form := range forms {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results, _, err := uc.Lookup(gctx, form, sites)
			if err != nil {
				return err
			}
			mu.Lock()
			out[form] = results
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Reference - the reference table for a form and parking configuration
func (uc *FeasibilityUseCase) Reference(form, parking string) (*dto.ReferenceResponse, error) {
	t, err := uc.engine.Reference(form, proforma.ParkingConfig(parking))
	if err != nil {
		return nil, translateEngineError(err)
	}
	return dto.NewReferenceResponse(t), nil
}

// BreakEven - break-even cost per area at each far
func (uc *FeasibilityUseCase) BreakEven(form, parking string) (*dto.BreakEvenResponse, error) {
	costs, err := uc.engine.BreakEvenCosts(form, proforma.ParkingConfig(parking))
	if err != nil {
		return nil, translateEngineError(err)
	}

	resp := &dto.BreakEvenResponse{
		Form:    form,
		Parking: parking,
		Fars:    uc.engine.Config().Fars,
		Costs:   make([]*float64, len(costs)),
	}
	for i, c := range costs {
		resp.Costs[i] = dto.NullableFloat(c)
	}
	return resp, nil
}

// ConfigYAML - the active parameter set
func (uc *FeasibilityUseCase) ConfigYAML() []byte {
	return slices.Clone(uc.configYAML)
}

func (uc *FeasibilityUseCase) cacheKey(form string, sites []domain.Site) (string, error) {
	encoded, err := json.Marshal(sites)
	if err != nil {
		return "", apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()})
	}
	return cache.FeasibilityKey(form, uc.fingerprint, encoded), nil
}
