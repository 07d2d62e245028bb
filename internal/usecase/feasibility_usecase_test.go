package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/proforma-service/internal/domain"
	apperrors "github.com/proforma-service/internal/pkg/errors"
	"github.com/proforma-service/internal/proforma"
	"github.com/proforma-service/internal/usecase"
)

func testSites() []domain.Site {
	out := make([]domain.Site, 0, 3)
	for _, s := range []struct {
		id   string
		rent float64
	}{{"a", 30}, {"b", 20}, {"c", 10}} {
		out = append(out, domain.Site{
			ID:         s.id,
			Rents:      map[string]float64{"residential": s.rent, "office": 15, "retail": 12, "industrial": 12},
			LandCost:   100000,
			ParcelSize: 1000,
			MaxFar:     domain.Float(2),
			MaxHeight:  domain.Float(80),
		})
	}
	return out
}

func newFeasibilityUseCase(t *testing.T, cacheRepo *MockCacheRepository) *usecase.FeasibilityUseCase {
	t.Helper()
	engine, err := proforma.NewDefault(zap.NewNop())
	require.NoError(t, err)

	var uc *usecase.FeasibilityUseCase
	if cacheRepo == nil {
		uc, err = usecase.NewFeasibilityUseCase(engine, nil, zap.NewNop(), time.Hour)
	} else {
		uc, err = usecase.NewFeasibilityUseCase(engine, cacheRepo, zap.NewNop(), time.Hour)
	}
	require.NoError(t, err)
	return uc
}

func TestFeasibilityUseCase_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss computes and stores", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := newFeasibilityUseCase(t, mockCache)

		var storedKey string
		mockCache.On("GetFeasibility", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()
		mockCache.On("SetFeasibility", ctx, mock.AnythingOfType("string"), mock.Anything, time.Hour).
			Run(func(args mock.Arguments) { storedKey = args.String(1) }).
			Return(nil).Once()

		results, cached, err := uc.Lookup(ctx, "residential", testSites())
		require.NoError(t, err)
		assert.False(t, cached)
		require.Len(t, results, 1)
		assert.Equal(t, "a", results[0].SiteID)
		assert.Equal(t, 1.8, results[0].MaxProfitFar)
		assert.Regexp(t, `^feasibility:residential:[0-9a-f]{16}$`, storedKey)
		mockCache.AssertExpectations(t)
	})

	t.Run("cache hit skips the engine", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := newFeasibilityUseCase(t, mockCache)

		hit := []domain.FeasibilityResult{{SiteID: "cached", Form: "residential"}}
		mockCache.On("GetFeasibility", ctx, mock.AnythingOfType("string")).Return(hit, nil).Once()

		results, cached, err := uc.Lookup(ctx, "residential", testSites())
		require.NoError(t, err)
		assert.True(t, cached)
		assert.Equal(t, hit, results)
		mockCache.AssertNotCalled(t, "SetFeasibility", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache failures fall back to the engine", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := newFeasibilityUseCase(t, mockCache)

		mockCache.On("GetFeasibility", ctx, mock.AnythingOfType("string")).Return(nil, errors.New("connection refused")).Once()
		mockCache.On("SetFeasibility", ctx, mock.AnythingOfType("string"), mock.Anything, time.Hour).Return(errors.New("connection refused")).Once()

		results, cached, err := uc.Lookup(ctx, "residential", testSites())
		require.NoError(t, err)
		assert.False(t, cached)
		assert.Len(t, results, 1)
	})

	t.Run("same request hashes to the same key", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := newFeasibilityUseCase(t, mockCache)

		var keys []string
		mockCache.On("GetFeasibility", ctx, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { keys = append(keys, args.String(1)) }).
			Return(nil, nil)
		mockCache.On("SetFeasibility", ctx, mock.Anything, mock.Anything, time.Hour).Return(nil)

		_, _, err := uc.Lookup(ctx, "residential", testSites())
		require.NoError(t, err)
		_, _, err = uc.Lookup(ctx, "residential", testSites())
		require.NoError(t, err)
		_, _, err = uc.Lookup(ctx, "office", testSites())
		require.NoError(t, err)

		require.Len(t, keys, 3)
		assert.Equal(t, keys[0], keys[1])
		assert.NotEqual(t, keys[0], keys[2])
	})

	t.Run("engine errors become app errors", func(t *testing.T) {
		uc := newFeasibilityUseCase(t, nil)

		_, _, err := uc.Lookup(ctx, "hotel", testSites())
		assert.ErrorIs(t, err, apperrors.ErrUnknownForm)

		dup := testSites()
		dup[1].ID = "a"
		_, _, err = uc.Lookup(ctx, "residential", dup)
		assert.ErrorIs(t, err, apperrors.ErrDuplicateSite)

		missing := testSites()
		missing[0].MaxDua = domain.Float(20)
		_, _, err = uc.Lookup(ctx, "residential", missing)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "MISSING_INPUT", appErr.Code)
		assert.Equal(t, "a", appErr.Details["site_id"])
		assert.Equal(t, domain.ColumnAveUnitSize, appErr.Details["field"])
	})
}

func TestFeasibilityUseCase_LookupForms(t *testing.T) {
	ctx := context.Background()
	uc := newFeasibilityUseCase(t, nil)

	all, err := uc.LookupForms(ctx, nil, testSites())
	require.NoError(t, err)
	assert.Len(t, all, len(uc.Engine().FormsToTest()))
	assert.Len(t, all["residential"], 1)
	for form, results := range all {
		assert.NotNil(t, results, form)
	}

	some, err := uc.LookupForms(ctx, []string{"residential", "residential", "office"}, testSites())
	require.NoError(t, err)
	assert.Len(t, some, 2)

	_, err = uc.LookupForms(ctx, []string{"residential", "hotel"}, testSites())
	assert.ErrorIs(t, err, apperrors.ErrUnknownForm)
}

func TestFeasibilityUseCase_Reference(t *testing.T) {
	uc := newFeasibilityUseCase(t, nil)

	ref, err := uc.Reference("retail", "surface")
	require.NoError(t, err)
	assert.Equal(t, "retail", ref.Form)
	assert.Equal(t, "surface", ref.Parking)
	require.Len(t, ref.Entries, 24)
	require.NotNil(t, ref.Entries[0].AveCostSqft)
	// retail is capped at far 2.0
	assert.Nil(t, ref.Entries[23].AveCostSqft)
	assert.Equal(t, 11.0, *ref.Entries[23].Far)

	_, err = uc.Reference("retail", "valet")
	assert.ErrorIs(t, err, apperrors.ErrUnknownParkingConfig)

	_, err = uc.Reference("hotel", "deck")
	assert.ErrorIs(t, err, apperrors.ErrUnknownForm)
}

func TestFeasibilityUseCase_BreakEven(t *testing.T) {
	uc := newFeasibilityUseCase(t, nil)

	resp, err := uc.BreakEven("residential", "deck")
	require.NoError(t, err)
	assert.Len(t, resp.Fars, 24)
	assert.Len(t, resp.Costs, 24)
	require.NotNil(t, resp.Costs[7])
	assert.InDelta(t, 187, *resp.Costs[7], 1e-9)
}

func TestFeasibilityUseCase_ConfigYAML(t *testing.T) {
	uc := newFeasibilityUseCase(t, nil)

	cfg, err := proforma.LoadConfig(bytes.NewReader(uc.ConfigYAML()))
	require.NoError(t, err)
	assert.Equal(t, uc.Engine().Config(), cfg)
}
