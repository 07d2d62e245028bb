package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/proforma-service/internal/config"
	"github.com/proforma-service/internal/domain"
	"github.com/proforma-service/internal/proforma"
)

func TestLoadEngine_Default(t *testing.T) {
	p, err := LoadEngine(&config.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, proforma.DefaultConfig(), p.Config())
}

func TestLoadEngine_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proforma.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cap_rate: 0.06\nforms_to_test: [residential]\n"), 0o600))

	cfg := &config.Config{ProForma: config.ProFormaConfig{ConfigPath: path}}
	p, err := LoadEngine(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0.06, p.CapRate())
	assert.Equal(t, []string{"residential"}, p.FormsToTest())
}

func TestLoadEngine_BadFile(t *testing.T) {
	cfg := &config.Config{ProForma: config.ProFormaConfig{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}}
	_, err := LoadEngine(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestOpenStore_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "sites.db")}}

	store, err := OpenStore(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "sqlite", store.Backend)
	require.NoError(t, store.Health(ctx))

	site := domain.Site{ID: "p1", Rents: map[string]float64{"residential": 2}, LandCost: 10, ParcelSize: 5000}
	require.NoError(t, store.Sites.SaveSites(ctx, []domain.Site{site}))

	got, err := store.Sites.ListSites(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}
