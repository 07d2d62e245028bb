package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
	assert.Equal(t, time.Hour, cfg.Cache.FeasibilityCacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "proforma-run-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, 5*time.Second, cfg.Worker.StreamReadTimeout)
	assert.Equal(t, 3, cfg.Worker.MaxRetries)
	assert.False(t, cfg.UseSQLite())
	assert.Empty(t, cfg.ProForma.ConfigPath)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("API_HOST", "0.0.0.0")
	v.Set("API_PORT", 9000)
	v.Set("DB_HOST", "db")
	v.Set("DB_PORT", 5432)
	v.Set("DB_USER", "proforma")
	v.Set("DB_PASSWORD", "secret")
	v.Set("DB_NAME", "sites")
	v.Set("SQLITE_PATH", "/tmp/sites.db")
	v.Set("FEASIBILITY_CACHE_TTL", 60)
	v.Set("WORKER_STREAM_READ_TIMEOUT", 250)
	v.Set("PROFORMA_CONFIG", "configs/proforma.yaml")

	cfg := fromViper(v)

	assert.Equal(t, "0.0.0.0:9000", cfg.GetServerAddr())
	assert.Equal(t, "host=db port=5432 user=proforma password=secret dbname=sites sslmode=disable", cfg.GetDatabaseDSN())
	assert.True(t, cfg.UseSQLite())
	assert.Equal(t, time.Minute, cfg.Cache.FeasibilityCacheTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.Worker.StreamReadTimeout)
	assert.Equal(t, "configs/proforma.yaml", cfg.ProForma.ConfigPath)
}
