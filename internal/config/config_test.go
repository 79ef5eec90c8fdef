package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/minishop-modules/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "minishop", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "7.50", cfg.Shipping.Rates["dhl"])
	assert.Empty(t, cfg.Database.URL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "service_name: shop-eu\nproduct_cache_size: 16\nshipping:\n  currency: EUR\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "shop-eu", cfg.ServiceName)
	assert.Equal(t, 16, cfg.Product.CacheSize)
	assert.Equal(t, "EUR", cfg.Shipping.Currency)
	assert.Equal(t, "USD", cfg.Report.Currency)
}

func TestLoad_ReportCurrency(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REPORT_CURRENCY", "eur")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Report.Currency)

	t.Setenv("REPORT_CURRENCY", "euro")
	_, err = config.Load()
	assert.ErrorContains(t, err, "report.currency")
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PRODUCT_CACHE_SIZE", "0")

	_, err := config.Load()
	assert.ErrorContains(t, err, "product_cache_size")
}
