package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petshop-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "petshop-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 60*time.Second, cfg.Redis.DashboardTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DB_LOG_QUERIES", "true")
	t.Setenv("RATE_LIMIT_RPM", "0")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.DB.LogQueries)
	assert.Equal(t, 0, cfg.RateLimit.RequestsPerMinute)
}

func TestLoad_ProduccionSinSecretoFalla(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "pet", Password: "p@ss:word", DBName: "shop", SSLMode: "disable"}
	assert.Equal(t, "postgres://pet:p%40ss%3Aword@db:5432/shop?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}

func TestLoad_AdminConPasswordCortaFalla(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "dono@petshop.com")
	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "corta")

	_, err := config.Load()
	assert.Error(t, err)
}
