package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ServiceDefaults(t *testing.T) {
	cfg := Load(ServiceTasks)

	assert.Equal(t, ServiceTasks, cfg.ServiceName)
	assert.Equal(t, "4002", cfg.Port)
	assert.Equal(t, "tasks", cfg.DBName)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.DiagnosticsEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("APP_DEBUG_ERRORS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load(ServiceIdentity)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.True(t, cfg.DiagnosticsEnabled())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "lots")
	t.Setenv("UPSTREAM_TIMEOUT", "soon")

	cfg := Load(ServiceGateway)

	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
}

func TestConfig_DiagnosticsNeverInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_DEBUG_ERRORS", "true")

	cfg := Load(ServiceTasks)

	require.True(t, cfg.IsProduction())
	assert.False(t, cfg.DiagnosticsEnabled())
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", DBName: "identity"}
	assert.Equal(t, "identity.db", cfg.DSN())

	cfg.DBName = ":memory:"
	assert.Equal(t, ":memory:", cfg.DSN())

	cfg = &Config{DBDriver: "mysql", DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "3306", DBName: "d"}
	assert.Equal(t, "u:p@tcp(h:3306)/d?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSN())

	cfg = &Config{DBDriver: "postgres", DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "host=h user=u password=p dbname=d port=5432 sslmode=disable", cfg.DSN())
}
