package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "notifications", cfg.DynamoTables.Notifications)
	assert.Equal(t, "performance_reports", cfg.DynamoTables.Performance)
	assert.Equal(t, 300*time.Millisecond, cfg.Portal.SearchDebounce)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTokenDur)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORTAL_SEARCH_DEBOUNCE_MS", "150")
	t.Setenv("DYNAMO_TABLE_REPORTS", "issues")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg := Load()
	assert.Equal(t, 150*time.Millisecond, cfg.Portal.SearchDebounce)
	assert.Equal(t, "issues", cfg.DynamoTables.Reports)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestGetEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY_HOURS", "soon")
	assert.Equal(t, 24, getEnvInt("JWT_EXPIRY_HOURS", 24))
}
