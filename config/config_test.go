package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := loadFrom(filepath.Join(t.TempDir(), "missing.json"))

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "database.db", cfg.DatabasePath)
	assert.Equal(t, filepath.Join("static", "uploads"), cfg.UploadDir)
	assert.Equal(t, 12*60, cfg.SessionTTLMinutes)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("UPLOAD_DIR", "/tmp/uploads")
	t.Setenv("SESSION_TTL_MINUTES", "30")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := loadFrom(filepath.Join(t.TempDir(), "missing.json"))

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	assert.Equal(t, "/tmp/uploads", cfg.UploadDir)
	assert.Equal(t, 30, cfg.SessionTTLMinutes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}
