package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "PUBLIC_BASE_URL", "CACHE_TTL_SECONDS", "FIREBASE_API_KEY", "FIREBASE_PROJECT_ID", "FIREBASE_STORAGE_BUCKET", "LOG_LEVEL", "LOGIN_RATE_PER_MINUTE"} {
		t.Setenv(key, "")
	}
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://admin.example.com , ,http://localhost:3000")
	t.Setenv("JWT_EXPIRY_HOURS", "nope")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.LoginRatePerMinute)
	assert.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, []string{"https://admin.example.com", "http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "your_api_key_here", cfg.Firebase.APIKey)
	assert.False(t, cfg.Firebase.Configured())
}

func TestFirebaseConfigured(t *testing.T) {
	t.Setenv("FIREBASE_API_KEY", "AIza-test")
	t.Setenv("FIREBASE_PROJECT_ID", "listings-prod")
	t.Setenv("FIREBASE_STORAGE_BUCKET", "listings-prod.appspot.com")

	cfg := Load()
	assert.True(t, cfg.Firebase.Configured())
	assert.True(t, IsPlaceholder(cfg.Firebase.AppID))
}
