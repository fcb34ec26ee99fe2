package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 30, cfg.AccessTTLMin)
	assert.Equal(t, 7, cfg.RefreshTTLDays)
	assert.Equal(t, 6, cfg.SeatRows)
	assert.Equal(t, 12, cfg.SeatCols)
	assert.Equal(t, "data/boxoffice.json", cfg.SnapshotPath)
	assert.Empty(t, cfg.RabbitURL)
	assert.False(t, cfg.ConsumerOn)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SEAT_ROWS", "8")
	t.Setenv("SEAT_COLS", "10")
	t.Setenv("SALES_CONSUMER_ENABLED", "true")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 8, cfg.SeatRows)
	assert.Equal(t, 10, cfg.SeatCols)
	assert.True(t, cfg.ConsumerOn)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("GOOD_INT", "42")
	t.Setenv("BAD_INT", "whatever")
	assert.Equal(t, 42, envInt("GOOD_INT", 1))
	assert.Equal(t, 1, envInt("BAD_INT", 1))
	assert.Equal(t, 1, envInt("UNSET_INT", 1))

	t.Setenv("GOOD_DUR", "90s")
	t.Setenv("BAD_DUR", "soon")
	assert.Equal(t, 90*time.Second, envDur("GOOD_DUR", time.Minute))
	assert.Equal(t, time.Minute, envDur("BAD_DUR", time.Minute))

	t.Setenv("RAW_BOOL", "maybe")
	assert.True(t, envBool("RAW_BOOL", true))
	assert.False(t, envBool("RAW_BOOL", false))
}
