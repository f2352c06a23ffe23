package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 5*time.Second, cfg.LockTimeout())
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL())
	assert.Equal(t, 14*24*time.Hour, cfg.AvailabilityWindow())
	assert.False(t, cfg.CacheEnabled())
	assert.False(t, cfg.EventsEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOCK_TIMEOUT_MS", "250")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("AVAILABILITY_CACHE_TTL_SECONDS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 250*time.Millisecond, cfg.LockTimeout())
	assert.Equal(t, 5*time.Second, cfg.AvailabilityCacheTTL())
	assert.True(t, cfg.CacheEnabled())
	assert.True(t, cfg.EventsEnabled())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_RejectsNegativeLockTimeout(t *testing.T) {
	t.Setenv("LOCK_TIMEOUT_MS", "-1")

	_, err := Load()
	assert.Error(t, err)
}
