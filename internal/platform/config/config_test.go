package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("BACKEND_TIMEOUT", "")

	cfg := Load()
	assert.Equal(t, StoreDriverHTTP, cfg.StoreDriver)
	assert.Equal(t, 10*time.Second, cfg.BackendTimeout)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoadParsesListsAndDurations(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,,")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")

	cfg := Load()
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
}

func TestValidate(t *testing.T) {
	base := Config{
		StoreDriver:        StoreDriverHTTP,
		BackendURL:         "http://backend",
		MaxBodyBytes:       4096,
		RateLimitPerMinute: 10,
		TokenTTL:           time.Hour,
	}
	require.NoError(t, base.Validate())

	pg := base
	pg.StoreDriver = StoreDriverPostgres
	assert.Error(t, pg.Validate())

	prod := base
	prod.Environment = "production"
	assert.Error(t, prod.Validate())

	unknown := base
	unknown.StoreDriver = "sqlite"
	assert.Error(t, unknown.Validate())
}
