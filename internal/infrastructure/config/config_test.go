package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "offer-engine", cfg.ServiceName)
	assert.Equal(t, ":9095", cfg.GRPCAddr())
	assert.Equal(t, ":8095", cfg.HTTPAddr())
	assert.Equal(t, BackendMemory, cfg.SessionStore)
	assert.Equal(t, BackendMemory, cfg.OfferStore)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Kafka.Enabled)
	assert.False(t, cfg.AuthEnabled())
	assert.False(t, cfg.TLSEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("GRPC_PORT", "7000")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("OFFER_STORE", "postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 7000, cfg.GRPCPort)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.AuthEnabled())

	pg := cfg.Postgres()
	assert.Equal(t, "secret", pg.Password)
	assert.Equal(t, int32(4), pg.MaxConns)
	assert.Equal(t, "bib_offers", pg.Database)

	kc := cfg.KafkaProducer()
	assert.Equal(t, "offer-engine", kc.ClientID)
	assert.Equal(t, cfg.Kafka.Brokers, kc.Brokers)
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	t.Setenv("KAFKA_ENABLED", "maybe")
	t.Setenv("SESSION_TTL", "soon")

	cfg := Load()
	assert.Equal(t, 8095, cfg.HTTPPort)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown session store", func(c *Config) { c.SessionStore = "etcd" }, "SESSION_STORE"},
		{"unknown offer store", func(c *Config) { c.OfferStore = "s3" }, "OFFER_STORE"},
		{"postgres without password", func(c *Config) { c.OfferStore = BackendPostgres }, "DB_PASSWORD"},
		{"redis without address", func(c *Config) { c.SessionStore = BackendRedis; c.Redis.Addr = "" }, "REDIS_ADDR"},
		{"same ports", func(c *Config) { c.HTTPPort = c.GRPCPort }, "must differ"},
		{"half tls", func(c *Config) { c.TLS.CertFile = "cert.pem" }, "TLS_CERT_FILE"},
		{"kafka without brokers", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = nil }, "KAFKA_BROKERS"},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, "SESSION_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("reports all problems", func(t *testing.T) {
		cfg := Load()
		cfg.SessionStore = "etcd"
		cfg.OfferStore = "s3"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_STORE")
		assert.Contains(t, err.Error(), "OFFER_STORE")
	})
}
