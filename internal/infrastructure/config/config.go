package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bibbank/offer-engine/pkg/kafka"
	"github.com/bibbank/offer-engine/pkg/postgres"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type DatabaseConfig struct {
	Host       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	Migrations string
	Port       int
	MaxConns   int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Topic         string
	ClientID      string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	Brokers       []string
	Enabled       bool
	TLS           bool
	SASLEnabled   bool
}

type AuthConfig struct {
	JWTSecret        string
	JWTPublicKeyFile string
	Issuer           string
	SkipMethods      []string
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type LogConfig struct {
	Level  string
	Format string
}

type Config struct {
	ServiceName  string
	SessionStore string
	OfferStore   string
	Log          LogConfig
	Auth         AuthConfig
	TLS          TLSConfig
	Redis        RedisConfig
	DB           DatabaseConfig
	Kafka        KafkaConfig
	SessionTTL   time.Duration
	GRPCPort     int
	HTTPPort     int

	GRPCReflection bool
}

func Load() Config {
	return Config{
		ServiceName:  getEnv("SERVICE_NAME", "offer-engine"),
		GRPCPort:     getEnvInt("GRPC_PORT", 9095),
		HTTPPort:     getEnvInt("HTTP_PORT", 8095),
		SessionStore: getEnv("SESSION_STORE", BackendMemory),
		OfferStore:   getEnv("OFFER_STORE", BackendMemory),
		SessionTTL:   getEnvDuration("SESSION_TTL", 24*time.Hour),

		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET", ""),
			JWTPublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Issuer:           getEnv("JWT_ISSUER", "bib-identity"),
			SkipMethods:      getEnvList("AUTH_SKIP_METHODS", "/grpc.health.v1.Health/Check"),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		DB: DatabaseConfig{
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnvInt("DB_PORT", 5432),
			User:       getEnv("DB_USER", "bib"),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", "bib_offers"),
			SSLMode:    getEnv("DB_SSLMODE", "require"),
			MaxConns:   getEnvInt("DB_MAX_CONNS", 10),
			Migrations: getEnv("DB_MIGRATIONS", "file://internal/infrastructure/postgres/migrations"),
		},
		Kafka: KafkaConfig{
			Enabled:       getEnvBool("KAFKA_ENABLED", false),
			Brokers:       getEnvList("KAFKA_BROKERS", "localhost:9092"),
			Topic:         getEnv("KAFKA_TOPIC", "offer-engine.events"),
			ClientID:      getEnv("KAFKA_CLIENT_ID", "offer-engine"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "SCRAM-SHA-512"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
	}
}

// Validate reports every inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.GRPCPort <= 0 || c.HTTPPort <= 0 {
		errs = append(errs, errors.New("GRPC_PORT and HTTP_PORT must be positive"))
	}
	if c.GRPCPort == c.HTTPPort {
		errs = append(errs, errors.New("GRPC_PORT and HTTP_PORT must differ"))
	}
	switch c.SessionStore {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis session store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore))
	}
	switch c.OfferStore {
	case BackendMemory:
	case BackendPostgres:
		if c.DB.Password == "" {
			errs = append(errs, errors.New("DB_PASSWORD is required for the postgres offer store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown OFFER_STORE %q", c.OfferStore))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	return errors.Join(errs...)
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// AuthEnabled reports whether gRPC calls require a bearer token.
func (c Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != "" || c.Auth.JWTPublicKeyFile != ""
}

// TLSEnabled reports whether the gRPC listener serves TLS.
func (c Config) TLSEnabled() bool {
	return c.TLS.CertFile != "" && c.TLS.KeyFile != ""
}

func (c Config) Postgres() postgres.Config {
	return postgres.Config{
		Host:     c.DB.Host,
		Port:     c.DB.Port,
		User:     c.DB.User,
		Password: c.DB.Password,
		Database: c.DB.Name,
		SSLMode:  c.DB.SSLMode,
		MaxConns: int32(c.DB.MaxConns),
	}
}

func (c Config) KafkaProducer() kafka.Config {
	return kafka.Config{
		Brokers:       c.Kafka.Brokers,
		ClientID:      c.Kafka.ClientID,
		TLS:           c.Kafka.TLS,
		SASLEnabled:   c.Kafka.SASLEnabled,
		SASLMechanism: c.Kafka.SASLMechanism,
		SASLUsername:  c.Kafka.SASLUsername,
		SASLPassword:  c.Kafka.SASLPassword,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, fallback), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
