package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bibbank/offer-engine/internal/domain/port"
	"github.com/bibbank/offer-engine/internal/infrastructure/config"
	"github.com/bibbank/offer-engine/internal/infrastructure/kafka"
	"github.com/bibbank/offer-engine/internal/infrastructure/memory"
	pgRepo "github.com/bibbank/offer-engine/internal/infrastructure/postgres"
	redisRepo "github.com/bibbank/offer-engine/internal/infrastructure/redis"
	"github.com/bibbank/offer-engine/internal/presentation/rest"
	"github.com/bibbank/offer-engine/pkg/auth"
	pkgkafka "github.com/bibbank/offer-engine/pkg/kafka"
	pkgpostgres "github.com/bibbank/offer-engine/pkg/postgres"
)

// infrastructure holds the adapters selected by configuration together with
// their readiness checks and shutdown hooks.
type infrastructure struct {
	sessions  port.SessionRepository
	offers    port.AcceptedOfferRepository
	publisher port.EventPublisher
	checks    map[string]rest.Check
	closers   []func()
}

func (i *infrastructure) Close() {
	for j := len(i.closers) - 1; j >= 0; j-- {
		i.closers[j]()
	}
}

func wireInfrastructure(ctx context.Context, cfg config.Config, logger *slog.Logger) (*infrastructure, error) {
	infra := &infrastructure{checks: make(map[string]rest.Check)}
	ok := false
	defer func() {
		if !ok {
			infra.Close()
		}
	}()

	// Session store.
	switch cfg.SessionStore {
	case config.BackendRedis:
		client := goredis.NewUniversalClient(&goredis.UniversalOptions{
			Addrs:    []string{cfg.Redis.Addr},
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		infra.closers = append(infra.closers, func() { _ = client.Close() })

		repo := redisRepo.NewSessionRepository(client, cfg.SessionTTL)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := repo.Ping(pingCtx); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		infra.sessions = repo
		infra.checks["redis"] = repo.Ping
		logger.Info("connected to redis", "addr", cfg.Redis.Addr)
	default:
		infra.sessions = memory.NewSessionRepository()
	}

	// Accepted offer store.
	switch cfg.OfferStore {
	case config.BackendPostgres:
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		pool, err := pkgpostgres.NewPool(dbCtx, cfg.Postgres())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		infra.closers = append(infra.closers, pool.Close)
		logger.Info("connected to database")

		if err := pkgpostgres.RunMigrations(cfg.Postgres().DSN(), cfg.DB.Migrations); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		infra.offers = pgRepo.NewAcceptedOfferRepo(pool)
		infra.checks["postgres"] = func(ctx context.Context) error {
			return pkgpostgres.HealthCheck(ctx, pool)
		}
	default:
		infra.offers = memory.NewAcceptedOfferRepository()
	}

	// Event publisher.
	if cfg.Kafka.Enabled {
		producer, err := pkgkafka.NewProducer(cfg.KafkaProducer())
		if err != nil {
			return nil, fmt.Errorf("create kafka producer: %w", err)
		}
		infra.closers = append(infra.closers, func() {
			if err := producer.Close(); err != nil {
				logger.Error("kafka producer close error", "error", err)
			}
		})
		infra.publisher = kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)
	} else {
		logger.Info("kafka disabled, domain events are kept in memory")
		infra.publisher = memory.NewEventLog(logger)
	}

	ok = true
	return infra, nil
}

// newJWTService returns nil when no key material is configured.
func newJWTService(cfg config.Config) (*auth.JWTService, error) {
	if !cfg.AuthEnabled() {
		return nil, nil
	}
	jwtCfg := auth.JWTConfig{Issuer: cfg.Auth.Issuer}
	if cfg.Auth.JWTPublicKeyFile != "" {
		keyData, err := auth.LoadKeyFromFile(cfg.Auth.JWTPublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load JWT public key: %w", err)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	} else {
		jwtCfg.Secret = cfg.Auth.JWTSecret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("initialize JWT service: %w", err)
	}
	return jwtSvc, nil
}
