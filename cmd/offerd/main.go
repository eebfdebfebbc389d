package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bibbank/offer-engine/internal/application/usecase"
	"github.com/bibbank/offer-engine/internal/domain/service"
	"github.com/bibbank/offer-engine/internal/infrastructure/config"
	"github.com/bibbank/offer-engine/internal/infrastructure/metrics"
	grpcPresentation "github.com/bibbank/offer-engine/internal/presentation/grpc"
	"github.com/bibbank/offer-engine/internal/presentation/rest"
	"github.com/bibbank/offer-engine/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("offer-engine stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("offer-engine stopped")
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting offer-engine",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"session_store", cfg.SessionStore,
		"offer_store", cfg.OfferStore,
		"kafka_enabled", cfg.Kafka.Enabled,
	)

	// Metrics.
	registry := observability.NewRegistry(observability.MetricsConfig{Namespace: "offer", RuntimeCollectors: true})
	meterProvider, err := observability.InitMetrics(registry)
	if err != nil {
		return err
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort flush
	recorder, err := metrics.NewRecorder(meterProvider.Meter(metrics.ScopeName))
	if err != nil {
		return fmt.Errorf("create offer metrics: %w", err)
	}

	// Wire infrastructure adapters.
	infra, err := wireInfrastructure(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer infra.Close()

	calc := service.NewEmiCalculator()
	selector := service.NewTenureSelector(calc)
	builder := service.NewOfferTableBuilder()

	// Wire use cases.
	openUC := usecase.NewOpenSessionUseCase(infra.sessions, infra.publisher, recorder, builder, selector, logger)
	selectUC := usecase.NewSelectTenureUseCase(infra.sessions, infra.publisher, selector, logger)
	reconcileUC := usecase.NewReconcileSliderUseCase(infra.sessions, infra.publisher, recorder, selector, logger)
	getUC := usecase.NewGetSessionUseCase(infra.sessions)
	acceptUC := usecase.NewAcceptOfferUseCase(infra.sessions, infra.offers, infra.publisher, recorder, calc, logger)
	acceptedUC := usecase.NewGetAcceptedOfferUseCase(infra.offers)
	quoteUC := usecase.NewQuoteInstallmentUseCase(calc)

	jwtSvc, err := newJWTService(cfg)
	if err != nil {
		return err
	}

	// gRPC server.
	handler := grpcPresentation.NewOfferHandler(openUC, selectUC, reconcileUC, getUC, acceptUC, acceptedUC, quoteUC)
	grpcServer, err := grpcPresentation.NewServer(cfg.ServiceName, handler, logger, grpcPresentation.ServerOptions{
		JWT:         jwtSvc,
		SkipMethods: cfg.Auth.SkipMethods,
		TLSCertFile: cfg.TLS.CertFile,
		TLSKeyFile:  cfg.TLS.KeyFile,
		Reflection:  cfg.GRPCReflection,
	})
	if err != nil {
		return err
	}

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	rest.NewHealthHandler(cfg.ServiceName, infra.checks, observability.MetricsHandler(registry), logger).RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	return serveErr
}
