package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/bibbank/offer-engine/pkg/auth"
	"github.com/bibbank/offer-engine/pkg/tlsutil"
)

// ServerOptions configures the optional parts of the server. A nil JWT
// disables authentication; empty TLS files serve plaintext.
type ServerOptions struct {
	JWT         *auth.JWTService
	SkipMethods []string
	TLSCertFile string
	TLSKeyFile  string
	Reflection  bool
}

// Server wraps a gRPC server with the offer handler registered.
type Server struct {
	gs      *grpclib.Server
	health  *health.Server
	handler *OfferHandler
	logger  *slog.Logger
	name    string
}

// NewServer creates and configures the gRPC server.
func NewServer(name string, handler *OfferHandler, logger *slog.Logger, opts ServerOptions) (*Server, error) {
	interceptors := []grpclib.UnaryServerInterceptor{loggingInterceptor(logger)}
	if opts.JWT != nil {
		skip := append([]string{
			"/grpc.health.v1.Health/Check",
			"/grpc.health.v1.Health/Watch",
		}, opts.SkipMethods...)
		interceptors = append(interceptors, auth.UnaryAuthInterceptor(opts.JWT, skip))
	} else {
		logger.Warn("gRPC authentication disabled")
	}

	serverOpts := []grpclib.ServerOption{grpclib.ChainUnaryInterceptor(interceptors...)}

	if opts.TLSCertFile != "" && opts.TLSKeyFile != "" {
		creds, err := tlsutil.ServerTLSConfig(opts.TLSCertFile, opts.TLSKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load TLS credentials: %w", err)
		}
		serverOpts = append(serverOpts, grpclib.Creds(creds))
		logger.Info("gRPC TLS enabled", "cert", opts.TLSCertFile)
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	gs := grpclib.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)

	if opts.Reflection {
		reflection.Register(gs)
	}

	RegisterOfferServiceServer(gs, handler)

	return &Server{
		gs:      gs,
		health:  healthSrv,
		handler: handler,
		logger:  logger,
		name:    name,
	}, nil
}

// Serve starts the gRPC server on the specified address.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.ServeListener(lis)
}

// ServeListener serves on an existing listener.
func (s *Server) ServeListener(lis net.Listener) error {
	s.logger.Info("gRPC server listening", "addr", lis.Addr().String())
	return s.gs.Serve(lis)
}

// GracefulStop marks the service NOT_SERVING and stops the server gracefully.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.SetServingStatus(s.name, healthpb.HealthCheckResponse_NOT_SERVING)
	s.gs.GracefulStop()
}

func loggingInterceptor(logger *slog.Logger) grpclib.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpclib.UnaryServerInfo,
		handler grpclib.UnaryHandler,
	) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "grpc call",
			"method", info.FullMethod,
			"code", code.String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return resp, err
	}
}
