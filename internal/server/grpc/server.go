// Package grpc serves the standard gRPC health protocol. The "storage"
// service reports NOT_SERVING once the storage adapter has fallen back to
// memory; the overall service stays SERVING because the API keeps working.
package grpc

import (
	"context"
	"net"

	"github.com/webedt/webedt/internal/logging"
	"github.com/webedt/webedt/internal/server/storage"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// StorageService is the health service name tracking the storage backend.
const StorageService = "storage"

// StorageState is the view of storage.Adapter needed for health reporting.
type StorageState interface {
	Mode() storage.Mode
	Degraded() <-chan struct{}
}

type HealthServer struct {
	address string
	storage StorageState
	health  *health.Server
	logger  logging.Logger
}

func NewHealthServer(address string, l logging.Logger, st StorageState) *HealthServer {
	if l == nil {
		l = logging.Nop()
	}
	return &HealthServer{
		address: address,
		storage: st,
		health:  health.NewServer(),
		logger:  l.With("module", "grpc_server"),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *HealthServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

func (s *HealthServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor),
	)
	healthpb.RegisterHealthServer(srv, s.health)

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	if s.storage.Mode() == storage.ModeRelational {
		s.health.SetServingStatus(StorageService, healthpb.HealthCheckResponse_SERVING)
	} else {
		s.health.SetServingStatus(StorageService, healthpb.HealthCheckResponse_NOT_SERVING)
	}

	go func() {
		select {
		case <-ctx.Done():
			return
		case <-s.storage.Degraded():
			s.logger.Warn(ctx, "storage degraded, reporting NOT_SERVING", "service", StorageService)
			s.health.SetServingStatus(StorageService, healthpb.HealthCheckResponse_NOT_SERVING)
		}
	}()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
