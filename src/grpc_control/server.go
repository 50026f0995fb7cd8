package grpc_control

import (
	"context"
	"errors"
	"net"

	"reactive-dashboard/src/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// -----------------------------------------------------------------------------
// Server hosts the control service next to the standard health service.
// -----------------------------------------------------------------------------

type Server struct {
	Addr   string
	Logger *logger.Logger

	grpc   *grpc.Server
	health *health.Server
}

func NewServer(addr string, control BackpressureControlServer, log *logger.Logger) *Server {
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(log)))
	hs := health.NewServer()

	RegisterBackpressureControlServer(gs, control)
	healthpb.RegisterHealthServer(gs, hs)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(BackpressureControl_ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Server{Addr: addr, Logger: log, grpc: gs, health: hs}
}

// -----------------------------------------------------------------------------

// Serve accepts connections on lis until Stop
func (s *Server) Serve(lis net.Listener) error {
	s.Logger.Info("Starting gRPC control server on %s", lis.Addr())
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

// Start listens on Addr and serves
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

// -----------------------------------------------------------------------------

// Stop reports NOT_SERVING and drains in-flight calls, forcing a stop when ctx ends
func (s *Server) Stop(ctx context.Context) error {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.grpc.Stop()
		return ctx.Err()
	}
}

// -----------------------------------------------------------------------------

func loggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			log.Warning("gRPC %s failed: %v", info.FullMethod, err)
		} else {
			log.Debug("gRPC %s ok", info.FullMethod)
		}
		return resp, err
	}
}
