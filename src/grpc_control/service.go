package grpc_control

import (
	"context"

	"reactive-dashboard/src/interfaces"
	"reactive-dashboard/src/logger"
	"reactive-dashboard/src/stats"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ControlService implements the BackpressureControlServer interface
type ControlService struct {
	UnimplementedBackpressureControlServer
	Stats  interfaces.IStatsSink
	Logger *logger.Logger
}

// NewControlService creates a new instance of ControlService
func NewControlService(sink interfaces.IStatsSink, log *logger.Logger) *ControlService {
	return &ControlService{Stats: sink, Logger: log}
}

// -----------------------------------------------------------------------------

func (s *ControlService) GetStats(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(s.Stats.Report()), nil
}

// -----------------------------------------------------------------------------

func (s *ControlService) ResetStats(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	s.Stats.Reset()
	s.Logger.Info("Backpressure counters reset over gRPC")
	return wrapperspb.String(stats.ResetMessage), nil
}
