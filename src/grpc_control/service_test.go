package grpc_control

import (
	"context"
	"net"
	"testing"
	"time"

	"reactive-dashboard/src/logger"
	"reactive-dashboard/src/stats"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
)

func startBufServer(t *testing.T) (*grpc.ClientConn, *stats.Counters, *Server) {
	t.Helper()
	counters := stats.NewCounters()
	srv := NewServer("bufnet", NewControlService(counters, logger.Nop()), logger.Nop())

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufnet: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	})
	return conn, counters, srv
}

func TestGetAndResetStats(t *testing.T) {
	conn, counters, _ := startBufServer(t)
	client := NewBackpressureControlClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		counters.IncDropped()
	}
	counters.IncBufferOverflow()

	resp, err := client.GetStats(ctx, &emptypb.Empty{})
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	want := "Backpressure Statistics:\nOverflow events produced: 0\nDrop events dropped: 3\nBuffer items buffered: 1\n"
	if resp.GetValue() != want {
		t.Errorf("GetStats = %q", resp.GetValue())
	}

	reset, err := client.ResetStats(ctx, &emptypb.Empty{})
	if err != nil {
		t.Fatalf("ResetStats: %v", err)
	}
	if reset.GetValue() != "Counters reset" {
		t.Errorf("ResetStats = %q", reset.GetValue())
	}
	if snap := counters.Snapshot(); snap.Dropped != 0 || snap.BufferOverflows != 0 {
		t.Errorf("counters after reset = %+v", snap)
	}
}

func TestHealthService(t *testing.T) {
	conn, _, _ := startBufServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hc := healthpb.NewHealthClient(conn)
	for _, svc := range []string{"", BackpressureControl_ServiceName} {
		resp, err := hc.Check(ctx, &healthpb.HealthCheckRequest{Service: svc})
		if err != nil {
			t.Fatalf("Check(%q): %v", svc, err)
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			t.Errorf("Check(%q) = %v", svc, resp.GetStatus())
		}
	}
}

func TestUnimplementedServer(t *testing.T) {
	var srv UnimplementedBackpressureControlServer
	if _, err := srv.GetStats(context.Background(), &emptypb.Empty{}); err == nil {
		t.Error("expected Unimplemented error")
	}
}
