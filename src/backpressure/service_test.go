package backpressure

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"reactive-dashboard/src/helpers"
	"reactive-dashboard/src/logger"
	"reactive-dashboard/src/stats"
	"reactive-dashboard/src/stream"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedService(opts ...Option) (*Service, *stats.Counters, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	counters := stats.NewCounters()
	return NewService(counters, logger.NewLoggerFromCore(core, "backpressure"), opts...), counters, logs
}

func collect(t *testing.T, ctx context.Context, s *stream.Stream[string], delay time.Duration) ([]string, error) {
	t.Helper()
	var got []string
	err := stream.Consume(ctx, s, delay, func(v string) error {
		got = append(got, v)
		return nil
	})
	return got, err
}

func TestDropScenarioOneSecond(t *testing.T) {
	svc, counters, logs := newObservedService()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s, delay, err := svc.Open(ctx, ModeDrop)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if delay != 100*time.Millisecond {
		t.Fatalf("drop consumer delay = %v", delay)
	}

	got, err := collect(t, ctx, s, delay)
	if !helpers.IsCancellation(err) {
		t.Fatalf("drop stream ended with %v", err)
	}
	<-s.Done()

	if len(got) < 8 || len(got) > 12 {
		t.Errorf("delivered %d events, want about 10", len(got))
	}
	if !strings.HasSuffix(got[0], "(drop)") {
		t.Errorf("unexpected event text %q", got[0])
	}

	dropped := counters.Snapshot().Dropped
	if dropped < 500 {
		t.Errorf("dropped only %d events in a second", dropped)
	}
	warnings := logs.FilterMessageSnippet("events so far").FilterLevelExact(zapcore.WarnLevel).Len()
	if int64(warnings) != dropped/100 {
		t.Errorf("%d drop warnings for %d drops", warnings, dropped)
	}
	if logs.FilterMessageSnippet("Drop stream cancelled. Total dropped:").Len() != 1 {
		t.Error("cancellation not logged")
	}
}

func TestBufferScenarioFailsFast(t *testing.T) {
	svc, counters, logs := newObservedService()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	s, delay, err := svc.Open(ctx, ModeBuffer)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, err := collect(t, ctx, s, delay)

	var overflow *helpers.OverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("expected overflow failure, got %v", err)
	}
	if elapsed := time.Since(start); elapsed >= 500*time.Millisecond {
		t.Errorf("buffer stream failed after %v", elapsed)
	}
	if overflow.Buffered > 10 {
		t.Errorf("buffered %d items, capacity is 10", overflow.Buffered)
	}
	if len(got) == 0 || got[0] != "Event 0 (buffer)" {
		t.Errorf("delivered %v", got)
	}
	if counters.Snapshot().BufferOverflows != 1 {
		t.Errorf("buffer counter = %d", counters.Snapshot().BufferOverflows)
	}
	if logs.FilterMessageSnippet("Buffer overflow error").FilterLevelExact(zapcore.ErrorLevel).Len() != 1 {
		t.Error("overflow error not logged at error level")
	}
	if logs.FilterMessage("Buffer stream cancelled").Len() != 0 {
		t.Error("failure logged as cancellation")
	}
}

func TestOverflowDeliversEverythingInOrder(t *testing.T) {
	svc, counters, logs := newObservedService()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s, delay, err := svc.Open(ctx, ModeOverflow)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if delay != 0 {
		t.Errorf("overflow consumer delay = %v", delay)
	}

	for i := 0; i < 150; i++ {
		v, err := s.Next(ctx)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if want := "Event " + strconv.Itoa(i) + " (overflow)"; v != want {
			t.Fatalf("got %q, want %q", v, want)
		}
	}
	s.Cancel()
	<-s.Done()

	if counters.Snapshot().OverflowProduced < 150 {
		t.Errorf("overflow counter = %d", counters.Snapshot().OverflowProduced)
	}
	if logs.FilterMessage("Produced event #100 (overflow endpoint)").Len() != 1 {
		t.Error("100th produced event not logged")
	}
	if logs.FilterMessage("Overflow stream cancelled").Len() != 1 {
		t.Error("cancellation not logged")
	}
}

func TestOpenUnknownMode(t *testing.T) {
	svc, _, _ := newObservedService()
	_, _, err := svc.Open(context.Background(), "sideways")
	var verr *helpers.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestOptionsOverrideTimings(t *testing.T) {
	svc, _, _ := newObservedService(WithTimings(5*time.Millisecond, 10*time.Millisecond), WithBufferCapacity(3))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s, delay, err := svc.Open(ctx, ModeBuffer)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if delay != 10*time.Millisecond {
		t.Errorf("delay = %v", delay)
	}
	_, err = collect(t, ctx, s, 200*time.Millisecond)
	var overflow *helpers.OverflowError
	if !errors.As(err, &overflow) || overflow.Capacity != 3 {
		t.Fatalf("expected capacity-3 overflow, got %v", err)
	}
}
