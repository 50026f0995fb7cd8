package stream

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"reactive-dashboard/src/helpers"
)

func TestDropAccountsForEveryValue(t *testing.T) {
	var produced, dropped atomic.Int64
	e := NewEmitter("drop", time.Millisecond, ticks)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	s := e.Subscribe(ctx, DropPolicy(), Hooks{
		OnProduce: func(int64) { produced.Add(1) },
		OnDrop:    func(int64) { dropped.Add(1) },
	})

	var delivered []int64
	err := Consume(ctx, s, 20*time.Millisecond, func(v int64) error {
		delivered = append(delivered, v)
		return nil
	})
	if !helpers.IsCancellation(err) {
		t.Fatalf("drop stream should only end by cancellation, got %v", err)
	}
	<-s.Done()

	if len(delivered) == 0 {
		t.Fatal("nothing delivered")
	}
	for i := 1; i < len(delivered); i++ {
		if delivered[i] <= delivered[i-1] {
			t.Fatalf("delivery out of order at %d: %v", i, delivered)
		}
	}
	if got := int64(len(delivered)) + dropped.Load(); got != produced.Load() {
		t.Errorf("delivered %d + dropped %d != produced %d", len(delivered), dropped.Load(), produced.Load())
	}
	if dropped.Load() == 0 {
		t.Error("slow consumer should cause drops")
	}
}

func TestBoundedBufferFailsWhenFull(t *testing.T) {
	var overflowAt atomic.Int64
	overflowAt.Store(-1)
	e := NewEmitter("buffer", time.Millisecond, ticks)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	s := e.Subscribe(ctx, BufferPolicy(10), Hooks{
		OnOverflow: func(buffered int) { overflowAt.Store(int64(buffered)) },
	})

	var delivered []int64
	err := Consume(ctx, s, 100*time.Millisecond, func(v int64) error {
		delivered = append(delivered, v)
		return nil
	})

	var overflow *helpers.OverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("expected OverflowError, got %v", err)
	}
	if overflow.Buffered > 10 || overflow.Capacity != 10 {
		t.Errorf("overflow = %+v", overflow)
	}
	if b := overflowAt.Load(); b < 0 || b > 10 {
		t.Errorf("OnOverflow buffered = %d", b)
	}
	if elapsed := time.Since(start); elapsed >= time.Second {
		t.Errorf("failure took %v", elapsed)
	}
	for i, v := range delivered {
		if v != int64(i) {
			t.Fatalf("buffered delivery not FIFO: %v", delivered)
		}
	}
	if _, err := s.Next(context.Background()); !errors.As(err, &overflow) {
		t.Errorf("failed stream delivered again: %v", err)
	}
}

func TestUnboundedKeepsEveryValue(t *testing.T) {
	e := NewEmitter("overflow", time.Millisecond, ticks)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s := e.Subscribe(ctx, UnboundedPolicy(), Hooks{})
	defer s.Cancel()

	// Let the queue grow past its initial size before reading.
	time.Sleep(150 * time.Millisecond)
	for want := int64(0); want < 120; want++ {
		v, err := s.Next(ctx)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if v != want {
			t.Fatalf("got %d, want %d", v, want)
		}
	}
}

func TestPolicyString(t *testing.T) {
	tests := map[string]Policy{
		"unbounded":          UnboundedPolicy(),
		"drop":               DropPolicy(),
		"bounded-buffer(10)": BufferPolicy(10),
	}
	for want, p := range tests {
		if p.String() != want {
			t.Errorf("%v.String() = %s", p, p.String())
		}
	}
}
