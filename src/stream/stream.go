package stream

import (
	"context"
	"sync"
	"time"
)

// Stream is one live subscription: a sequence of values ended by cancellation or a failure.
// Values are delivered in production order and nothing is delivered after the end.
type Stream[V any] struct {
	name   string
	values chan V
	done   chan struct{}
	once   sync.Once
	err    error
	cancel context.CancelFunc
}

func newStream[V any](parent context.Context, name string) (*Stream[V], context.Context) {
	ctx, cancel := context.WithCancel(parent)
	return &Stream[V]{
		name:   name,
		values: make(chan V),
		done:   make(chan struct{}),
		cancel: cancel,
	}, ctx
}

// Name identifies the stream in logs
func (s *Stream[V]) Name() string { return s.name }

// Values yields delivered values. It is never closed; select on Done as well.
func (s *Stream[V]) Values() <-chan V { return s.values }

// Done is closed once the stream has ended.
func (s *Stream[V]) Done() <-chan struct{} { return s.done }

// Err reports why the stream ended: context.Canceled for a cancellation,
// the failure otherwise. It returns nil while the stream is live.
func (s *Stream[V]) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Cancel stops the stream and its timer. Safe to call more than once.
func (s *Stream[V]) Cancel() { s.cancel() }

func (s *Stream[V]) finish(err error) {
	s.once.Do(func() {
		s.err = err
		close(s.done)
		s.cancel()
	})
}

// Next blocks for the next value. A terminated stream returns its end reason
// even if values were still queued.
func (s *Stream[V]) Next(ctx context.Context) (V, error) {
	var zero V
	select {
	case <-s.done:
		return zero, s.err
	default:
	}

	select {
	case v := <-s.values:
		return v, nil
	case <-s.done:
		return zero, s.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// -----------------------------------------------------------------------------

// Consume reads s on the calling goroutine, waiting delay after each value to model a slow consumer.
// It returns the reason the stream ended, or the first error from fn. The stream is cancelled on return.
func Consume[V any](ctx context.Context, s *Stream[V], delay time.Duration, fn func(V) error) error {
	defer s.Cancel()

	var timer *time.Timer
	if delay > 0 {
		timer = time.NewTimer(delay)
		timer.Stop()
		defer timer.Stop()
	}

	for {
		v, err := s.Next(ctx)
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
		if timer == nil {
			continue
		}
		timer.Reset(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
