package stream

import (
	"context"
	"fmt"
	"time"

	"reactive-dashboard/src/helpers"
	"reactive-dashboard/src/utils"
)

// Generator computes the value for a tick. Ticks start at 0 for every subscription.
type Generator[V any] func(tick int64) (V, error)

// Emitter produces one value per period for each subscriber, starting one period after subscribing.
type Emitter[V any] struct {
	name   string
	period time.Duration
	gen    Generator[V]
}

func NewEmitter[V any](name string, period time.Duration, gen Generator[V]) *Emitter[V] {
	return &Emitter[V]{name: name, period: period, gen: gen}
}

func (e *Emitter[V]) Name() string { return e.name }

func (e *Emitter[V]) Period() time.Duration { return e.period }

// -----------------------------------------------------------------------------

// Subscribe starts an independent timer for this subscriber. The subscription
// ends when ctx is done, when Cancel is called, or on the first failure.
func (e *Emitter[V]) Subscribe(ctx context.Context, policy Policy, hooks Hooks) *Stream[V] {
	s, sctx := newStream[V](ctx, e.name)

	if err := policy.validate(); err != nil {
		s.finish(err)
		return s
	}
	if e.period <= 0 {
		s.finish(fmt.Errorf("%s: period must be positive, got %v", e.name, e.period))
		return s
	}

	go e.run(sctx, s, policy, hooks)
	return s
}

// -----------------------------------------------------------------------------

// run owns the ticker and the policy queue. Values reach the consumer only
// through the unbuffered s.values, so "consumer ready" means a receiver is waiting.
func (e *Emitter[V]) run(ctx context.Context, s *Stream[V], policy Policy, hooks Hooks) {
	ticker := time.NewTicker(e.period)
	defer ticker.Stop()

	var queue *utils.RingBuffer[V]
	switch policy.Strategy {
	case Unbounded:
		queue = utils.NewRingBuffer[V](utils.UnboundedInitialQueue)
	case BoundedBuffer:
		queue = utils.NewRingBuffer[V](policy.Capacity)
	}

	var tick int64
	for {
		var out chan V
		var head V
		if queue != nil && queue.Size() > 0 {
			out = s.values
			head, _ = queue.Peek()
		}

		select {
		case <-ctx.Done():
			hooks.cancelled()
			s.finish(ctx.Err())
			return

		case out <- head:
			queue.Pop()

		case <-ticker.C:
			if ctx.Err() != nil {
				continue
			}

			n := tick
			tick++
			v, err := e.generate(n)
			if err != nil {
				hooks.failed(err)
				s.finish(err)
				return
			}
			hooks.produce(n)

			switch policy.Strategy {
			case Unbounded:
				if queue.IsFull() {
					queue.Resize(queue.Capacity() * 2)
				}
				queue.Append(v)

			case Drop:
				select {
				case s.values <- v:
				default:
					hooks.drop(n)
				}

			case BoundedBuffer:
				if !queue.Append(v) {
					hooks.overflow(queue.Size())
					err := helpers.NewOverflowError(policy.Capacity, queue.Size())
					hooks.failed(err)
					s.finish(err)
					return
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------

func (e *Emitter[V]) generate(tick int64) (v V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = helpers.NewGenerationError(e.name, tick, fmt.Errorf("panic: %v", r))
		}
	}()

	v, err = e.gen(tick)
	if err != nil {
		err = helpers.NewGenerationError(e.name, tick, err)
	}
	return v, err
}
