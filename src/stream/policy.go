package stream

import "fmt"

// Strategy selects what happens to a produced value the consumer is not ready for.
type Strategy uint8

const (
	// Unbounded queues every value; the queue grows as needed.
	Unbounded Strategy = iota
	// Drop discards the newest value unless the consumer is waiting for it.
	Drop
	// BoundedBuffer queues up to Capacity values and fails the stream when full.
	BoundedBuffer
)

func (s Strategy) String() string {
	switch s {
	case Unbounded:
		return "unbounded"
	case Drop:
		return "drop"
	case BoundedBuffer:
		return "bounded-buffer"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// Policy is a Strategy with its parameters.
type Policy struct {
	Strategy Strategy
	Capacity int
}

func UnboundedPolicy() Policy { return Policy{Strategy: Unbounded} }

func DropPolicy() Policy { return Policy{Strategy: Drop} }

func BufferPolicy(capacity int) Policy {
	return Policy{Strategy: BoundedBuffer, Capacity: capacity}
}

func (p Policy) String() string {
	if p.Strategy == BoundedBuffer {
		return fmt.Sprintf("%s(%d)", p.Strategy, p.Capacity)
	}
	return p.Strategy.String()
}

func (p Policy) validate() error {
	switch p.Strategy {
	case Unbounded, Drop:
		return nil
	case BoundedBuffer:
		if p.Capacity <= 0 {
			return fmt.Errorf("bounded buffer needs a positive capacity, got %d", p.Capacity)
		}
		return nil
	default:
		return fmt.Errorf("unknown backpressure strategy %s", p.Strategy)
	}
}

// -----------------------------------------------------------------------------

// Hooks observe a subscription from its producer goroutine. All fields are optional.
// None of them runs after the subscription has seen its cancellation, and the
// terminal hooks complete before Done is closed.
type Hooks struct {
	// OnProduce runs for every generated value, before the policy decides its fate.
	OnProduce func(tick int64)
	// OnDrop runs for every value discarded by the Drop strategy.
	OnDrop func(tick int64)
	// OnOverflow runs once when a BoundedBuffer fills up, with the number of queued values.
	OnOverflow func(buffered int)
	// OnError runs once when the stream fails.
	OnError func(err error)
	// OnCancel runs once when the consumer cancels.
	OnCancel func()
}

func (h Hooks) produce(tick int64) {
	if h.OnProduce != nil {
		h.OnProduce(tick)
	}
}

func (h Hooks) drop(tick int64) {
	if h.OnDrop != nil {
		h.OnDrop(tick)
	}
}

func (h Hooks) overflow(buffered int) {
	if h.OnOverflow != nil {
		h.OnOverflow(buffered)
	}
}

func (h Hooks) failed(err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}

func (h Hooks) cancelled() {
	if h.OnCancel != nil {
		h.OnCancel()
	}
}
