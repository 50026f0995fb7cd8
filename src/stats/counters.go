package stats

import (
	"fmt"
	"sync/atomic"

	"reactive-dashboard/src/models"
)

const reportFormat = "Backpressure Statistics:\n" +
	"Overflow events produced: %d\n" +
	"Drop events dropped: %d\n" +
	"Buffer items buffered: %d\n"

// ResetMessage is returned to callers of a reset
const ResetMessage = "Counters reset"

// -----------------------------------------------------------------------------

// Counters holds the process-wide backpressure counters.
// Increments, reads and resets may race; the last write wins.
type Counters struct {
	overflowProduced atomic.Int64
	dropped          atomic.Int64
	bufferOverflows  atomic.Int64
}

func NewCounters() *Counters {
	return &Counters{}
}

// -----------------------------------------------------------------------------

// IncOverflow counts a value produced by the overflow stream and returns the new total
func (c *Counters) IncOverflow() int64 {
	return c.overflowProduced.Add(1)
}

// IncDropped counts a value discarded by the drop stream and returns the new total
func (c *Counters) IncDropped() int64 {
	return c.dropped.Add(1)
}

// IncBufferOverflow counts a bounded-buffer failure and returns the new total
func (c *Counters) IncBufferOverflow() int64 {
	return c.bufferOverflows.Add(1)
}

// -----------------------------------------------------------------------------

func (c *Counters) Snapshot() models.MStatsSnapshot {
	return models.MStatsSnapshot{
		OverflowProduced: c.overflowProduced.Load(),
		Dropped:          c.dropped.Load(),
		BufferOverflows:  c.bufferOverflows.Load(),
	}
}

// -----------------------------------------------------------------------------

// Report formats a snapshot as the plain-text stats body
func (c *Counters) Report() string {
	s := c.Snapshot()
	return fmt.Sprintf(reportFormat, s.OverflowProduced, s.Dropped, s.BufferOverflows)
}

// -----------------------------------------------------------------------------

func (c *Counters) Reset() {
	c.overflowProduced.Store(0)
	c.dropped.Store(0)
	c.bufferOverflows.Store(0)
}
