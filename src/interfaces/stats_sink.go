package interfaces

import "reactive-dashboard/src/models"

// -----------------------------------------------------------------------------
// IStatsSink receives backpressure counter updates and serves them to admins.
// -----------------------------------------------------------------------------

type IStatsSink interface {
	IncOverflow() int64
	IncDropped() int64
	IncBufferOverflow() int64

	Snapshot() models.MStatsSnapshot
	Report() string
	Reset()
}
