package models

// MStatsSnapshot is a point-in-time read of the backpressure counters.
type MStatsSnapshot struct {
	OverflowProduced int64 `json:"overflow_produced"`
	Dropped          int64 `json:"dropped"`
	BufferOverflows  int64 `json:"buffer_overflows"`
}
