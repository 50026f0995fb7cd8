package utils

import "time"

// -----------------------------------------------------------------------------

// Fixed timings of the demonstration streams.
const (
	BackpressurePeriod    = time.Millisecond
	ConsumerDelay         = 100 * time.Millisecond
	BufferCapacity        = 10
	PricePeriod           = 500 * time.Millisecond
	SentimentPeriod       = 2000 * time.Millisecond
	OverflowLogEvery      = 100
	DropLogEvery          = 100
	UnboundedInitialQueue = 64
)

// -----------------------------------------------------------------------------

// Price range of the synthetic price generator, [PriceMin, PriceMin+PriceSpan)
const (
	PriceMin  = 100.0
	PriceSpan = 100.0
)
