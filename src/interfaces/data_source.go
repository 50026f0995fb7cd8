package interfaces

import (
	"context"
	"time"

	"reactive-dashboard/src/models"
	"reactive-dashboard/src/stream"
	"reactive-dashboard/src/utils"
)

// -----------------------------------------------------------------------------
// IBackpressureSource opens the demonstration streams by mode name.
// -----------------------------------------------------------------------------

type IBackpressureSource interface {
	// Open subscribes to a mode and returns the consumer delay to apply per value
	Open(ctx context.Context, mode string) (*stream.Stream[string], time.Duration, error)
}

// -----------------------------------------------------------------------------
// IDashboardSource produces combined dashboard records for a symbol.
// -----------------------------------------------------------------------------

type IDashboardSource interface {
	DashboardStream(ctx context.Context, symbol string) (*stream.Stream[models.MStockInfo], error)

	// -----------------------------------------------------------------------------

	MarketSession(symbol string) utils.MarketSession
}
