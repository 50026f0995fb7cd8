package interfaces

import "context"

// -----------------------------------------------------------------------------
// IDataExchanger is a network front end that serves the streams to clients (HTTP, gRPC).
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Start serves until Stop is called. It returns nil after a clean stop.
	Start() error

	// -----------------------------------------------------------------------------
	// Stop drains in-flight work, giving up when ctx is done
	Stop(ctx context.Context) error
}
