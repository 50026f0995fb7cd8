package helpers

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"reactive-dashboard/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type DashboardError struct {
	Message string
	Cause   error
}

func (e *DashboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DashboardError) Unwrap() error {
	return e.Cause
}

// Distinct kinds for errors.As
type ConfigurationError struct{ DashboardError }
type ValidationError struct{ DashboardError }

// OverflowError ends a bounded-buffer stream whose buffer is full.
type OverflowError struct {
	DashboardError
	Capacity int
	Buffered int
}

// GenerationError wraps a failure raised while producing the value for a tick.
type GenerationError struct {
	DashboardError
	Stream string
	Tick   int64
}

// -----------------------------------------------------------------------------

func NewValidationError(message string) *ValidationError {
	return &ValidationError{DashboardError{Message: message}}
}

func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{DashboardError{Message: message, Cause: cause}}
}

func NewOverflowError(capacity, buffered int) *OverflowError {
	return &OverflowError{
		DashboardError: DashboardError{Message: fmt.Sprintf("buffer overflow: capacity %d exhausted", capacity)},
		Capacity:       capacity,
		Buffered:       buffered,
	}
}

func NewGenerationError(stream string, tick int64, cause error) *GenerationError {
	return &GenerationError{
		DashboardError: DashboardError{Message: fmt.Sprintf("%s: generation failed at tick %d", stream, tick), Cause: cause},
		Stream:         stream,
		Tick:           tick,
	}
}

// -----------------------------------------------------------------------------

// IsCancellation reports whether err is a consumer-side cancellation rather than a failure
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger     *logger.Logger
	errorCount atomic.Int64
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{Logger: log}
}

// -----------------------------------------------------------------------------

// Count returns the number of failures handled so far
func (e *ErrorHandler) Count() int64 {
	return e.errorCount.Load()
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ResetErrorCount() {
	e.errorCount.Store(0)
}

// -----------------------------------------------------------------------------

// Handle logs how a stream ended. Cancellations are normal ends; anything else counts as a failure.
func (e *ErrorHandler) Handle(err error, context string) {
	if err == nil {
		return
	}
	if IsCancellation(err) {
		e.Logger.Info("%s ended: %v", context, err)
		return
	}
	e.errorCount.Add(1)

	var overflow *OverflowError
	var generation *GenerationError
	var validation *ValidationError
	switch {
	case errors.As(err, &overflow):
		e.Logger.Error("%s overflowed after %d buffered items: %v", context, overflow.Buffered, err)
	case errors.As(err, &generation):
		e.Logger.Error("%s failed in %s: %v", context, generation.Stream, err)
	case errors.As(err, &validation):
		e.Logger.Error("%s produced an invalid record: %v", context, err)
	default:
		e.Logger.Error("Error in %s: %v", context, err)
	}
}
