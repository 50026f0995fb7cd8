package helpers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"reactive-dashboard/src/logger"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorKindsUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", NewGenerationError("price", 7, cause))

	var gen *GenerationError
	if !errors.As(err, &gen) {
		t.Fatalf("expected GenerationError in chain")
	}
	if gen.Stream != "price" || gen.Tick != 7 {
		t.Errorf("unexpected fields: %+v", gen)
	}
	if !errors.Is(err, cause) {
		t.Errorf("cause lost in chain")
	}

	var overflow *OverflowError
	if !errors.As(NewOverflowError(10, 10), &overflow) || overflow.Capacity != 10 {
		t.Errorf("OverflowError not matched")
	}
	if NewValidationError("Price cannot be negative").Error() != "Price cannot be negative" {
		t.Errorf("validation message changed")
	}
}

func TestHandleClassifies(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewErrorHandler(logger.NewLoggerFromCore(core, "errors"))

	h.Handle(nil, "noop")
	h.Handle(context.Canceled, "drop stream")
	h.Handle(NewOverflowError(10, 10), "buffer stream")
	h.Handle(errors.New("other"), "dashboard")

	if h.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", h.Count())
	}
	if n := logs.FilterLevelExact(zapcore.InfoLevel).Len(); n != 1 {
		t.Errorf("expected 1 info entry for cancellation, got %d", n)
	}
	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); n != 2 {
		t.Errorf("expected 2 error entries, got %d", n)
	}

	h.ResetErrorCount()
	if h.Count() != 0 {
		t.Errorf("count not reset")
	}
}

func TestIsCancellation(t *testing.T) {
	if !IsCancellation(fmt.Errorf("x: %w", context.DeadlineExceeded)) {
		t.Error("deadline should count as cancellation")
	}
	if IsCancellation(NewOverflowError(1, 1)) {
		t.Error("overflow is a failure")
	}
}
