package helpers

import (
	"runtime/debug"
	"testing"

	"reactive-dashboard/src/logger"
)

func TestRecommendedMemoryLimitIsPositive(t *testing.T) {
	limit := GetRecommendedMemoryLimit()
	if limit <= 0 {
		t.Fatalf("limit = %d", limit)
	}
	if total := GetTotalSystemMemoryMB(); total > 0 && limit > total {
		t.Errorf("limit %d above total %d", limit, total)
	}
}

func TestApplyMemoryLimit(t *testing.T) {
	previous := debug.SetMemoryLimit(-1)
	defer debug.SetMemoryLimit(previous)

	mb := ApplyMemoryLimit(logger.Nop())
	if got := debug.SetMemoryLimit(-1); got != int64(mb)<<20 {
		t.Errorf("memory limit = %d, want %d", got, int64(mb)<<20)
	}
}
