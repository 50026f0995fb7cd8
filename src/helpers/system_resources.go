package helpers

import (
	"runtime/debug"

	"reactive-dashboard/src/logger"
)

const fallbackMemoryLimitMB = 512

// GetRecommendedMemoryLimit returns 75% of the memory available to the process, in MB.
// Falls back to 512MB when the limit cannot be determined.
func GetRecommendedMemoryLimit() int {
	totalMB := GetTotalSystemMemoryMB()
	if totalMB == 0 {
		return fallbackMemoryLimitMB
	}

	limit := int(float64(totalMB) * 0.75)
	if limit < fallbackMemoryLimitMB {
		if totalMB < fallbackMemoryLimitMB {
			return totalMB
		}
		return fallbackMemoryLimitMB
	}
	return limit
}

// -----------------------------------------------------------------------------

// ApplyMemoryLimit sets a soft GC limit so an unbounded queue that grows
// under a slow consumer makes the collector work harder before the OS kills us.
// It returns the limit applied, in MB.
func ApplyMemoryLimit(log *logger.Logger) int {
	limitMB := GetRecommendedMemoryLimit()
	debug.SetMemoryLimit(int64(limitMB) << 20)
	log.Info("Soft memory limit set to %d MB", limitMB)
	return limitMB
}
