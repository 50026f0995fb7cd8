//go:build linux

package helpers

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// GetTotalSystemMemoryMB returns the memory available to the process in MB:
// the cgroup v2 limit when one is set, else the physical total.
func GetTotalSystemMemoryMB() int {
	total := memInfoTotalMB()
	if limit := cgroupLimitMB(); limit > 0 && (total == 0 || limit < total) {
		return limit
	}
	return total
}

// -----------------------------------------------------------------------------

func memInfoTotalMB() int {
	file, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[0] == "MemTotal:" {
			if kb, err := strconv.Atoi(fields[1]); err == nil {
				return kb / 1024
			}
		}
	}
	return 0
}

// -----------------------------------------------------------------------------

func cgroupLimitMB() int {
	data, err := os.ReadFile("/sys/fs/cgroup/memory.max")
	if err != nil {
		return 0
	}
	value := strings.TrimSpace(string(data))
	if value == "max" {
		return 0
	}
	bytes, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return int(bytes >> 20)
}
