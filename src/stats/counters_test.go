package stats

import (
	"sync"
	"testing"
)

func TestCountersCountAndReset(t *testing.T) {
	c := NewCounters()
	const n = 250
	for i := 0; i < n; i++ {
		c.IncDropped()
	}
	c.IncOverflow()
	c.IncOverflow()
	if got := c.IncBufferOverflow(); got != 1 {
		t.Fatalf("IncBufferOverflow returned %d", got)
	}

	s := c.Snapshot()
	if s.Dropped != n || s.OverflowProduced != 2 || s.BufferOverflows != 1 {
		t.Fatalf("snapshot = %+v", s)
	}

	want := "Backpressure Statistics:\nOverflow events produced: 2\nDrop events dropped: 250\nBuffer items buffered: 1\n"
	if got := c.Report(); got != want {
		t.Errorf("Report() = %q, want %q", got, want)
	}

	c.Reset()
	if s := c.Snapshot(); s.Dropped != 0 || s.OverflowProduced != 0 || s.BufferOverflows != 0 {
		t.Errorf("after reset = %+v", s)
	}
}

func TestCountersConcurrentIncrements(t *testing.T) {
	c := NewCounters()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				c.IncDropped()
				c.IncOverflow()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = c.Report()
		}
	}()
	wg.Wait()

	if s := c.Snapshot(); s.Dropped != 8000 || s.OverflowProduced != 8000 {
		t.Errorf("lost increments: %+v", s)
	}
}
