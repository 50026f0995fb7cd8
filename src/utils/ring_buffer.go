package utils

// -----------------------------------------------------------------------------
// RingBuffer is a FIFO circular buffer.
// Append refuses writes when full; callers that want growth call Resize.
// -----------------------------------------------------------------------------

type RingBuffer[T any] struct {
	data     []T
	capacity int
	index    int // Next write position
	size     int // Current number of elements
}

// -----------------------------------------------------------------------------

// NewRingBuffer creates a new buffer with fixed capacity
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity <= 0 {
		capacity = 1
	}

	return &RingBuffer[T]{
		data:     make([]T, capacity),
		capacity: capacity,
	}
}

// -----------------------------------------------------------------------------

// Append adds an item at the tail. It returns false when the buffer is full.
func (rb *RingBuffer[T]) Append(item T) bool {
	if rb.size == rb.capacity {
		return false
	}
	rb.data[rb.index] = item
	rb.index = (rb.index + 1) % rb.capacity
	rb.size++
	return true
}

// -----------------------------------------------------------------------------

// head is the position of the oldest element
func (rb *RingBuffer[T]) head() int {
	return (rb.index - rb.size + rb.capacity) % rb.capacity
}

// -----------------------------------------------------------------------------

// Peek returns the oldest item without removing it
func (rb *RingBuffer[T]) Peek() (T, bool) {
	var zero T
	if rb.size == 0 {
		return zero, false
	}
	return rb.data[rb.head()], true
}

// -----------------------------------------------------------------------------

// Pop removes and returns the oldest item
func (rb *RingBuffer[T]) Pop() (T, bool) {
	var zero T
	if rb.size == 0 {
		return zero, false
	}
	h := rb.head()
	item := rb.data[h]
	rb.data[h] = zero
	rb.size--
	return item, true
}

// -----------------------------------------------------------------------------

// GetAll returns all data in insertion order (oldest to newest)
func (rb *RingBuffer[T]) GetAll() []T {
	result := make([]T, rb.size)
	start := rb.head()
	for i := 0; i < rb.size; i++ {
		result[i] = rb.data[(start+i)%rb.capacity]
	}
	return result
}

// -----------------------------------------------------------------------------

// Size returns current number of elements
func (rb *RingBuffer[T]) Size() int {
	return rb.size
}

// -----------------------------------------------------------------------------

// Capacity returns buffer capacity
func (rb *RingBuffer[T]) Capacity() int {
	return rb.capacity
}

// -----------------------------------------------------------------------------

// Resize changes the capacity of the buffer
// If newCapacity < size, oldest data is dropped
func (rb *RingBuffer[T]) Resize(newCapacity int) {
	if newCapacity <= 0 || newCapacity == rb.capacity {
		return
	}

	count := rb.size
	if count > newCapacity {
		count = newCapacity
	}

	// Keep the newest 'count' items, oldest first
	newData := make([]T, newCapacity)
	startIdx := (rb.index - count + rb.capacity) % rb.capacity
	for i := 0; i < count; i++ {
		newData[i] = rb.data[(startIdx+i)%rb.capacity]
	}

	rb.data = newData
	rb.capacity = newCapacity
	rb.size = count
	rb.index = count % newCapacity
}

// -----------------------------------------------------------------------------

// IsFull returns whether buffer is full
func (rb *RingBuffer[T]) IsFull() bool {
	return rb.size == rb.capacity
}

// -----------------------------------------------------------------------------

// Clear resets the buffer
func (rb *RingBuffer[T]) Clear() {
	clear(rb.data)
	rb.index = 0
	rb.size = 0
}
