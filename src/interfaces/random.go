package interfaces

// IRandom is the randomness the synthetic generators draw from
type IRandom interface {
	Float64() float64
	Intn(n int) int
}
