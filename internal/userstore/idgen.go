package userstore

import (
	"sync"
	"time"
)

// IDGenerator hands out surrogate identifiers for locally created users.
// Identifiers are strictly increasing for the lifetime of the generator.
type IDGenerator struct {
	mu   sync.Mutex
	last int
}

// NewIDGenerator returns a generator whose first id is seed+1.
func NewIDGenerator(seed int) *IDGenerator {
	return &IDGenerator{last: seed}
}

// NewClockIDGenerator seeds a generator from the wall clock in
// milliseconds, which keeps surrogate ids well above the small integers
// the reference service assigns.
func NewClockIDGenerator() *IDGenerator {
	return NewIDGenerator(int(time.Now().UnixMilli()))
}

// Next returns a fresh id greater than both the previous id and floor.
func (g *IDGenerator) Next(floor int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.last + 1
	if n <= floor {
		n = floor + 1
	}
	g.last = n
	return n
}
