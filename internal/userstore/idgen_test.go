package userstore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGenerator_Monotonic(t *testing.T) {
	g := NewIDGenerator(10)
	assert.Equal(t, 11, g.Next(0))
	assert.Equal(t, 12, g.Next(0))
	assert.Equal(t, 51, g.Next(50), "floor lifts the next id")
	assert.Equal(t, 52, g.Next(3))
}

func TestIDGenerator_ClockSeedAboveServiceIDs(t *testing.T) {
	g := NewClockIDGenerator()
	assert.Greater(t, g.Next(0), 1_000_000)
}

func TestIDGenerator_ConcurrentUnique(t *testing.T) {
	g := NewIDGenerator(0)
	const n = 200

	var mu sync.Mutex
	seen := make(map[int]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := g.Next(0)
			mu.Lock()
			defer mu.Unlock()
			seen[id] = true
		}()
	}
	wg.Wait()
	require.Len(t, seen, n)
}
