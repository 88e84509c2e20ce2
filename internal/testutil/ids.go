package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDGenerator generates "<prefix>-1", "<prefix>-2", ... in order.
//
// This enables deterministic ids in store rows and golden output.
//
// Thread-safety: SequentialIDGenerator is safe for concurrent use via internal mutex.
type SequentialIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDGenerator creates a generator. An empty prefix defaults to "id".
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &SequentialIDGenerator{prefix: prefix}
}

// Generate returns the next id in the sequence.
func (g *SequentialIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
