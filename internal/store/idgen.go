package store

import (
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces order ids. Every call must return a value never
// returned before.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates "ord_" prefixed UUIDv7 ids.
//
// UUIDv7 is time-sortable and carries 74 random bits, so two orders placed
// in the same millisecond still get distinct ids.
type UUIDv7Generator struct{}

// Generate returns a new order id such as "ord_0190d6f2-...".
// Panics if the system random source fails.
func (UUIDv7Generator) Generate() string {
	return "ord_" + uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator hands out predetermined ids, in order, for tests and
// scenario runs.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator returns a generator yielding ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next id. Panics when the ids run out: a test that
// places more orders than it declared is misconfigured.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
