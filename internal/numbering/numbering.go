// Package numbering generates record ids and business numbers.
//
// Business numbers follow PREFIX-YYYYMMDD-NNN with a process-global,
// monotonically increasing sequence. The counter is injected so tests can
// run deterministically and multiple generators never hand out the same
// number twice.
package numbering

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Counter yields monotonically increasing sequence values.
type Counter interface {
	Next() uint64
}

// AtomicCounter is the default process-global counter.
type AtomicCounter struct {
	value atomic.Uint64
}

// NewAtomicCounter creates a counter starting after start.
func NewAtomicCounter(start uint64) *AtomicCounter {
	c := &AtomicCounter{}
	c.value.Store(start)
	return c
}

// Next returns the next sequence value.
func (c *AtomicCounter) Next() uint64 {
	return c.value.Add(1)
}

// Generator produces ids and business numbers.
type Generator struct {
	counter Counter
}

// NewGenerator constructs a generator around the given counter.
func NewGenerator(counter Counter) *Generator {
	if counter == nil {
		counter = NewAtomicCounter(0)
	}
	return &Generator{counter: counter}
}

// NextID returns a prefixed random record id.
func (g *Generator) NextID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// NextNo returns the next business number for the given prefix and day.
func (g *Generator) NextNo(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, t.Format("20060102"), g.counter.Next())
}
