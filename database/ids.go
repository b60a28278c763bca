package database

import (
	"sync"
	"time"
)

// IDGenerator hands out numeric record ids based on the millisecond clock.
// Ids are strictly increasing for the life of the generator and always above
// the floor passed by the caller, so a clock that steps backwards or a file
// written by an earlier process cannot produce a duplicate.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns a new id greater than floor and every id returned before.
func (g *IDGenerator) Next(floor int64) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	if id <= floor {
		id = floor + 1
	}
	g.last = id
	return id
}
