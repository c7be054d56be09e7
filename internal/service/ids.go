package service

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator issues timestamp-derived identifiers: Unix milliseconds,
// strictly increasing for the life of the process.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns a new id. taken, when non-nil, reports ids already in use
// (for example ids loaded from a previous run); those are skipped.
func (g *IDGenerator) Next(taken func(id string) bool) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	candidate := g.now().UnixMilli()
	if candidate <= g.last {
		candidate = g.last + 1
	}
	for taken != nil && taken(strconv.FormatInt(candidate, 10)) {
		candidate++
	}

	g.last = candidate
	return strconv.FormatInt(candidate, 10)
}
