package repository

import "time"

// Limits applied by backends when a caller leaves the window open.
const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// Page represents a simple limit/offset window for listing operations.
// I keep it intentionally small; filtering lives in the per-entity filter structs.
type Page struct {
	Limit  int
	Offset int
}

// PageResult carries a slice of items and the total count matching the query.
// I return the total so clients can compute pagination without an extra round trip.
type PageResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Sanitize clamps the window into the supported range.
func (p Page) Sanitize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Clock supplies creation and update timestamps to backends.
type Clock func() time.Time

// SystemClock is the production clock.
func SystemClock() time.Time { return time.Now() }

// Stamp normalizes a clock reading to what both backends can round-trip.
func (c Clock) Stamp() time.Time {
	if c == nil {
		c = SystemClock
	}
	return c().UTC().Truncate(time.Microsecond)
}
