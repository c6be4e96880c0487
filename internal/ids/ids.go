package ids

import (
	"sync"
	"time"
)

// Generator hands out identifiers that are unique for the lifetime of a session.
type Generator interface {
	Next() int64
}

// Clock issues millisecond timestamps, bumping by one whenever two calls land
// in the same millisecond so ids stay strictly increasing.
type Clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

func (c *Clock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

// Observe makes sure future ids are greater than id. Used after loading
// persisted collections so new ids never collide with stored ones.
func (c *Clock) Observe(id int64) {
	c.mu.Lock()
	if id > c.last {
		c.last = id
	}
	c.mu.Unlock()
}

// Sequence is a deterministic generator for tests.
type Sequence struct {
	mu   sync.Mutex
	next int64
}

func NewSequence(start int64) *Sequence {
	return &Sequence{next: start}
}

func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	return id
}
