package task

import (
	"sync"
	"time"
)

// Clock hands out task ids. Ids are creation times in milliseconds, bumped
// forward whenever two tasks land in the same millisecond.
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

// Observe makes sure later ids are greater than id. Ids at or above MaxID
// are ignored so the clock can never be pushed to overflow.
func (c *Clock) Observe(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id > c.last && id < MaxID {
		c.last = id
	}
}
