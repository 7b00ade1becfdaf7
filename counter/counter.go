// Package counter holds the number of sheep that have been counted so far.
package counter

import (
	"sync"
)

// Counter is a process wide integer that is safe for concurrent use. All
// mutating operations return the value after the mutation, so a caller always
// reports the value its own operation produced.
type Counter struct {
	value int64
	lock  sync.Mutex
}

// New returns a counter starting at 0.
func New() *Counter {
	return &Counter{}
}

// Set replaces the current value with n.
func (c *Counter) Set(n int64) int64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.value = n

	return c.value
}

// Reset sets the value back to 0.
func (c *Counter) Reset() int64 {
	return c.Set(0)
}

// Increment adds one sheep.
func (c *Counter) Increment() int64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.value++

	return c.value
}

func (c *Counter) Value() int64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.value
}
