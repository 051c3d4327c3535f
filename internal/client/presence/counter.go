// Package presence drives the "users online" counter: a bounded random walk
// that nudges the displayed number every few seconds.
package presence

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/azadstore/storefront/internal/client/schedule"
)

const (
	// Walk bounds and cadence.
	Min      = 60
	Max      = 113
	interval = 3 * time.Second

	maxStep     = 10
	bounceRange = 5
	initial     = 85
)

// Counter is the bounded random walk.
type Counter struct {
	clock schedule.Clock
	rand  *rand.Rand

	mu      sync.Mutex
	current int
	task    schedule.Task
}

// NewCounter seeds the walk at its midpoint-ish starting value. A nil source
// gets a time-seeded one.
func NewCounter(clock schedule.Clock, src rand.Source) (*Counter, error) {
	if clock == nil {
		return nil, fmt.Errorf("presence: clock is required")
	}
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Counter{clock: clock, rand: rand.New(src), current: initial}, nil
}

// Start schedules the walk. Calling Start twice replaces the prior task.
func (c *Counter) Start() {
	c.Stop()
	c.mu.Lock()
	c.task = c.clock.Every(interval, c.step)
	c.mu.Unlock()
}

// Stop halts the walk; the current value freezes.
func (c *Counter) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.task != nil {
		c.task.Stop()
		c.task = nil
	}
}

// Current returns the displayed count.
func (c *Counter) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// step moves by 1..10 in a random direction, bouncing back inside the bounds
// when the walk would escape.
func (c *Counter) step() {
	c.mu.Lock()
	defer c.mu.Unlock()

	step := c.rand.Intn(maxStep) + 1
	if c.rand.Intn(2) == 0 {
		step = -step
	}
	next := c.current + step

	if next < Min {
		next = Min + c.rand.Intn(bounceRange)
	} else if next > Max {
		next = Max - c.rand.Intn(bounceRange)
	}
	c.current = next
}
