package schedule

import (
	"sort"
	"sync"
	"time"
)

// FakeClock is a deterministic Clock for tests. Time only moves when Advance
// is called; due callbacks run synchronously on the advancing goroutine.
type FakeClock struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*fakeTask
}

type fakeTask struct {
	clock    *FakeClock
	next     time.Time
	interval time.Duration // zero for one-shot
	fn       func()
	stopped  bool
}

func (t *fakeTask) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.stopped = true
}

// NewFakeClock starts at the given instant.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Every(interval time.Duration, fn func()) Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	task := &fakeTask{clock: c, next: c.now.Add(interval), interval: interval, fn: fn}
	c.tasks = append(c.tasks, task)
	return task
}

func (c *FakeClock) After(delay time.Duration, fn func()) Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	task := &fakeTask{clock: c, next: c.now.Add(delay), fn: fn}
	c.tasks = append(c.tasks, task)
	return task
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves time forward, firing every due task in order.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		task := c.nextDue(target)
		if task == nil {
			break
		}
		task.fn()
	}

	c.mu.Lock()
	c.now = target
	c.mu.Unlock()
}

// nextDue pops the earliest task due at or before target, advancing the clock
// to its deadline and rescheduling it when periodic.
func (c *FakeClock) nextDue(target time.Time) *fakeTask {
	c.mu.Lock()
	defer c.mu.Unlock()

	live := c.tasks[:0]
	for _, task := range c.tasks {
		if !task.stopped {
			live = append(live, task)
		}
	}
	c.tasks = live

	sort.SliceStable(c.tasks, func(i, j int) bool { return c.tasks[i].next.Before(c.tasks[j].next) })

	for _, task := range c.tasks {
		if task.next.After(target) {
			continue
		}
		c.now = task.next
		if task.interval > 0 {
			task.next = task.next.Add(task.interval)
		} else {
			task.stopped = true
		}
		return task
	}
	return nil
}
