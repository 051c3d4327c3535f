// Package schedule wraps timer creation behind a Clock so timer-driven
// components can be driven deterministically in tests.
package schedule

import (
	"sync"
	"time"
)

// Task is a cancellable scheduled callback.
type Task interface {
	// Stop cancels the task. Stopping an already-stopped task is a no-op.
	Stop()
}

// Clock creates scheduled tasks.
type Clock interface {
	// Every invokes fn once per interval until the returned task is stopped.
	Every(interval time.Duration, fn func()) Task
	// After invokes fn once after delay unless stopped first.
	After(delay time.Duration, fn func()) Task
	Now() time.Time
}

// RealClock schedules on wall-clock timers.
type RealClock struct{}

type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTask) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}

func (RealClock) Every(interval time.Duration, fn func()) Task {
	task := &tickerTask{ticker: time.NewTicker(interval), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-task.ticker.C:
				fn()
			case <-task.done:
				return
			}
		}
	}()
	return task
}

type timerTask struct {
	timer *time.Timer
	once  sync.Once
}

func (t *timerTask) Stop() {
	t.once.Do(func() { t.timer.Stop() })
}

func (RealClock) After(delay time.Duration, fn func()) Task {
	return &timerTask{timer: time.AfterFunc(delay, fn)}
}

func (RealClock) Now() time.Time {
	return time.Now()
}
