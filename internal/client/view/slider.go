package view

import (
	"sync"
	"time"

	"github.com/azadstore/storefront/internal/client/schedule"
)

const slideInterval = 3 * time.Second

// Slider cycles the hero banner through its slides on a fixed cadence.
type Slider struct {
	clock schedule.Clock

	mu      sync.Mutex
	count   int
	current int
	task    schedule.Task
}

// NewSlider sets up a slider over count slides. A count below 1 yields an
// inert slider.
func NewSlider(clock schedule.Clock, count int) *Slider {
	return &Slider{clock: clock, count: count}
}

// Start begins cycling. Restarting replaces the prior timer.
func (s *Slider) Start() {
	s.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count < 2 || s.clock == nil {
		return
	}
	s.task = s.clock.Every(slideInterval, s.advance)
}

// Stop halts cycling on the current slide.
func (s *Slider) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.task != nil {
		s.task.Stop()
		s.task = nil
	}
}

// Current returns the active slide index.
func (s *Slider) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Slider) advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = (s.current + 1) % s.count
}
