// Package interstitial implements the follow gate shown before any external
// messaging link opens. The countdown arms on open but only runs once the
// user hits the follow control; closing early discards the pending link.
package interstitial

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/azadstore/storefront/internal/client/schedule"
)

const (
	// DefaultCountdownSeconds is the countdown length when none is configured.
	DefaultCountdownSeconds = 15
	// DefaultConfirmSeconds is how long the confirmation notice shows when no
	// duration is configured.
	DefaultConfirmSeconds = 2

	tickInterval = time.Second
)

// LinkOpener opens the pending external messaging link once the gate
// completes.
type LinkOpener interface {
	Open(phone, text string) error
}

// PageOpener opens the follow page itself when the user engages the gate.
type PageOpener interface {
	OpenURL(url string) error
}

// View is the render-ready gate state.
type View struct {
	Open      int // remaining countdown; meaningful only when Visible
	Visible   bool
	Counting  bool
	Confirmed bool // short-lived confirmation notice after the countdown
}

// Gate is the follow interstitial.
type Gate struct {
	clock      schedule.Clock
	links      LinkOpener
	pages      PageOpener
	followURL  string
	start      int
	confirmFor time.Duration
	logger     *zap.Logger

	visible      bool
	counting     bool
	confirmed    bool
	remaining    int
	pendingPhone string
	pendingText  string

	countdown schedule.Task
	confirm   schedule.Task
}

// GateDeps bundles constructor inputs for the gate. CountdownSeconds and
// ConfirmSeconds fall back to the defaults when unset.
type GateDeps struct {
	Clock            schedule.Clock
	Links            LinkOpener
	Pages            PageOpener
	FollowPageURL    string
	CountdownSeconds int
	ConfirmSeconds   int
	Logger           *zap.Logger
}

// NewGate constructs the gate.
func NewGate(deps GateDeps) (*Gate, error) {
	if deps.Clock == nil {
		return nil, fmt.Errorf("interstitial: clock is required")
	}
	start := deps.CountdownSeconds
	if start <= 0 {
		start = DefaultCountdownSeconds
	}
	confirmSeconds := deps.ConfirmSeconds
	if confirmSeconds <= 0 {
		confirmSeconds = DefaultConfirmSeconds
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		clock:      deps.Clock,
		links:      deps.Links,
		pages:      deps.Pages,
		followURL:  deps.FollowPageURL,
		start:      start,
		confirmFor: time.Duration(confirmSeconds) * time.Second,
		logger:     logger,
	}, nil
}

// View returns the current gate state.
func (g *Gate) View() View {
	return View{Open: g.remaining, Visible: g.visible, Counting: g.counting, Confirmed: g.confirmed}
}

// Trigger arms the gate with the pending link and shows it with a full
// countdown. The countdown does not start here; that is the engagement gate.
func (g *Gate) Trigger(phone, text string) {
	g.cancelCountdown()
	g.visible = true
	g.counting = false
	g.remaining = g.start
	g.pendingPhone = phone
	g.pendingText = text
}

// Follow opens the follow page and starts the countdown. Starting again
// restarts it; any prior timer is cancelled first so only one is ever live.
func (g *Gate) Follow() {
	if !g.visible {
		return
	}
	if g.pages != nil && g.followURL != "" {
		if err := g.pages.OpenURL(g.followURL); err != nil {
			g.logger.Warn("follow page failed to open", zap.Error(err))
		}
	}
	g.cancelCountdown()
	g.counting = true
	g.remaining = g.start
	g.countdown = g.clock.Every(tickInterval, g.tick)
}

// Close hides the gate before the countdown finishes and discards the pending
// link: no external link opens.
func (g *Gate) Close() {
	g.cancelCountdown()
	g.visible = false
	g.counting = false
	g.remaining = 0
	g.pendingPhone = ""
	g.pendingText = ""
}

func (g *Gate) tick() {
	if !g.counting {
		return
	}
	g.remaining--
	if g.remaining > 0 {
		return
	}
	g.cancelCountdown()
	g.advance()
}

// advance hides the gate, shows the short-lived confirmation, and opens the
// pending link.
func (g *Gate) advance() {
	g.visible = false
	g.counting = false

	g.confirmed = true
	if g.confirm != nil {
		g.confirm.Stop()
	}
	g.confirm = g.clock.After(g.confirmFor, func() { g.confirmed = false })

	if g.links != nil && g.pendingText != "" {
		if err := g.links.Open(g.pendingPhone, g.pendingText); err != nil {
			g.logger.Warn("messaging link failed", zap.Error(err))
		}
	}
	g.pendingPhone = ""
	g.pendingText = ""
}

func (g *Gate) cancelCountdown() {
	if g.countdown != nil {
		g.countdown.Stop()
		g.countdown = nil
	}
}
