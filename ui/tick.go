package ui

import (
	"slices"
	"time"
)

// DefaultTickInterval is roughly one frame at 60Hz.
const DefaultTickInterval = 16 * time.Millisecond

// TickManager drives animations. Views register every frame; the ticker
// runs only while at least one view is registered.
type TickManager struct {
	interval time.Duration
	now      func() time.Time

	views   []View
	ticker  *time.Ticker
	last    time.Time
	pending bool
}

func newTickManager(interval time.Duration, now func() time.Time) *TickManager {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if now == nil {
		now = time.Now
	}
	return &TickManager{interval: interval, now: now}
}

func (t *TickManager) reset() {
	t.views = t.views[:0]
}

// Register asks for a ReceiveTick call on the next tick.
func (t *TickManager) Register(v View) {
	if !slices.Contains(t.views, v) {
		t.views = append(t.views, v)
	}
}

// NeedsRender makes the next Tick report a render even if no view asks
// for one.
func (t *TickManager) NeedsRender() { t.pending = true }

// Active reports whether the ticker is running.
func (t *TickManager) Active() bool { return t.ticker != nil }

// EndRender starts the ticker when views registered and stops it when none
// did.
func (t *TickManager) EndRender() {
	switch {
	case len(t.views) > 0 && t.ticker == nil:
		t.ticker = time.NewTicker(t.interval)
		t.last = t.now()
	case len(t.views) == 0 && t.ticker != nil:
		t.Stop()
	}
}

// C returns the ticker channel, or nil while inactive so that a select on
// it blocks.
func (t *TickManager) C() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}

// Tick calls ReceiveTick on every registered view with the time since the
// previous tick, and reports whether a render is needed.
func (t *TickManager) Tick(now time.Time) bool {
	dt := now.Sub(t.last)
	if t.last.IsZero() || dt < 0 {
		dt = 0
	}
	t.last = now
	render := t.pending
	t.pending = false
	for _, v := range slices.Clone(t.views) {
		if r, ok := v.(TickReceiver); ok && r.ReceiveTick(dt) {
			render = true
		}
	}
	return render
}

func (t *TickManager) Stop() {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}
