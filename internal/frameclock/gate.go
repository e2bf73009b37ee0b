package frameclock

import "sync"

// Runner is anything that can be started and stopped, usually a *Clock.
type Runner interface {
	Start()
	Stop()
}

// Gate runs its Runner only while the surface is in view and the host
// (window, terminal, tab) is visible. Both start out true so a host that
// cannot report visibility is treated as always visible.
type Gate struct {
	mu          sync.Mutex
	runner      Runner
	inView      bool
	hostVisible bool
	enabled     bool
}

// NewGate returns a gate over r. r may be nil when the caller polls
// Visible instead of owning a clock.
func NewGate(r Runner) *Gate {
	return &Gate{runner: r, inView: true, hostVisible: true}
}

// Enable starts honouring visibility changes and starts the runner if the
// surface is currently visible.
func (g *Gate) Enable() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.enabled = true
	g.apply()
}

// Disable stops the runner regardless of visibility.
func (g *Gate) Disable() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.enabled = false
	g.apply()
}

// SetInView records whether the drawing surface intersects the viewport.
func (g *Gate) SetInView(v bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inView == v {
		return
	}
	g.inView = v
	g.apply()
}

// SetHostVisible records whether the hosting window or tab is visible.
func (g *Gate) SetHostVisible(v bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.hostVisible == v {
		return
	}
	g.hostVisible = v
	g.apply()
}

// Visible reports whether frames should currently be computed.
func (g *Gate) Visible() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enabled && g.inView && g.hostVisible
}

func (g *Gate) apply() {
	if g.runner == nil {
		return
	}
	if g.enabled && g.inView && g.hostVisible {
		g.runner.Start()
	} else {
		g.runner.Stop()
	}
}
