// Package state provides thread-safe state for the running dashboard.
package state

import (
	"sync"
	"time"

	"github.com/litescript/solargeo/internal/ephemeris"
	"github.com/litescript/solargeo/internal/sites"
	"github.com/litescript/solargeo/internal/trace"
)

// HistoryPoint is one recorded elevation for the dashboard sparkline.
type HistoryPoint struct {
	Time      time.Time
	Elevation float64
}

// Snapshot is an immutable view of the current state.
type Snapshot struct {
	Site       sites.Site
	Position   ephemeris.Position
	ComputedAt time.Time
	Trace      *trace.Trace
	LastError  error
	History    []HistoryPoint
}

// Config holds configuration for the tracker.
type Config struct {
	Site            sites.Site
	MaxHistory      int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistory:      120, // 2 hours at 1 update/min
		RefreshInterval: time.Minute,
	}
}

// Tracker holds the latest computed solar state with thread-safe access.
// The compute loop writes, the UI reads snapshots.
type Tracker struct {
	mu sync.RWMutex

	site       sites.Site
	position   ephemeris.Position
	computedAt time.Time
	trace      *trace.Trace
	lastErr    error

	history    []HistoryPoint
	maxHistory int

	refreshInterval time.Duration
}

// NewTracker creates a tracker for the given configuration.
func NewTracker(cfg Config) *Tracker {
	maxHistory := cfg.MaxHistory
	if maxHistory <= 0 {
		maxHistory = 120
	}
	refresh := cfg.RefreshInterval
	if refresh <= 0 {
		refresh = time.Minute
	}
	return &Tracker{
		site:            cfg.Site,
		maxHistory:      maxHistory,
		refreshInterval: refresh,
	}
}

// Update atomically records a new computed position and trace. A non-nil err
// preserves the previous position and trace, only the error is stored.
func (t *Tracker) Update(pos ephemeris.Position, tr *trace.Trace, at time.Time, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastErr = err
	if err != nil {
		return
	}

	t.position = pos
	t.computedAt = at
	if tr != nil {
		t.trace = tr
	}

	t.history = append(t.history, HistoryPoint{Time: at, Elevation: pos.Elevation})
	if len(t.history) > t.maxHistory {
		t.history = t.history[1:]
	}
}

// Snapshot returns a consistent snapshot of current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	history := make([]HistoryPoint, len(t.history))
	copy(history, t.history)

	return Snapshot{
		Site:       t.site,
		Position:   t.position,
		ComputedAt: t.computedAt,
		Trace:      t.trace,
		LastError:  t.lastErr,
		History:    history,
	}
}

// HasData reports whether at least one successful update happened.
func (t *Tracker) HasData() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return !t.computedAt.IsZero()
}

// RefreshInterval returns the configured refresh interval.
func (t *Tracker) RefreshInterval() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.refreshInterval
}
