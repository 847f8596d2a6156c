// Package daynight owns the display's day/night flag. Night is either
// the configured quiet window or the period between local sunset and
// sunrise, whichever claims the current instant first.
package daynight

import (
	"sync"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

type Tracker struct {
	lat, lon   float64
	nightStart int // hour of day, 0-23
	nightEnd   int
	now        func() time.Time

	mu    sync.Mutex
	night bool
}

// New builds a tracker for the given coordinates. nightStart/nightEnd
// bound the forced-night window in local hours; the window may cross
// midnight (e.g. 22 to 7).
func New(lat, lon float64, nightStart, nightEnd int) *Tracker {
	return &Tracker{
		lat:        lat,
		lon:        lon,
		nightStart: nightStart,
		nightEnd:   nightEnd,
		now:        time.Now,
	}
}

// IsNight returns the last computed flag.
func (t *Tracker) IsNight() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.night
}

// SetNight overrides the flag until the next Update, for remote
// commands that force the display dim or bright.
func (t *Tracker) SetNight(night bool) {
	t.mu.Lock()
	t.night = night
	t.mu.Unlock()
}

// Update recomputes the flag from the clock and returns whether it
// changed. The controller calls this once per loop tick.
func (t *Tracker) Update() bool {
	night := t.compute(t.now())

	t.mu.Lock()
	defer t.mu.Unlock()
	changed := night != t.night
	t.night = night
	return changed
}

func (t *Tracker) compute(now time.Time) bool {
	if inWindow(now.Hour(), t.nightStart, t.nightEnd) {
		return true
	}
	rise, set := sunrise.SunriseSunset(t.lat, t.lon, now.Year(), now.Month(), now.Day())
	if rise.IsZero() || set.IsZero() {
		// Polar day/night; fall back to the window alone.
		return false
	}
	return now.Before(rise) || now.After(set)
}

// inWindow reports whether hour lies in [start, end), treating windows
// that cross midnight as two half-open segments.
func inWindow(hour, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}
