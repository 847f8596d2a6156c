// Package carousel owns the forecast display's timing state: which panel
// set is showing, when to flip between hourly and daily views, and the
// periodic "weather on the 8s" interruption. It is mutated only by the
// scheduler tick (single writer).
package carousel

import "time"

// View is the active carousel selection.
type View int

// Carousel states. WeatherInterrupt layers transparently over
// Hourly/Daily: the interrupted view is remembered and resumed.
const (
	Idle View = iota
	Hourly
	Daily
	WeatherInterrupt
)

func (v View) String() string {
	switch v {
	case Hourly:
		return "hourly"
	case Daily:
		return "daily"
	case WeatherInterrupt:
		return "weather-interrupt"
	default:
		return "idle"
	}
}

// Machine advances carousel state by scheduler ticks.
type Machine struct {
	flipInterval      time.Duration
	interruptDuration time.Duration
	now               func() time.Time

	view        View
	resumeView  View
	flipTimer   time.Duration
	intTimer    time.Duration
	lastTrigger time.Time // minute guard for the on-the-8s interrupt
	forceRedraw bool
}

// New returns an idle machine. flipInterval controls the hourly/daily
// alternation; interruptDuration is how long the on-the-8s weather view
// holds before resuming.
func New(flipInterval, interruptDuration time.Duration) *Machine {
	return &Machine{
		flipInterval:      flipInterval,
		interruptDuration: interruptDuration,
		now:               time.Now,
	}
}

// EnterForecast switches to the hourly view with timers reset and flags a
// full redraw so the previous scene cannot ghost through.
func (m *Machine) EnterForecast() {
	m.view = Hourly
	m.resumeView = Hourly
	m.flipTimer = 0
	m.intTimer = 0
	m.forceRedraw = true
}

// Exit returns the machine to idle. Any other command or the scheduled
// auto-off lands here.
func (m *Machine) Exit() {
	m.view = Idle
	m.flipTimer = 0
	m.intTimer = 0
}

// Tick advances all timers by delta. A zero delta never changes state.
func (m *Machine) Tick(delta time.Duration) {
	if delta <= 0 || m.view == Idle {
		return
	}

	if m.view == WeatherInterrupt {
		m.intTimer += delta
		if m.intTimer >= m.interruptDuration {
			m.view = m.resumeView
			m.intTimer = 0
			m.flipTimer = 0
			m.forceRedraw = true
		}
		return
	}

	if m.shouldInterrupt() {
		m.resumeView = m.view
		m.view = WeatherInterrupt
		m.intTimer = 0
		m.forceRedraw = true
		return
	}

	m.flipTimer += delta
	if m.flipTimer >= m.flipInterval {
		if m.view == Hourly {
			m.view = Daily
		} else {
			m.view = Hourly
		}
		m.flipTimer = 0
	}
}

// shouldInterrupt triggers once per minute whose minute-of-hour ends in
// 8. The guard keeps one matching minute from firing more than once.
func (m *Machine) shouldInterrupt() bool {
	now := m.now().Truncate(time.Minute)
	if now.Minute()%10 != 8 {
		return false
	}
	if now.Equal(m.lastTrigger) {
		return false
	}
	m.lastTrigger = now
	return true
}

// View returns the active selection.
func (m *Machine) View() View { return m.view }

// FlipElapsed is the time accumulated toward the next hourly/daily flip.
func (m *Machine) FlipElapsed() time.Duration { return m.flipTimer }

// FlipInterval is the configured flip period.
func (m *Machine) FlipInterval() time.Duration { return m.flipInterval }

// InterruptElapsed is the time spent in the current interrupt.
func (m *Machine) InterruptElapsed() time.Duration { return m.intTimer }

// InterruptDuration is the configured interrupt hold time.
func (m *Machine) InterruptDuration() time.Duration { return m.interruptDuration }

// ConsumeRedraw reports and clears the pending full-redraw flag.
func (m *Machine) ConsumeRedraw() bool {
	f := m.forceRedraw
	m.forceRedraw = false
	return f
}
