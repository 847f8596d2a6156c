// Package app runs the controller loop: one goroutine that owns the
// display, consuming feed commands and driving the scene renderer and
// the forecast carousel at a steady 1Hz cadence.
package app

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"matrixsign/internal/api"
	"matrixsign/internal/carousel"
	"matrixsign/internal/daynight"
	"matrixsign/internal/display"
	"matrixsign/internal/feed"
	"matrixsign/internal/markup"
	"matrixsign/internal/scene"
	"matrixsign/internal/weather"
)

// mode is what the display is currently showing. Commands switch modes;
// ticks advance whatever the active mode needs advanced.
type mode int

const (
	modeBoot mode = iota
	modeBlank
	modeText
	modePreset
	modeWeather
	modeForecast
)

type Controller struct {
	canvas   *display.Canvas
	renderer *scene.Renderer
	parser   *markup.Parser
	cache    *weather.Cache
	mailbox  *feed.Mailbox
	machine  *carousel.Machine
	night    *daynight.Tracker
	logger   *slog.Logger

	mode        mode
	textLines   []markup.Line
	presetName  string
	lastCommand string
	bootTicks   int
	startedAt   time.Time
	now         func() time.Time

	// statusMu guards status, the only state shared with the HTTP
	// handlers. Everything above is owned by the loop goroutine.
	statusMu sync.Mutex
	status   api.Status
}

// bootTimeoutTicks bounds the boot screen: after a minute without a
// weather snapshot the sign starts anyway.
const bootTimeoutTicks = 60

func NewController(
	canvas *display.Canvas,
	renderer *scene.Renderer,
	parser *markup.Parser,
	cache *weather.Cache,
	mailbox *feed.Mailbox,
	machine *carousel.Machine,
	night *daynight.Tracker,
	logger *slog.Logger,
) *Controller {
	c := &Controller{
		canvas:   canvas,
		renderer: renderer,
		parser:   parser,
		cache:    cache,
		mailbox:  mailbox,
		machine:  machine,
		night:    night,
		logger:   logger,
		mode:     modeBoot,
		now:      time.Now,
	}
	c.publishStatus()
	return c
}

// Status reports loop state for the HTTP API. Handlers run on their
// own goroutines, so they only ever see the snapshot the loop last
// published.
func (c *Controller) Status() api.Status {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	return c.status
}

// publishStatus copies the loop-owned state into the handler-visible
// snapshot.
func (c *Controller) publishStatus() {
	s := api.Status{
		View:        c.machine.View().String(),
		IsNight:     c.night.IsNight(),
		LastCommand: c.lastCommand,
		WeatherAge:  c.cache.Age().Truncate(time.Second).String(),
		StartedAt:   c.startedAt,
	}
	c.statusMu.Lock()
	c.status = s
	c.statusMu.Unlock()
}

// Run drives the loop until ctx is cancelled, then blanks the display.
func (c *Controller) Run(ctx context.Context) {
	c.startedAt = c.now()
	c.publishStatus()
	c.renderer.RenderMessage("Loading", "Weather...")

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	last := c.now()
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("controller:shutting down")
			c.renderer.Clear()
			return
		case t := <-ticker.C:
			delta := t.Sub(last)
			last = t
			c.tick(delta)
		}
	}
}

// tick is one loop iteration: consume a pending command, refresh the
// day/night flag, and advance the active mode.
func (c *Controller) tick(delta time.Duration) {
	defer c.publishStatus()
	redraw := false

	if raw, ok := c.mailbox.Take(); ok {
		redraw = c.handleCommand(raw) || redraw
	}

	if c.night.Update() {
		c.logger.Info("display:day-night flipped", slog.Bool("night", c.night.IsNight()))
		redraw = true
	}

	switch c.mode {
	case modeBoot:
		// Waiting for the first weather snapshot. Once it lands the
		// sign defaults to current conditions.
		if _, ok := c.cache.Current(); ok {
			c.renderer.RenderMessage("Weather", "Loaded!")
			c.mode = modeWeather
			return
		}
		c.bootTicks++
		if c.bootTicks >= bootTimeoutTicks {
			c.logger.Warn("boot:no weather within timeout, starting anyway")
			c.renderer.RenderMessage("Timeout", "Starting...")
			c.mode = modeWeather
			return
		}
		redraw = true // animates the loading dots
	case modeWeather:
		// Re-rendered every tick so refreshed snapshots and palette
		// flips land without bookkeeping. The frame is tiny.
		redraw = true
	case modeForecast:
		c.machine.Tick(delta)
		redraw = true
	}

	if redraw {
		c.render()
	}
}

// handleCommand routes one raw feed value. Returns true if the display
// needs redrawing.
func (c *Controller) handleCommand(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == c.lastCommand {
		// Feeds replay their last value on reconnect; showing it
		// again would reset the carousel for nothing.
		return false
	}
	c.lastCommand = raw
	c.logger.Info("command", slog.String("value", raw))

	upper := strings.ToUpper(raw)
	switch {
	case upper == "OFF" || upper == "BLANK" || upper == "SCREEN OFF":
		c.setMode(modeBlank)
	case upper == "WEATHER":
		c.setMode(modeWeather)
	case upper == "FORECAST":
		c.setMode(modeForecast)
	case strings.HasPrefix(upper, "BRIGHTNESS "):
		c.applyBrightness(strings.TrimSpace(raw[len("BRIGHTNESS "):]))
		return false
	case scene.IsPreset(upper):
		c.presetName = upper
		c.setMode(modePreset)
	default:
		c.textLines = c.parser.Parse(raw)
		c.setMode(modeText)
	}
	return true
}

func (c *Controller) setMode(m mode) {
	if m == modeForecast {
		c.machine.EnterForecast()
	} else if c.mode == modeForecast {
		c.machine.Exit()
	}
	c.mode = m
}

func (c *Controller) applyBrightness(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 || n > 100 {
		c.logger.Warn("command:bad brightness", slog.String("arg", arg))
		c.renderer.RenderMessage("Error", "Brightness "+truncate(arg, 8))
		return
	}
	c.canvas.SetBrightness(n)
	c.logger.Info("display:brightness", slog.Int("percent", n))
}

// render paints the active mode's scene.
func (c *Controller) render() {
	switch c.mode {
	case modeBoot:
		dots := strings.Repeat(".", 1+c.bootTicks%3)
		c.renderer.RenderMessage("Loading", "Weather"+dots)
	case modeBlank:
		c.renderer.Clear()
	case modeText:
		c.renderer.RenderText(c.textLines)
	case modePreset:
		c.renderer.RenderPreset(c.presetName)
	case modeWeather:
		c.renderWeather()
	case modeForecast:
		c.renderForecast()
	}
}

func (c *Controller) renderWeather() {
	snap, ok := c.cache.Current()
	if !ok {
		c.renderer.RenderMessage("Loading", "Weather...")
		return
	}
	c.renderer.RenderWeather(snap)
}

func (c *Controller) renderForecast() {
	snap, haveSnap := c.cache.Current()

	view := c.machine.View()
	if view == carousel.WeatherInterrupt {
		if !haveSnap {
			c.renderer.RenderMessage("Loading", "Weather...")
			return
		}
		c.renderer.RenderWeatherWithProgress(snap,
			c.machine.InterruptElapsed(), c.machine.InterruptDuration())
		return
	}

	c.renderer.RenderForecast(view, snap, haveSnap,
		c.cache.Hourly(), c.cache.Daily(),
		c.machine.FlipElapsed(), c.machine.FlipInterval())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
