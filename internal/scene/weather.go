package scene

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"matrixsign/internal/display"
	"matrixsign/internal/fonts"
	"matrixsign/internal/palette"
	"matrixsign/internal/weather"
)

// Fixed positions of the weather scene on a 64×32 panel.
const (
	weatherTempX   = 1
	weatherTempY   = 0
	weatherFeelsY  = 11
	weatherWindY   = 18
	weatherHumY    = 25
	weatherIconX   = 40
	weatherIconY   = 0
	pressureRightX = 63
)

// RenderWeather shows current conditions: large colored temperature,
// feels-like, wind, humidity, the right-aligned pressure readout, and the
// condition icon top-right.
func (r *Renderer) RenderWeather(snap weather.Snapshot) {
	r.guard("weather", func() {
		target := display.NewOffscreen(r.width, r.height)
		r.composeWeather(target, snap)
		r.canvas.Clear()
		r.canvas.Blit(target)
		_ = r.canvas.Display()
	})
}

// RenderWeatherWithProgress is the on-the-8s interrupt view: the weather
// scene plus the bottom progress bar showing time left in the interrupt.
func (r *Renderer) RenderWeatherWithProgress(snap weather.Snapshot, elapsed, duration time.Duration) {
	r.guard("weather-progress", func() {
		target := display.NewOffscreen(r.width, r.height)
		r.composeWeather(target, snap)
		r.drawProgressBar(target, elapsed, duration)
		r.canvas.Clear()
		r.canvas.Blit(target)
		_ = r.canvas.Display()
	})
}

func (r *Renderer) composeWeather(target *display.Canvas, snap weather.Snapshot) {
	pal := r.pal()
	small := r.backendFor(fonts.Small)
	info := pal.Color(palette.White)

	r.drawIcon(target, weatherIconX, weatherIconY, snap.Condition, snap.IsNight)

	// Temperature, large, color-banded.
	tempText := fmt.Sprintf("%dF", snap.Temp)
	r.backendFor(fonts.Large).Draw(target, fonts.Large, weatherTempX, weatherTempY,
		pal.Color(snap.TempColor()), tempText)

	// Feels-like carries its own band color, not the temperature's.
	small.Draw(target, fonts.Small, weatherTempX, weatherFeelsY,
		pal.Color(snap.FeelsLikeColor()), fmt.Sprintf("FL:%dF", snap.FeelsLike))

	small.Draw(target, fonts.Small, weatherTempX, weatherWindY, info, formatWind(snap))

	small.Draw(target, fonts.Small, weatherTempX, weatherHumY, info,
		fmt.Sprintf("H:%d%%", snap.Humidity))

	r.drawPressure(target, snap, info)
}

// formatWind renders "{dir}{speed:02d}MPH", e.g. "NE05MPH".
func formatWind(snap weather.Snapshot) string {
	return fmt.Sprintf("%s%02dMPH", snap.WindDir, snap.WindSpeed)
}

// drawPressure renders the right-aligned barometer readout from three
// segments: trend arrow plus integer inches, the decimal point and two
// decimal digits, and the unit suffix raised one pixel. The negative
// inter-segment offsets deliberately tighten the group so it reads as one
// number.
func (r *Renderer) drawPressure(target *display.Canvas, snap weather.Snapshot, c color.RGBA) {
	be := r.backendFor(fonts.Small)

	intPart := int(snap.Pressure)
	frac := int(math.Round((snap.Pressure - float64(intPart)) * 100))
	if frac > 99 {
		frac = 99
	}
	if frac < 0 {
		frac = 0
	}

	head := fmt.Sprintf("%s%d", trendArrow(snap.PressureTrend), intPart)
	decimals := fmt.Sprintf(".%02d", frac)
	const unit = "in"

	wHead := be.Measure(fonts.Small, head)
	wDec := be.Measure(fonts.Small, decimals)
	wUnit := be.Measure(fonts.Small, unit)

	// Each joint overlaps by 1px.
	total := wHead + (wDec - 1) + (wUnit - 1)
	x := pressureRightX - total
	y := weatherHumY

	be.Draw(target, fonts.Small, x, y, c, head)
	x += wHead - 1
	be.Draw(target, fonts.Small, x, y, c, decimals)
	x += wDec - 1
	be.Draw(target, fonts.Small, x, y-1, c, unit)
}

func trendArrow(t weather.Trend) string {
	switch t {
	case weather.TrendRising:
		return "^"
	case weather.TrendFalling:
		return "v"
	default:
		return "~"
	}
}

// Progress bar color stages. The bar runs cyan until half the interval is
// gone, then warms toward red as the transition approaches.
const (
	progressWarnAt = 0.50
	progressHotAt  = 0.80
	progressFlipAt = 0.95
)

// drawProgressBar paints the bottom-row bar proportional to
// elapsed/duration.
func (r *Renderer) drawProgressBar(target *display.Canvas, elapsed, duration time.Duration) {
	if duration <= 0 {
		return
	}
	ratio := float64(elapsed) / float64(duration)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	pal := r.pal()
	var c color.RGBA
	switch {
	case ratio < progressWarnAt:
		c = pal.Color(palette.Cyan)
	case ratio < progressHotAt:
		c = pal.Color(palette.Yellow)
	case ratio < progressFlipAt:
		c = pal.Color(palette.OrangeRed)
	default:
		c = pal.Color(palette.Red)
	}

	width := int(math.Round(ratio * float64(r.width)))
	target.FillRect(0, r.height-1, width, 1, c)
}
