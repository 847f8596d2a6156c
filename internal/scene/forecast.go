package scene

import (
	"fmt"
	"image/color"
	"time"

	"matrixsign/internal/carousel"
	"matrixsign/internal/display"
	"matrixsign/internal/fonts"
	"matrixsign/internal/palette"
	"matrixsign/internal/weather"
)

// Per-panel vertical bands shared by the carousel layouts: a label row at
// the top, body rows, and a footer row above the progress bar.
const (
	panelLabelY = 1
	hourlyTempY = 9
	hourlyCondY = 20
	hourlyFootY = 25
	dailyIconY  = 6
	dailyHighY  = 8
	dailyLowY   = 16
	dailyFootY  = 25
)

// condAbbrev maps condition names onto labels short enough for a
// 21px-wide panel in the small font.
var condAbbrev = map[string]string{
	"Clear":             "CLR",
	"MostlyClear":       "MCLR",
	"PartlyCloudy":      "PCLD",
	"MostlyCloudy":      "MCLD",
	"Cloudy":            "CLDY",
	"Rain":              "RAIN",
	"LightRain":         "LRN",
	"HeavyRain":         "HRN",
	"Drizzle":           "DRZL",
	"Snow":              "SNOW",
	"LightSnow":         "LSNW",
	"HeavySnow":         "HSNW",
	"Flurries":          "FLRY",
	"IcePellets":        "SLT",
	"FreezingRain":      "FZRN",
	"LightFreezingRain": "FZRN",
	"Thunderstorms":     "TSTM",
	"Fog":               "FOG",
	"LightFog":          "HAZE",
}

func abbrev(condition string) string {
	if a, ok := condAbbrev[condition]; ok {
		return a
	}
	if len(condition) > 4 {
		condition = condition[:4]
	}
	return condition
}

// RenderForecast draws the carousel view selected by the state machine:
// the 3-panel hourly layout or the 2-panel daily layout, both with the
// bottom progress bar counting toward the next flip.
func (r *Renderer) RenderForecast(view carousel.View, snap weather.Snapshot, haveSnap bool,
	hourly map[int]weather.HourlyEntry, daily map[int]weather.DailyEntry,
	elapsed, duration time.Duration) {

	r.guard("forecast", func() {
		target := display.NewOffscreen(r.width, r.height)

		switch view {
		case carousel.Daily:
			r.composeDaily(target, daily)
		default:
			r.composeHourly(target, snap, haveSnap, hourly)
		}
		r.drawProgressBar(target, elapsed, duration)

		r.canvas.Clear()
		r.canvas.Blit(target)
		_ = r.canvas.Display()
	})
}

// composeHourly lays out the NOW / +6H / +12H panels.
func (r *Renderer) composeHourly(target *display.Canvas, snap weather.Snapshot, haveSnap bool, hourly map[int]weather.HourlyEntry) {
	pal := r.pal()
	panelW := r.width / 3

	labels := []string{"NOW", "+6H", "+12H"}
	for i, label := range labels {
		x := i * panelW
		w := panelW
		if i == len(labels)-1 {
			w = r.width - x // last panel absorbs the remainder
		}

		r.centerInPanel(target, fonts.Small, x, w, panelLabelY, pal.Color(palette.White), label)

		var temp int
		var condition string
		var precip int
		ok := false
		switch i {
		case 0:
			if haveSnap {
				temp, condition, precip = snap.Temp, snap.Condition, snap.PrecipChance
				ok = true
			}
		case 1:
			if e, found := hourly[6]; found {
				temp, condition, precip = e.Temp, e.Condition, e.PrecipChance
				ok = true
			}
		case 2:
			if e, found := hourly[12]; found {
				temp, condition, precip = e.Temp, e.Condition, e.PrecipChance
				ok = true
			}
		}

		if !ok {
			r.centerInPanel(target, fonts.Chunky, x, w, hourlyTempY, pal.Color(palette.White), "--")
			continue
		}

		r.centerInPanel(target, fonts.Chunky, x, w, hourlyTempY,
			pal.Color(weather.TempColor(temp)), fmt.Sprintf("%d", temp))
		r.centerInPanel(target, fonts.Small, x, w, hourlyCondY,
			pal.Color(palette.White), abbrev(condition))
		if precip > 0 {
			r.centerInPanel(target, fonts.Small, x, w, hourlyFootY,
				pal.Color(palette.Cyan), fmt.Sprintf("%d%%", precip))
		}
	}
}

// composeDaily lays out the TODAY / TMR panels: a centered icon with
// the high/low stack right-aligned over it, condition and precip
// across the footer.
func (r *Renderer) composeDaily(target *display.Canvas, daily map[int]weather.DailyEntry) {
	pal := r.pal()
	panelW := r.width / 2
	night := r.night != nil && r.night()

	labels := []string{"TODAY", "TMR"}
	for i, label := range labels {
		x := i * panelW

		r.centerInPanel(target, fonts.Small, x, panelW, panelLabelY, pal.Color(palette.White), label)

		entry, ok := daily[i]
		if !ok {
			r.centerInPanel(target, fonts.Chunky, x, panelW, dailyHighY, pal.Color(palette.White), "--")
			continue
		}

		r.drawIcon(target, x+(panelW-iconSize)/2, dailyIconY, entry.Condition, night)

		// Temps draw after the icon and hug the panel's right edge so a
		// three-digit reading stays inside its own panel.
		small := r.backendFor(fonts.Small)
		hi := fmt.Sprintf("%d", entry.TempMax)
		lo := fmt.Sprintf("%d", entry.TempMin)
		small.Draw(target, fonts.Small, x+panelW-small.Measure(fonts.Small, hi), dailyHighY,
			pal.Color(weather.TempColor(entry.TempMax)), hi)
		small.Draw(target, fonts.Small, x+panelW-small.Measure(fonts.Small, lo), dailyLowY,
			pal.Color(weather.TempColor(entry.TempMin)), lo)

		foot := abbrev(entry.Condition)
		if entry.PrecipChance > 0 {
			foot = fmt.Sprintf("%s %d%%", foot, entry.PrecipChance)
		}
		r.centerInPanel(target, fonts.Small, x, panelW, dailyFootY, pal.Color(palette.White), foot)
	}
}

// centerInPanel centers s horizontally inside [panelX, panelX+panelW).
func (r *Renderer) centerInPanel(target *display.Canvas, slot fonts.Slot, panelX, panelW, yTop int, c color.RGBA, s string) {
	be := r.backendFor(slot)
	w := be.Measure(slot, s)
	be.Draw(target, slot, panelX+(panelW-w)/2, yTop, c, s)
}
