package scene

import (
	"image/color"
	"io"
	"log/slog"
	"testing"
	"time"

	"matrixsign/internal/carousel"
	"matrixsign/internal/display"
	"matrixsign/internal/fonts"
	"matrixsign/internal/palette"
	"matrixsign/internal/weather"
)

func newTestRenderer() (*Renderer, *display.NullPanel) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	panel := display.NewNullPanel(64, 32, logger)
	canvas := display.New(panel)
	r := New(canvas, fonts.DefaultTable(), "", palette.Day, func() bool { return false }, logger)
	return r, panel
}

func frameAt(panel *display.NullPanel, x, y int) color.RGBA {
	return panel.Frame()[y*64+x]
}

func isBlack(c color.RGBA) bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// rowsWithInk returns the set of rows containing any lit pixel.
func rowsWithInk(panel *display.NullPanel) map[int]bool {
	rows := map[int]bool{}
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if !isBlack(frameAt(panel, x, y)) {
				rows[y] = true
				break
			}
		}
	}
	return rows
}

func TestBusyPresetFillsThreeBands(t *testing.T) {
	r, panel := newTestRenderer()
	r.RenderPreset("BUSY")

	if panel.Swaps() == 0 {
		t.Fatal("nothing presented to the panel")
	}

	rows := rowsWithInk(panel)
	red := palette.Day().Color(palette.Red)

	bands := [][2]int{{0, 8}, {11, 19}, {22, 30}}
	for _, band := range bands {
		found := false
		for y := band[0]; y <= band[1] && !found; y++ {
			found = rows[y]
		}
		if !found {
			t.Errorf("no pixels in band rows %d-%d", band[0], band[1])
		}
	}

	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			c := frameAt(panel, x, y)
			if !isBlack(c) && c != red {
				t.Fatalf("pixel (%d,%d)=%v; all lit BUSY pixels should be red", x, y, c)
			}
		}
	}
}

func TestUnknownPresetShowsMessage(t *testing.T) {
	r, panel := newTestRenderer()
	r.RenderPreset("NOT-A-PRESET")

	if panel.Swaps() == 0 {
		t.Fatal("nothing presented to the panel")
	}
	if len(rowsWithInk(panel)) == 0 {
		t.Error("unknown preset left the panel blank")
	}
}

func TestIsPresetIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"busy", "Busy", " BUSY ", "on-call", "free", "quiet", "knock"} {
		if !IsPreset(name) {
			t.Errorf("IsPreset(%q)=false; want true", name)
		}
	}
	if IsPreset("LUNCH") {
		t.Error("IsPreset(LUNCH)=true; want false")
	}
}

func TestClearBlanksPanel(t *testing.T) {
	r, panel := newTestRenderer()
	r.RenderPreset("BUSY")
	r.Clear()

	if len(rowsWithInk(panel)) != 0 {
		t.Error("panel not blank after Clear")
	}
}

func TestRenderTextEmptyClears(t *testing.T) {
	r, panel := newTestRenderer()
	r.RenderPreset("BUSY")
	r.RenderText(nil)

	if len(rowsWithInk(panel)) != 0 {
		t.Error("panel not blank after rendering no lines")
	}
}

func TestProgressBarStages(t *testing.T) {
	r, _ := newTestRenderer()
	day := palette.Day()

	tcs := []struct {
		elapsed time.Duration
		want    color.RGBA
	}{
		{10 * time.Second, day.Color(palette.Cyan)},      // 33%
		{60 * time.Second, day.Color(palette.Yellow)},    // 66%
		{27 * time.Second, day.Color(palette.OrangeRed)}, // 90%
		{29 * time.Second, day.Color(palette.Red)},       // ~97%
	}
	durations := []time.Duration{30 * time.Second, 90 * time.Second, 30 * time.Second, 30 * time.Second}

	for i, tc := range tcs {
		target := display.NewOffscreen(64, 32)
		r.drawProgressBar(target, tc.elapsed, durations[i])
		if got := target.Pixel(0, 31); got != tc.want {
			t.Errorf("elapsed %v of %v: bar color=%v; want %v", tc.elapsed, durations[i], got, tc.want)
		}
	}
}

func TestProgressBarWidthIsProportional(t *testing.T) {
	r, _ := newTestRenderer()

	target := display.NewOffscreen(64, 32)
	r.drawProgressBar(target, 15*time.Second, 30*time.Second)

	lit := 0
	for x := 0; x < 64; x++ {
		if !isBlack(target.Pixel(x, 31)) {
			lit++
		}
	}
	if lit != 32 {
		t.Errorf("half elapsed lit %d pixels; want 32", lit)
	}
}

func TestDailyPanelContentStaysInsideItsPanel(t *testing.T) {
	r, panel := newTestRenderer()

	daily := map[int]weather.DailyEntry{
		0: {TempMax: 105, TempMin: 101, Condition: "Clear"},
	}
	r.RenderForecast(carousel.Daily, weather.Snapshot{}, false, nil, daily, 0, 30*time.Second)

	if panel.Swaps() == 0 {
		t.Fatal("nothing presented to the panel")
	}

	// Both temps map to red, and nothing else in this frame does, so a
	// red pixel in the right half means the left panel overflowed.
	red := palette.Day().Color(palette.Red)
	sawTemp := false
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if frameAt(panel, x, y) != red {
				continue
			}
			sawTemp = true
			if x >= 32 {
				t.Fatalf("temp pixel at (%d,%d) crossed into the right panel", x, y)
			}
		}
	}
	if !sawTemp {
		t.Error("three-digit temps never drawn")
	}
}
