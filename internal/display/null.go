package display

import (
	"image/color"
	"log/slog"
	"sync"
)

// NullPanel is the simulation-mode panel used when no matrix hardware is
// attached. It keeps the last swapped frame so tests and the status API
// can inspect what would have been shown.
type NullPanel struct {
	w, h   int
	logger *slog.Logger

	mu         sync.Mutex
	last       []color.RGBA
	swaps      int
	brightness int
}

// NewNullPanel returns a w×h panel with no output device behind it.
func NewNullPanel(w, h int, logger *slog.Logger) *NullPanel {
	return &NullPanel{w: w, h: h, logger: logger, brightness: 100}
}

// Size implements Panel.
func (p *NullPanel) Size() (int, int) { return p.w, p.h }

// Swap implements Panel by retaining a copy of the frame.
func (p *NullPanel) Swap(pix []color.RGBA) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		p.last = make([]color.RGBA, len(pix))
	}
	copy(p.last, pix)
	p.swaps++
	return nil
}

// SetBrightness implements Panel.
func (p *NullPanel) SetBrightness(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	p.mu.Lock()
	p.brightness = percent
	p.mu.Unlock()
}

// Close implements Panel.
func (p *NullPanel) Close() error {
	if p.logger != nil {
		p.logger.Debug("null panel closed")
	}
	return nil
}

// Frame returns a copy of the most recently swapped frame, or nil if no
// frame has been shown yet.
func (p *NullPanel) Frame() []color.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return nil
	}
	out := make([]color.RGBA, len(p.last))
	copy(out, p.last)
	return out
}

// Swaps reports how many frames have been presented.
func (p *NullPanel) Swaps() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.swaps
}

// Brightness returns the last requested brightness.
func (p *NullPanel) Brightness() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.brightness
}
