package display

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrWindowClosed is returned by Run after Close is called.
var ErrWindowClosed = errors.New("window closed")

// WindowPanel shows frames in a desktop window for development without
// matrix hardware. Swap is safe from any goroutine; the window redraws
// the latest frame on its own cadence.
type WindowPanel struct {
	w, h  int
	scale int

	mu         sync.Mutex
	frame      []color.RGBA
	brightness int
	closed     bool
}

func NewWindowPanel(w, h, scale int) *WindowPanel {
	if scale < 1 {
		scale = 1
	}
	return &WindowPanel{
		w:          w,
		h:          h,
		scale:      scale,
		frame:      make([]color.RGBA, w*h),
		brightness: 100,
	}
}

func (p *WindowPanel) Size() (w, h int) { return p.w, p.h }

func (p *WindowPanel) Swap(pix []color.RGBA) error {
	p.mu.Lock()
	copy(p.frame, pix)
	p.mu.Unlock()
	return nil
}

func (p *WindowPanel) SetBrightness(percent int) {
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

func (p *WindowPanel) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// Run opens the window and blocks until it closes or Close is called.
// Must run on the main goroutine; ebiten owns the render loop.
func (p *WindowPanel) Run(title string) error {
	g := &panelGame{p: p}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(p.w*p.scale, p.h*p.scale)
	ebiten.SetTPS(30)
	return ebiten.RunGame(g)
}

type panelGame struct {
	p     *WindowPanel
	img   *image.RGBA
	fbImg *ebiten.Image
}

func (g *panelGame) Update() error {
	g.p.mu.Lock()
	closed := g.p.closed
	g.p.mu.Unlock()
	if closed {
		return ErrWindowClosed
	}
	return nil
}

func (g *panelGame) Draw(screen *ebiten.Image) {
	p := g.p
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, p.w, p.h))
		g.fbImg = ebiten.NewImage(p.w, p.h)
	}

	p.mu.Lock()
	dim := uint32(p.brightness)
	dst := g.img.Pix
	for i, c := range p.frame {
		j := i * 4
		dst[j+0] = uint8(uint32(c.R) * dim / 100)
		dst[j+1] = uint8(uint32(c.G) * dim / 100)
		dst[j+2] = uint8(uint32(c.B) * dim / 100)
		dst[j+3] = 0xFF
	}
	p.mu.Unlock()

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *panelGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.p.w, g.p.h
}
