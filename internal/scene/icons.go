package scene

import (
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"

	"matrixsign/internal/display"
)

// iconSize is the fixed icon footprint in pixels.
const iconSize = 24

// nightDim matches the palette's night divisor so icon luminance tracks
// the dimmed text around it.
const nightDim = 4

// iconNames maps condition codes to icon file base names. Conditions
// without art reuse the closest available icon.
var iconNames = map[string]string{
	"Clear":             "clear",
	"MostlyClear":       "mostly_clear",
	"PartlyCloudy":      "partly_cloudy",
	"MostlyCloudy":      "cloudy",
	"Cloudy":            "cloudy",
	"Rain":              "rain",
	"LightRain":         "rain",
	"HeavyRain":         "rain",
	"Drizzle":           "rain",
	"Snow":              "snow",
	"LightSnow":         "snow",
	"HeavySnow":         "snow",
	"Flurries":          "snow",
	"Thunderstorms":     "tstorm",
	"IcePellets":        "snow",
	"FreezingRain":      "snow",
	"LightFreezingRain": "snow",
	"Fog":               "cloudy",
	"LightFog":          "cloudy",
}

// IconSet loads and caches 24×24 weather icons from a directory. A
// missing asset is not an error: the scene renders without it.
type IconSet struct {
	dir    string
	logger *slog.Logger
	cache  map[string]image.Image // nil entry = known missing
}

// NewIconSet returns an icon set rooted at dir. An empty dir disables
// icons entirely.
func NewIconSet(dir string, logger *slog.Logger) *IconSet {
	return &IconSet{dir: dir, logger: logger, cache: map[string]image.Image{}}
}

// Lookup resolves a condition and day/night flag to a decoded icon.
func (s *IconSet) Lookup(condition string, isNight bool) (image.Image, bool) {
	if s.dir == "" {
		return nil, false
	}

	base, ok := iconNames[condition]
	if !ok {
		base = "clear"
	}
	if isNight {
		base += "_night"
	}

	if img, ok := s.cache[base]; ok {
		return img, img != nil
	}

	img := s.load(base)
	s.cache[base] = img
	return img, img != nil
}

// load tries PNG first, then BMP, returning nil when neither exists.
func (s *IconSet) load(base string) image.Image {
	for _, ext := range []string{".png", ".bmp"} {
		path := filepath.Join(s.dir, base+ext)
		f, err := os.Open(path)
		if err != nil {
			continue
		}

		var img image.Image
		if ext == ".png" {
			img, err = png.Decode(f)
		} else {
			img, err = bmp.Decode(f)
		}
		f.Close()
		if err != nil {
			s.logger.Warn("could not decode weather icon",
				slog.String("path", path),
				slog.Any("reason", err),
			)
			continue
		}
		return img
	}

	s.logger.Debug("weather icon not found", slog.String("icon", base))
	return nil
}

// drawIcon composites a condition icon with its top-left at (x, y),
// brightness-scaled to match the active palette's dimming. Missing icons
// are skipped without error.
func (r *Renderer) drawIcon(target *display.Canvas, x, y int, condition string, isNight bool) {
	img, ok := r.icons.Lookup(condition, isNight)
	if !ok {
		return
	}

	div := uint32(1)
	if r.night != nil && r.night() {
		div = nightDim
	}

	bounds := img.Bounds()
	for iy := 0; iy < iconSize && iy < bounds.Dy(); iy++ {
		for ix := 0; ix < iconSize && ix < bounds.Dx(); ix++ {
			cr, cg, cb, ca := img.At(bounds.Min.X+ix, bounds.Min.Y+iy).RGBA()
			if ca == 0 {
				continue
			}
			target.SetPixel(int16(x+ix), int16(y+iy), color.RGBA{
				R: uint8((cr >> 8) / div),
				G: uint8((cg >> 8) / div),
				B: uint8((cb >> 8) / div),
				A: 255,
			})
		}
	}
}
