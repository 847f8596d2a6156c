// Package weather holds the typed weather model, the OpenWeatherMap
// client that fills it, and the concurrency-safe cache the renderer
// reads from. All values are stored in the display's units (°F, mph,
// inHg); conversion and defaulting happen once at the ingestion boundary.
package weather

import (
	"time"

	"matrixsign/internal/palette"
)

// Trend describes barometric pressure movement.
type Trend string

// Pressure trends reported by the provider.
const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendSteady  Trend = "steady"
)

// Snapshot is the current conditions record. Replaced wholesale on each
// successful fetch; never partially merged.
type Snapshot struct {
	Temp          int     // °F
	FeelsLike     int     // °F
	WindSpeed     int     // mph
	WindDir       string  // 8-point compass
	Humidity      int     // percent
	Pressure      float64 // inHg
	PressureTrend Trend
	Condition     string // icon-compatible condition name
	IsNight       bool
	PrecipChance  int // percent
	FetchedAt     time.Time
}

// TempColor returns the palette index for the snapshot temperature.
func (s Snapshot) TempColor() palette.Index { return TempColor(s.Temp) }

// FeelsLikeColor returns the palette index for the feels-like band.
func (s Snapshot) FeelsLikeColor() palette.Index { return TempColor(s.FeelsLike) }

// HourlyEntry is a forecast keyed by hours ahead (6, 12).
type HourlyEntry struct {
	Temp         int // °F
	Condition    string
	Time         string // HH:MM of the forecast point
	PrecipChance int    // percent
}

// DailyEntry is a forecast keyed by days ahead (0, 1, 2).
type DailyEntry struct {
	TempMax      int // °F
	TempMin      int // °F
	Condition    string
	PrecipChance int // percent
}

// TempColor maps a Fahrenheit temperature to a palette band.
//
// The 0.603 breakpoint is deliberate: it keeps 73°F in the green band.
// Do not "clean up" these numbers.
func TempColor(t int) palette.Index {
	if t <= 32 {
		return palette.Blue
	}
	if t >= 100 {
		return palette.Red
	}
	progress := float64(t-32) / 68.0
	switch {
	case progress < 0.4:
		return palette.Cyan
	case progress <= 0.603:
		return palette.Green
	case progress < 0.8:
		return palette.Yellow
	default:
		return palette.OrangeRed
	}
}

var compass = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// WindDirection converts degrees to an 8-point compass label.
func WindDirection(deg float64) string {
	idx := int(deg/45.0+0.5) % 8
	if idx < 0 {
		idx += 8
	}
	return compass[idx]
}

// MapCondition converts an OpenWeatherMap condition id to the
// icon-compatible condition name used by the scene renderer and icon
// assets. See https://openweathermap.org/weather-conditions.
func MapCondition(id int) string {
	switch {
	case id >= 200 && id < 300:
		return "Thunderstorms"
	case id >= 300 && id < 400:
		return "Drizzle"
	case id >= 500 && id < 600:
		switch {
		case id == 500:
			return "LightRain"
		case id >= 501 && id <= 504:
			return "Rain"
		case id >= 520:
			return "HeavyRain"
		default:
			return "Rain"
		}
	case id >= 600 && id < 700:
		switch id {
		case 600, 615:
			return "LightSnow"
		case 601, 616, 621:
			return "Snow"
		case 602, 622:
			return "HeavySnow"
		case 611:
			return "IcePellets"
		case 612:
			return "LightFreezingRain"
		case 613:
			return "FreezingRain"
		case 620:
			return "Flurries"
		default:
			return "Snow"
		}
	case id >= 700 && id < 800:
		switch id {
		case 701, 711, 721:
			return "LightFog"
		case 781:
			return "Thunderstorms" // tornado, closest icon we have
		default:
			return "Fog"
		}
	case id == 800:
		return "Clear"
	case id == 801:
		return "MostlyClear"
	case id == 802:
		return "PartlyCloudy"
	case id == 803:
		return "MostlyCloudy"
	case id == 804:
		return "Cloudy"
	default:
		return "Clear"
	}
}
