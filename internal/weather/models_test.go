package weather

import (
	"testing"

	"matrixsign/internal/palette"
)

func TestTempColorBands(t *testing.T) {
	tcs := []struct {
		temp int
		want palette.Index
	}{
		{-10, palette.Blue},
		{31, palette.Blue},
		{32, palette.Blue},
		{33, palette.Cyan},
		{50, palette.Cyan},
		{60, palette.Green},
		{73, palette.Green}, // the band boundary is tuned to keep 73 green
		{74, palette.Yellow},
		{80, palette.Yellow},
		{87, palette.OrangeRed},
		{99, palette.OrangeRed},
		{100, palette.Red},
		{110, palette.Red},
	}
	for _, tc := range tcs {
		if got := TempColor(tc.temp); got != tc.want {
			t.Errorf("TempColor(%d)=%d; want %d", tc.temp, got, tc.want)
		}
	}
}

func TestWindDirection(t *testing.T) {
	tcs := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{22, "N"},
		{23, "NE"},
		{45, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{350, "N"},
		{360, "N"},
	}
	for _, tc := range tcs {
		if got := WindDirection(tc.deg); got != tc.want {
			t.Errorf("WindDirection(%v)=%q; want %q", tc.deg, got, tc.want)
		}
	}
}

func TestMapCondition(t *testing.T) {
	tcs := []struct {
		id   int
		want string
	}{
		{211, "Thunderstorms"},
		{301, "Drizzle"},
		{500, "LightRain"},
		{502, "Rain"},
		{521, "HeavyRain"},
		{600, "LightSnow"},
		{601, "Snow"},
		{602, "HeavySnow"},
		{611, "IcePellets"},
		{613, "FreezingRain"},
		{620, "Flurries"},
		{701, "LightFog"},
		{741, "Fog"},
		{800, "Clear"},
		{801, "MostlyClear"},
		{802, "PartlyCloudy"},
		{803, "MostlyCloudy"},
		{804, "Cloudy"},
		{9999, "Clear"}, // unknown ids fall back to clear
	}
	for _, tc := range tcs {
		if got := MapCondition(tc.id); got != tc.want {
			t.Errorf("MapCondition(%d)=%q; want %q", tc.id, got, tc.want)
		}
	}
}
