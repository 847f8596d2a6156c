package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const (
	currentURL  = "https://api.openweathermap.org/data/2.5/weather"
	forecastURL = "https://api.openweathermap.org/data/2.5/forecast"
)

const hPaToInHg = 0.02953

// Client fetches current conditions and the 5-day/3-hour forecast from
// OpenWeatherMap. Calls are rate limited and wrapped in a circuit breaker
// so a flapping API cannot stall the refresh job.
type Client struct {
	apiKey  string
	lat     float64
	lon     float64
	http    *http.Client
	limiter *rate.Limiter
	circuit *gobreaker.CircuitBreaker
	logger  *slog.Logger
	now     func() time.Time
}

// NewClient returns a client for the given coordinates.
func NewClient(httpClient *http.Client, apiKey string, lat, lon float64, logger *slog.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 3,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey: apiKey,
		lat:    lat,
		lon:    lon,
		http:   httpClient,
		// Free-tier OWM allows 60 calls/minute; two calls per refresh
		// leaves plenty of headroom at 0.5 rps.
		limiter: rate.NewLimiter(rate.Limit(0.5), 2),
		circuit: cb,
		logger:  logger,
		now:     time.Now,
	}
}

// FetchCurrent retrieves and converts the current conditions.
func (c *Client) FetchCurrent(ctx context.Context) (Snapshot, error) {
	if c.apiKey == "" {
		return Snapshot{}, fmt.Errorf("openweathermap api key is not configured")
	}

	var payload struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			Main string `json:"main"`
			ID   int    `json:"id"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
			Deg   float64 `json:"deg"`
		} `json:"wind"`
		Rain struct {
			OneH float64 `json:"1h"`
		} `json:"rain"`
		Snow struct {
			OneH float64 `json:"1h"`
		} `json:"snow"`
		Sys struct {
			Sunrise int64 `json:"sunrise"`
			Sunset  int64 `json:"sunset"`
		} `json:"sys"`
	}

	if err := c.getJSON(ctx, currentURL, &payload); err != nil {
		return Snapshot{}, err
	}

	conditionID := 800
	if len(payload.Weather) > 0 {
		conditionID = payload.Weather[0].ID
	}

	now := c.now().Unix()
	isNight := now < payload.Sys.Sunrise || now > payload.Sys.Sunset

	precip := 0
	if payload.Rain.OneH > 0 || payload.Snow.OneH > 0 {
		// OWM reports measured precipitation, not a probability.
		precip = 100
	}

	snap := Snapshot{
		Temp:          round(payload.Main.Temp),
		FeelsLike:     round(payload.Main.FeelsLike),
		WindSpeed:     round(payload.Wind.Speed), // already mph with units=imperial
		WindDir:       WindDirection(payload.Wind.Deg),
		Humidity:      round(payload.Main.Humidity),
		Pressure:      math.Round(payload.Main.Pressure*hPaToInHg*100) / 100,
		PressureTrend: TrendSteady, // OWM does not provide a trend
		Condition:     MapCondition(conditionID),
		IsNight:       isNight,
		PrecipChance:  precip,
		FetchedAt:     c.now(),
	}

	c.logger.Info("weather updated",
		slog.Int("temp", snap.Temp),
		slog.String("condition", snap.Condition),
		slog.Bool("night", snap.IsNight),
	)
	return snap, nil
}

// forecastPoint is one 3-hour slice of the OWM forecast list.
type forecastPoint struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		ID int `json:"id"`
	} `json:"weather"`
	Pop float64 `json:"pop"`
}

// FetchForecast retrieves the forecast and reduces it to the two maps the
// carousel renders: hourly entries nearest +6h/+12h and daily summaries
// for today through day 2.
func (c *Client) FetchForecast(ctx context.Context) (map[int]HourlyEntry, map[int]DailyEntry, error) {
	if c.apiKey == "" {
		return nil, nil, fmt.Errorf("openweathermap api key is not configured")
	}

	var payload struct {
		List []forecastPoint `json:"list"`
	}
	if err := c.getJSON(ctx, forecastURL, &payload); err != nil {
		return nil, nil, err
	}
	if len(payload.List) == 0 {
		return nil, nil, fmt.Errorf("openweathermap forecast: empty list")
	}

	return c.reduceHourly(payload.List), c.reduceDaily(payload.List), nil
}

func (c *Client) reduceHourly(list []forecastPoint) map[int]HourlyEntry {
	now := c.now()
	out := make(map[int]HourlyEntry, 2)

	for _, hours := range []int{6, 12} {
		target := now.Add(time.Duration(hours) * time.Hour).Unix()
		closest := list[0]
		for _, p := range list[1:] {
			if abs64(p.Dt-target) < abs64(closest.Dt-target) {
				closest = p
			}
		}

		id := 800
		if len(closest.Weather) > 0 {
			id = closest.Weather[0].ID
		}
		out[hours] = HourlyEntry{
			Temp:         round(closest.Main.Temp),
			Condition:    MapCondition(id),
			Time:         time.Unix(closest.Dt, 0).Format("15:04"),
			PrecipChance: round(closest.Pop * 100),
		}
	}
	return out
}

func (c *Client) reduceDaily(list []forecastPoint) map[int]DailyEntry {
	// Days are local calendar dates, not 24h windows: an evening point
	// still belongs to "today" even when it lands past midnight UTC.
	now := c.now()
	today := midnight(now)

	type bucket struct {
		temps      []float64
		conditions []string
		precip     []float64
	}
	days := map[int]*bucket{}

	for _, p := range list {
		day := midnight(time.Unix(p.Dt, 0).In(now.Location()))
		offset := int(math.Round(day.Sub(today).Hours() / 24))
		if offset < 0 || offset > 2 {
			continue
		}
		b := days[offset]
		if b == nil {
			b = &bucket{}
			days[offset] = b
		}

		id := 800
		if len(p.Weather) > 0 {
			id = p.Weather[0].ID
		}
		b.temps = append(b.temps, p.Main.Temp)
		b.conditions = append(b.conditions, MapCondition(id))
		b.precip = append(b.precip, p.Pop*100)
	}

	out := make(map[int]DailyEntry, len(days))
	for day, b := range days {
		if len(b.temps) == 0 {
			continue
		}
		max, min := b.temps[0], b.temps[0]
		for _, t := range b.temps[1:] {
			if t > max {
				max = t
			}
			if t < min {
				min = t
			}
		}
		maxPrecip := 0.0
		for _, p := range b.precip {
			if p > maxPrecip {
				maxPrecip = p
			}
		}
		out[day] = DailyEntry{
			TempMax:      round(max),
			TempMin:      round(min),
			Condition:    mostCommon(b.conditions),
			PrecipChance: round(maxPrecip),
		}
	}
	return out
}

// getJSON performs one rate-limited, breaker-guarded GET and decodes the
// body into v.
func (c *Client) getJSON(ctx context.Context, base string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait canceled: %w", err)
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", c.lat))
	values.Set("lon", fmt.Sprintf("%f", c.lon))
	values.Set("appid", c.apiKey)
	values.Set("units", "imperial")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+values.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.circuit.Execute(func() (any, error) {
		r, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if r.StatusCode != http.StatusOK {
			r.Body.Close()
			return nil, fmt.Errorf("openweathermap: unexpected status %d", r.StatusCode)
		}
		return r, nil
	})
	if err != nil {
		return err
	}

	r := resp.(*http.Response)
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func mostCommon(items []string) string {
	if len(items) == 0 {
		return "Clear"
	}
	counts := map[string]int{}
	best := items[0]
	for _, it := range items {
		counts[it]++
		if counts[it] > counts[best] {
			best = it
		}
	}
	return best
}

func round(f float64) int {
	return int(math.Round(f))
}

// midnight is the start of t's calendar day in t's location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
