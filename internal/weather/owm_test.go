package weather

import (
	"testing"
	"time"
)

func fixedNowClient(t time.Time) *Client {
	return &Client{now: func() time.Time { return t }}
}

func point(dt time.Time, temp float64, conditionID int, pop float64) forecastPoint {
	var p forecastPoint
	p.Dt = dt.Unix()
	p.Main.Temp = temp
	p.Weather = []struct {
		ID int `json:"id"`
	}{{ID: conditionID}}
	p.Pop = pop
	return p
}

func TestReduceHourlyPicksNearestPoints(t *testing.T) {
	now := time.Date(2024, 3, 14, 6, 0, 0, 0, time.UTC)
	c := fixedNowClient(now)

	list := []forecastPoint{
		point(now.Add(3*time.Hour), 50, 800, 0),
		point(now.Add(7*time.Hour), 60, 500, 0.3),
		point(now.Add(11*time.Hour), 65, 804, 0.1),
	}

	got := c.reduceHourly(list)

	h6, ok := got[6]
	if !ok {
		t.Fatal("no +6h entry")
	}
	if h6.Temp != 60 || h6.Condition != "LightRain" || h6.PrecipChance != 30 {
		t.Errorf("+6h=%+v; want temp 60, light rain, 30%%", h6)
	}

	h12, ok := got[12]
	if !ok {
		t.Fatal("no +12h entry")
	}
	if h12.Temp != 65 || h12.Condition != "Cloudy" {
		t.Errorf("+12h=%+v; want temp 65, cloudy", h12)
	}
}

func TestReduceDailyBucketsAndSummarizes(t *testing.T) {
	now := time.Date(2024, 3, 14, 6, 0, 0, 0, time.UTC)
	c := fixedNowClient(now)
	day := now.Truncate(24 * time.Hour)

	list := []forecastPoint{
		point(day.Add(2*time.Hour), 50, 800, 0),
		point(day.Add(8*time.Hour), 60, 501, 0.4),
		point(day.Add(14*time.Hour), 55, 502, 0.2),
		point(day.Add(27*time.Hour), 40, 601, 0.9),
		point(day.Add(96*time.Hour), 99, 800, 1.0), // beyond day 2, ignored
	}

	got := c.reduceDaily(list)

	today, ok := got[0]
	if !ok {
		t.Fatal("no day-0 entry")
	}
	if today.TempMax != 60 || today.TempMin != 50 {
		t.Errorf("day 0 hi/lo=%d/%d; want 60/50", today.TempMax, today.TempMin)
	}
	if today.Condition != "Rain" {
		t.Errorf("day 0 condition=%q; want the most common, Rain", today.Condition)
	}
	if today.PrecipChance != 40 {
		t.Errorf("day 0 precip=%d; want max of the day, 40", today.PrecipChance)
	}

	tomorrow, ok := got[1]
	if !ok {
		t.Fatal("no day-1 entry")
	}
	if tomorrow.TempMax != 40 || tomorrow.TempMin != 40 || tomorrow.Condition != "Snow" || tomorrow.PrecipChance != 90 {
		t.Errorf("day 1=%+v; want 40/40 snow 90%%", tomorrow)
	}

	if _, ok := got[4]; ok {
		t.Error("points beyond day 2 should be dropped")
	}
}

func TestReduceDailyBucketsByLocalCalendarDay(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, est)
	c := fixedNowClient(now)

	list := []forecastPoint{
		// This evening crosses midnight UTC but is still today locally.
		point(time.Date(2024, 3, 14, 20, 0, 0, 0, est), 58, 800, 0),
		point(time.Date(2024, 3, 14, 12, 0, 0, 0, est), 50, 800, 0),
		point(time.Date(2024, 3, 15, 9, 0, 0, 0, est), 41, 600, 0.5),
	}

	got := c.reduceDaily(list)

	today, ok := got[0]
	if !ok {
		t.Fatal("no day-0 entry")
	}
	if today.TempMax != 58 || today.TempMin != 50 {
		t.Errorf("day 0 hi/lo=%d/%d; want 58/50 with the evening point included", today.TempMax, today.TempMin)
	}

	tomorrow, ok := got[1]
	if !ok {
		t.Fatal("no day-1 entry")
	}
	if tomorrow.TempMax != 41 {
		t.Errorf("day 1 hi=%d; want 41", tomorrow.TempMax)
	}
}

func TestMostCommon(t *testing.T) {
	if got := mostCommon(nil); got != "Clear" {
		t.Errorf("mostCommon(nil)=%q; want Clear", got)
	}
	if got := mostCommon([]string{"Rain", "Clear", "Rain"}); got != "Rain" {
		t.Errorf("got %q; want Rain", got)
	}
}
