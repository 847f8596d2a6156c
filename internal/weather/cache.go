package weather

import (
	"sync"
	"time"
)

// Cache holds the latest weather data behind a single mutex. Readers get
// copies, never live aliases, so a concurrent refresh can never tear a
// frame mid-render.
type Cache struct {
	mu      sync.Mutex
	current *Snapshot
	hourly  map[int]HourlyEntry
	daily   map[int]DailyEntry
	updated time.Time
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		hourly: map[int]HourlyEntry{},
		daily:  map[int]DailyEntry{},
	}
}

// SetCurrent replaces the current-conditions snapshot.
func (c *Cache) SetCurrent(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s2 := s
	c.current = &s2
	c.updated = time.Now()
}

// SetForecasts replaces both forecast maps wholesale. Stale entries are
// never merged with fresh ones.
func (c *Cache) SetForecasts(hourly map[int]HourlyEntry, daily map[int]DailyEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hourly = copyHourly(hourly)
	c.daily = copyDaily(daily)
	c.updated = time.Now()
}

// Current returns the latest snapshot, or ok=false if nothing has been
// fetched yet.
func (c *Cache) Current() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Snapshot{}, false
	}
	return *c.current, true
}

// Hourly returns a copy of the hourly forecast map.
func (c *Cache) Hourly() map[int]HourlyEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyHourly(c.hourly)
}

// Daily returns a copy of the daily forecast map.
func (c *Cache) Daily() map[int]DailyEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyDaily(c.daily)
}

// Age reports how old the cached data is. Empty caches report a very
// large age.
func (c *Cache) Age() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.updated.IsZero() {
		return time.Duration(1<<62 - 1)
	}
	return time.Since(c.updated)
}

// Stale reports whether the data is older than maxAge.
func (c *Cache) Stale(maxAge time.Duration) bool {
	return c.Age() > maxAge
}

func copyHourly(in map[int]HourlyEntry) map[int]HourlyEntry {
	out := make(map[int]HourlyEntry, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyDaily(in map[int]DailyEntry) map[int]DailyEntry {
	out := make(map[int]DailyEntry, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
