package weather

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher periodically pulls current conditions and forecasts into the
// cache. Fetching happens entirely off the render path; the renderer only
// ever reads cache copies.
type Refresher struct {
	client   *Client
	cache    *Cache
	sched    *gocron.Scheduler
	logger   *slog.Logger
	interval time.Duration
}

// NewRefresher wires a client to a cache on the given interval.
func NewRefresher(client *Client, cache *Cache, interval time.Duration, logger *slog.Logger) *Refresher {
	return &Refresher{
		client:   client,
		cache:    cache,
		sched:    gocron.NewScheduler(time.UTC),
		logger:   logger,
		interval: interval,
	}
}

// Start performs an immediate fetch and schedules periodic refreshes.
func (r *Refresher) Start() error {
	r.refresh()

	seconds := int(r.interval.Seconds())
	if seconds <= 0 {
		seconds = 300
	}
	if _, err := r.sched.Every(seconds).Seconds().Do(r.refresh); err != nil {
		return err
	}
	r.sched.StartAsync()
	return nil
}

// Stop cancels future refreshes. In-flight fetches finish on their own
// context timeout.
func (r *Refresher) Stop() {
	r.sched.Stop()
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := r.client.FetchCurrent(ctx)
	if err != nil {
		r.logger.Error("current weather fetch failed", slog.Any("reason", err))
	} else {
		r.cache.SetCurrent(snap)
	}

	hourly, daily, err := r.client.FetchForecast(ctx)
	if err != nil {
		r.logger.Error("forecast fetch failed", slog.Any("reason", err))
		return
	}
	r.cache.SetForecasts(hourly, daily)
}
