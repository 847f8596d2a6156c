package feed

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"
)

// Poller is the REST fallback for brokers we cannot hold an MQTT
// session to. It fetches the feed's last value on a schedule and
// delivers unseen ones to the mailbox.
type Poller struct {
	BaseURL string // e.g. https://io.adafruit.com/api/v2/<user>
	Key     string
	Feed    string
	Logger  *slog.Logger

	mailbox *Mailbox
	http    *http.Client
	sched   *gocron.Scheduler
	lastID  string
}

func NewPoller(mailbox *Mailbox, logger *slog.Logger) *Poller {
	return &Poller{
		Logger:  logger,
		mailbox: mailbox,
		http:    &http.Client{Timeout: 10 * time.Second},
		sched:   gocron.NewScheduler(time.UTC),
	}
}

// Start polls once immediately, then on the given interval.
func (p *Poller) Start(interval time.Duration) error {
	p.poll()

	seconds := int(interval.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	if _, err := p.sched.Every(seconds).Seconds().Do(p.poll); err != nil {
		return err
	}
	p.sched.StartAsync()
	return nil
}

func (p *Poller) Stop() {
	p.sched.Stop()
}

func (p *Poller) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	value, id, err := p.fetchLast(ctx)
	if err != nil {
		p.Logger.Error("feed:poll-failed", slog.String("err", err.Error()))
		return
	}
	if id == p.lastID {
		return
	}
	p.lastID = id
	p.Logger.Info("feed:polled command", slog.String("id", id))
	p.mailbox.Put(value)
}

func (p *Poller) fetchLast(ctx context.Context) (value, id string, err error) {
	url := p.BaseURL + "/feeds/" + p.Feed + "/data/last"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("X-AIO-Key", p.Key)

	resp, err := p.http.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", errors.New("feed poll: status " + strconv.Itoa(resp.StatusCode))
	}

	var payload struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", "", err
	}
	return payload.Value, payload.ID, nil
}
