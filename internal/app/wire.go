package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"matrixsign/internal/api"
	"matrixsign/internal/carousel"
	"matrixsign/internal/config"
	"matrixsign/internal/daynight"
	"matrixsign/internal/display"
	"matrixsign/internal/feed"
	"matrixsign/internal/fonts"
	"matrixsign/internal/markup"
	"matrixsign/internal/palette"
	"matrixsign/internal/rtc"
	"matrixsign/internal/scene"
	"matrixsign/internal/weather"
)

// Runtime bundles the daemon's moving parts so both the hardware entry
// point and the simulator share one construction path.
type Runtime struct {
	Controller *Controller
	HTTP       *fiber.App

	cfg        *config.Config
	logger     *slog.Logger
	refresher  *weather.Refresher
	subscriber *feed.Subscriber
	poller     *feed.Poller
	clock      *rtc.Clock
}

// Wire builds the full daemon around the given panel.
func Wire(cfg *config.Config, panel display.Panel, logger *slog.Logger) *Runtime {
	canvas := display.New(panel)
	canvas.SetBrightness(cfg.Brightness)

	night := daynight.New(cfg.Latitude, cfg.Longitude, cfg.NightStart, cfg.NightEnd)
	pal := func() palette.Palette { return palette.Active(night.IsNight()) }

	table := fonts.DefaultTable()
	renderer := scene.New(canvas, table, cfg.IconDir, pal, night.IsNight, logger)
	parser := markup.NewParser(table)

	cache := weather.NewCache()
	owm := weather.NewClient(
		&http.Client{Timeout: 15 * time.Second},
		cfg.OWMAPIKey, cfg.Latitude, cfg.Longitude, logger,
	)
	refresher := weather.NewRefresher(owm, cache, cfg.RefreshInterval, logger)

	mailbox := &feed.Mailbox{}
	subscriber := feed.NewSubscriber(mailbox, logger)
	subscriber.BrokerAddr = cfg.MQTTBroker
	subscriber.Username = cfg.MQTTUsername
	subscriber.Password = cfg.MQTTKey
	subscriber.ClientID = "matrixsign"
	subscriber.Topic = cfg.MQTTUsername + "/feeds/" + cfg.FeedName

	var poller *feed.Poller
	if cfg.FeedRESTBase != "" {
		poller = feed.NewPoller(mailbox, logger)
		poller.BaseURL = cfg.FeedRESTBase
		poller.Key = cfg.MQTTKey
		poller.Feed = cfg.FeedName
	}

	machine := carousel.New(cfg.FlipInterval, cfg.InterruptDuration)
	controller := NewController(canvas, renderer, parser, cache, mailbox, machine, night, logger)

	httpApp := fiber.New(fiber.Config{DisableStartupMessage: true})
	api.RegisterRoutes(httpApp, mailbox, parser, cache, controller.Status)

	return &Runtime{
		Controller: controller,
		HTTP:       httpApp,
		cfg:        cfg,
		logger:     logger,
		refresher:  refresher,
		subscriber: subscriber,
		poller:     poller,
		clock:      rtc.New(logger),
	}
}

// Start launches the background services and the controller loop. It
// returns once ctx is cancelled and the display has been blanked.
func (r *Runtime) Start(ctx context.Context) {
	if r.clock.Detect(ctx) {
		if err := r.clock.LoadSystemFromRTC(ctx); err == nil {
			if err := r.clock.StartSync(); err != nil {
				r.logger.Error("rtc:sync-schedule-failed", slog.String("err", err.Error()))
			}
		}
	} else {
		r.logger.Info("rtc:not detected, using system clock only")
	}

	if err := r.refresher.Start(); err != nil {
		r.logger.Error("weather:refresher-start-failed", slog.String("err", err.Error()))
	}

	go r.subscriber.Run(ctx)
	if r.poller != nil {
		if err := r.poller.Start(r.cfg.PollInterval); err != nil {
			r.logger.Error("feed:poller-start-failed", slog.String("err", err.Error()))
		}
	}

	go func() {
		if err := r.HTTP.Listen(":" + r.cfg.HTTPPort); err != nil {
			r.logger.Error("http:listen-failed", slog.String("err", err.Error()))
		}
	}()

	r.Controller.Run(ctx)
	r.shutdown()
}

func (r *Runtime) shutdown() {
	r.refresher.Stop()
	if r.poller != nil {
		r.poller.Stop()
	}
	r.clock.Stop()
	if err := r.HTTP.Shutdown(); err != nil {
		r.logger.Error("http:shutdown-failed", slog.String("err", err.Error()))
	}
}
