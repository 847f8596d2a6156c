// Package api exposes a small local HTTP surface for health checks,
// status inspection, and injecting commands without going through the
// broker.
package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"matrixsign/internal/feed"
	"matrixsign/internal/markup"
	"matrixsign/internal/weather"
)

// Status is a snapshot of controller state for GET /status. The
// controller fills it via the StatusFunc hook so the API package never
// reaches into the loop's internals.
type Status struct {
	View        string    `json:"view"`
	IsNight     bool      `json:"isNight"`
	LastCommand string    `json:"lastCommand"`
	WeatherAge  string    `json:"weatherAge"`
	StartedAt   time.Time `json:"startedAt"`
}

type StatusFunc func() Status

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, mailbox *feed.Mailbox, parser *markup.Parser, cache *weather.Cache, status StatusFunc) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(status())
	})

	app.Get("/weather", func(c *fiber.Ctx) error {
		snap, ok := cache.Current()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no weather data yet")
		}
		return c.JSON(snap)
	})

	app.Post("/command", func(c *fiber.Ctx) error {
		var req commandRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Value == "" {
			return fiber.NewError(fiber.StatusBadRequest, "value is required")
		}
		mailbox.Put(req.Value)
		return c.JSON(fiber.Map{"accepted": true})
	})

	app.Post("/validate", func(c *fiber.Ctx) error {
		var req commandRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"issues": parser.Validate(req.Value)})
	})
}

type commandRequest struct {
	Value string `json:"value"`
}
