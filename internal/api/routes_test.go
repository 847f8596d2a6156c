package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"matrixsign/internal/feed"
	"matrixsign/internal/fonts"
	"matrixsign/internal/markup"
	"matrixsign/internal/weather"
)

func newTestApp() (*fiber.App, *feed.Mailbox, *weather.Cache) {
	app := fiber.New()
	mailbox := &feed.Mailbox{}
	cache := weather.NewCache()
	parser := markup.NewParser(fonts.DefaultTable())
	status := func() Status {
		return Status{View: "idle", StartedAt: time.Now()}
	}
	RegisterRoutes(app, mailbox, parser, cache, status)
	return app, mailbox, cache
}

func TestHealth(t *testing.T) {
	app, _, _ := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d; want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestCommandDeliversToMailbox(t *testing.T) {
	app, mailbox, _ := newTestApp()

	body := strings.NewReader(`{"value": "BUSY"}`)
	req := httptest.NewRequest(http.MethodPost, "/command", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d; want %d", resp.StatusCode, http.StatusOK)
	}

	got, ok := mailbox.Take()
	if !ok || got != "BUSY" {
		t.Errorf("mailbox=(%q, %v); want (BUSY, true)", got, ok)
	}
}

func TestCommandRejectsEmptyValue(t *testing.T) {
	app, mailbox, _ := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/command", strings.NewReader(`{"value": ""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d; want %d", resp.StatusCode, http.StatusBadRequest)
	}
	if _, ok := mailbox.Take(); ok {
		t.Error("empty command should not reach the mailbox")
	}
}

func TestValidateReportsIssues(t *testing.T) {
	app, _, _ := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader(`{"value": "{99}<3>x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d; want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		Issues []string `json:"issues"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Issues) != 1 || !strings.Contains(body.Issues[0], "out of range") {
		t.Errorf("issues=%v; want one out-of-range issue", body.Issues)
	}
}

func TestWeatherNotFoundBeforeFirstFetch(t *testing.T) {
	app, _, _ := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d; want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestWeatherReturnsSnapshot(t *testing.T) {
	app, _, cache := newTestApp()
	cache.SetCurrent(weather.Snapshot{Temp: 72, Condition: "Clear"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/weather", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d; want %d", resp.StatusCode, http.StatusOK)
	}

	var snap weather.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Temp != 72 || snap.Condition != "Clear" {
		t.Errorf("snapshot=%+v; want temp 72, clear", snap)
	}
}
