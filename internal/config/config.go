package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	// Command feed (MQTT with a REST polling fallback).
	MQTTBroker   string `validate:"required,hostname_port"`
	MQTTUsername string
	MQTTKey      string
	FeedName     string `validate:"required"`
	FeedRESTBase string // REST base URL; empty disables the fallback poller
	PollInterval time.Duration

	// Weather.
	OWMAPIKey       string  `validate:"required"`
	Latitude        float64 `validate:"gte=-90,lte=90"`
	Longitude       float64 `validate:"gte=-180,lte=180"`
	RefreshInterval time.Duration

	// Display.
	Width      int `validate:"gt=0"`
	Height     int `validate:"gt=0"`
	Brightness int `validate:"gte=0,lte=100"`
	IconDir    string

	// Night window, local hours. May cross midnight.
	NightStart int `validate:"gte=0,lte=23"`
	NightEnd   int `validate:"gte=0,lte=23"`

	// Carousel timing.
	FlipInterval      time.Duration
	InterruptDuration time.Duration

	// Local HTTP API.
	HTTPPort string

	LogLevel string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &Config{
		MQTTBroker:   getenvDefault("MQTT_BROKER", "io.adafruit.com:1883"),
		MQTTUsername: os.Getenv("MQTT_USERNAME"),
		MQTTKey:      os.Getenv("MQTT_KEY"),
		FeedName:     getenvDefault("FEED_NAME", "signtext"),
		FeedRESTBase: os.Getenv("FEED_REST_BASE"),

		OWMAPIKey: os.Getenv("OWM_API_KEY"),

		Width:      getenvInt("DISPLAY_WIDTH", 64),
		Height:     getenvInt("DISPLAY_HEIGHT", 32),
		Brightness: getenvInt("DISPLAY_BRIGHTNESS", 100),
		IconDir:    getenvDefault("ICON_DIR", "icons"),

		NightStart: getenvInt("NIGHT_START", 22),
		NightEnd:   getenvInt("NIGHT_END", 7),

		HTTPPort: getenvDefault("HTTP_PORT", "8080"),
		LogLevel: getenvDefault("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.Latitude, err = getenvFloat("LATITUDE"); err != nil {
		return nil, err
	}
	if cfg.Longitude, err = getenvFloat("LONGITUDE"); err != nil {
		return nil, err
	}

	if cfg.RefreshInterval, err = getenvDuration("WEATHER_REFRESH_INTERVAL", "10m"); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = getenvDuration("FEED_POLL_INTERVAL", "15s"); err != nil {
		return nil, err
	}
	if cfg.FlipInterval, err = getenvDuration("FLIP_INTERVAL", "30s"); err != nil {
		return nil, err
	}
	if cfg.InterruptDuration, err = getenvDuration("INTERRUPT_DURATION", "30s"); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
