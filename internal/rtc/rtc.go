// Package rtc keeps a battery-backed hardware clock in step with the
// system clock so the sign shows sane times across reboots without
// network. It shells out to hwclock, which owns the kernel interface.
package rtc

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/go-co-op/gocron"
)

const execTimeout = 10 * time.Second

type Clock struct {
	Logger *slog.Logger

	sched *gocron.Scheduler
	// run is swappable for tests.
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func New(logger *slog.Logger) *Clock {
	return &Clock{
		Logger: logger,
		sched:  gocron.NewScheduler(time.UTC),
		run:    runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// Detect reports whether an RTC module answers on the I2C bus. The
// DS3231 sits at address 0x68; i2cdetect prints "UU" when a kernel
// driver has claimed it and the raw address when unclaimed.
func (c *Clock) Detect(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, execTimeout)
	defer cancel()

	out, err := c.run(ctx, "i2cdetect", "-y", "1")
	if err != nil {
		c.Logger.Warn("rtc:detect-failed", slog.String("err", err.Error()))
		return false
	}
	s := string(out)
	return strings.Contains(s, "UU") || strings.Contains(s, "68")
}

// ReadTime returns the hardware clock's current time.
func (c *Clock) ReadTime(ctx context.Context) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, execTimeout)
	defer cancel()

	out, err := c.run(ctx, "hwclock", "-r")
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse("2006-01-02 15:04:05.999999-07:00", strings.TrimSpace(string(out)))
}

// LoadSystemFromRTC sets the system clock from the hardware clock.
// Called at boot before NTP has had a chance to run.
func (c *Clock) LoadSystemFromRTC(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, execTimeout)
	defer cancel()

	out, err := c.run(ctx, "hwclock", "-s")
	if err != nil {
		c.Logger.Error("rtc:load-failed",
			slog.String("err", err.Error()),
			slog.String("output", strings.TrimSpace(string(out))),
		)
		return err
	}
	c.Logger.Info("rtc:system clock loaded from RTC")
	return nil
}

// writeRTCFromSystem stores the (NTP-disciplined) system clock back to
// the hardware clock.
func (c *Clock) writeRTCFromSystem() {
	ctx, cancel := context.WithTimeout(context.Background(), execTimeout)
	defer cancel()

	out, err := c.run(ctx, "hwclock", "-w")
	if err != nil {
		c.Logger.Error("rtc:write-failed",
			slog.String("err", err.Error()),
			slog.String("output", strings.TrimSpace(string(out))),
		)
		return
	}
	c.Logger.Debug("rtc:written from system clock")
}

// StartSync writes the system time to the RTC hourly.
func (c *Clock) StartSync() error {
	if _, err := c.sched.Every(1).Hour().Do(c.writeRTCFromSystem); err != nil {
		return err
	}
	c.sched.StartAsync()
	return nil
}

func (c *Clock) Stop() {
	c.sched.Stop()
}
