package service

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Ticker is the repeating tick source for headless use. It arms a
// time.Ticker only while the session timer is running and disarms it as
// soon as the timer stops, so no tick can fire against a paused timer.
type Ticker struct {
	timer    SessionTimer
	interval time.Duration
	logger   hclog.Logger
}

// NewTicker creates a tick source; interval defaults to one second
func NewTicker(timer SessionTimer, interval time.Duration, logger hclog.Logger) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Ticker{
		timer:    timer,
		interval: interval,
		logger:   logger.Named("ticker"),
	}
}

// Run drives the timer until ctx is done or the timer is closed
func (tk *Ticker) Run(ctx context.Context) error {
	events := tk.timer.Subscribe(16)
	defer tk.timer.Unsubscribe(events)

	var ticker *time.Ticker
	var tickC <-chan time.Time

	disarm := func() {
		if ticker == nil {
			return
		}
		ticker.Stop()
		ticker = nil
		tickC = nil
		tk.logger.Debug("disarmed")
	}
	defer disarm()

	sync := func() {
		running := tk.timer.IsRunning()
		switch {
		case running && ticker == nil:
			ticker = time.NewTicker(tk.interval)
			tickC = ticker.C
			tk.logger.Debug("armed", "interval", tk.interval)
		case !running:
			disarm()
		}
	}
	sync()

	for {
		select {
		case <-ctx.Done():
			return nil

		case _, ok := <-events:
			if !ok {
				return nil
			}
			sync()

		case <-tickC:
			tk.timer.Tick()
			sync()
		}
	}
}
