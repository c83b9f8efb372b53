// Package notify delivers phase completion notices outside the terminal UI.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/andy/fomoduct/internal/domain"
	"github.com/andy/fomoduct/internal/service"
	"github.com/hashicorp/go-hclog"
)

// AppName is shown as the notification source
const AppName = "Fomoduct"

// ErrUnsupported is returned when the platform has no desktop notifications
var ErrUnsupported = errors.New("desktop notifications not supported on this platform")

// Notifier delivers a single phase completion notice. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, ev domain.PhaseCompleted) error
}

// Options selects which notifiers New builds
type Options struct {
	Desktop bool
	Bell    bool
	// BellOutput receives the bell character, usually os.Stdout
	BellOutput io.Writer
}

// New builds the notifier set described by opts. A platform without
// desktop support falls back to the bell.
func New(opts Options, logger hclog.Logger) Notifier {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var notifiers Multi
	bell := opts.Bell
	if opts.Desktop {
		d, err := NewDesktop()
		if err != nil {
			logger.Debug("desktop notifications unavailable, using bell", "error", err)
			bell = bell || opts.BellOutput != nil
		} else {
			notifiers = append(notifiers, d)
		}
	}
	if bell && opts.BellOutput != nil {
		notifiers = append(notifiers, NewBell(opts.BellOutput))
	}
	return notifiers
}

// Multi fans a notice out to several notifiers and joins their errors
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev domain.PhaseCompleted) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Bell writes the terminal bell character
type Bell struct {
	mu  sync.Mutex
	out io.Writer
}

func NewBell(out io.Writer) *Bell {
	return &Bell{out: out}
}

func (b *Bell) Notify(ctx context.Context, ev domain.PhaseCompleted) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.out, "\a"); err != nil {
		return fmt.Errorf("failed to ring bell: %w", err)
	}
	return nil
}

// Func adapts a function to Notifier
type Func func(ctx context.Context, ev domain.PhaseCompleted) error

func (f Func) Notify(ctx context.Context, ev domain.PhaseCompleted) error {
	return f(ctx, ev)
}

// Dispatcher forwards PhaseCompleted events from a SessionTimer to a notifier
type Dispatcher struct {
	timer    service.SessionTimer
	notifier Notifier
	logger   hclog.Logger
}

func NewDispatcher(timer service.SessionTimer, notifier Notifier, logger hclog.Logger) *Dispatcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Dispatcher{
		timer:    timer,
		notifier: notifier,
		logger:   logger.Named("notify"),
	}
}

// Run delivers notices until ctx is done or the timer is closed. Delivery
// errors are logged and otherwise ignored.
func (d *Dispatcher) Run(ctx context.Context) {
	events := d.timer.Subscribe(64)
	defer d.timer.Unsubscribe(events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Type != service.EventPhaseCompleted || ev.Completed == nil {
				continue
			}
			if err := d.notifier.Notify(ctx, *ev.Completed); err != nil {
				d.logger.Warn("notification failed", "error", err)
				continue
			}
			d.logger.Debug("notified", "from", ev.Completed.From, "to", ev.Completed.To)
		}
	}
}
