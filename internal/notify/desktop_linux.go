//go:build linux

package notify

import (
	"context"
	"fmt"

	"github.com/andy/fomoduct/internal/domain"
	"github.com/godbus/dbus/v5"
)

const (
	dbusDest   = "org.freedesktop.Notifications"
	dbusPath   = "/org/freedesktop/Notifications"
	dbusMethod = "org.freedesktop.Notifications.Notify"

	expireMillis int32 = 8000
)

type desktop struct {
	conn *dbus.Conn
}

// NewDesktop connects to the session bus
func NewDesktop() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return &desktop{conn: conn}, nil
}

func (d *desktop) Notify(ctx context.Context, ev domain.PhaseCompleted) error {
	obj := d.conn.Object(dbusDest, dbusPath)
	call := obj.CallWithContext(ctx, dbusMethod, 0,
		AppName,
		uint32(0),
		"",
		ev.Title(),
		ev.Message(),
		[]string{},
		map[string]dbus.Variant{},
		expireMillis,
	)
	if call.Err != nil {
		return fmt.Errorf("failed to send desktop notification: %w", call.Err)
	}
	return nil
}
