//go:build darwin

package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/andy/fomoduct/internal/domain"
)

type desktop struct {
	osascript string
}

// NewDesktop locates osascript
func NewDesktop() (Notifier, error) {
	path, err := exec.LookPath("osascript")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return &desktop{osascript: path}, nil
}

func (d *desktop) Notify(ctx context.Context, ev domain.PhaseCompleted) error {
	script := fmt.Sprintf("display notification %s with title %s subtitle %s",
		strconv.Quote(ev.Message()), strconv.Quote(AppName), strconv.Quote(ev.Title()))

	out, err := exec.CommandContext(ctx, d.osascript, "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript failed: %w: %s", err, out)
	}
	return nil
}
