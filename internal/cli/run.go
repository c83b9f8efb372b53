package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/andy/fomoduct/internal/domain"
	"github.com/andy/fomoduct/internal/service"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runAutoContinue bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a headless session in the current terminal",
	Long: `Run the timer without the full-screen UI. The countdown is printed once a
minute and at every phase change.

Keys: s start, p pause, space start/pause, r reset, q quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		appInstance.StartBackground(ctx)

		opts := sessionOptions{
			AutoContinue: runAutoContinue,
			Interval:     time.Second,
			Logger:       appInstance.Logger,
		}

		// Raw mode delivers single key presses without waiting for enter
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			state, err := term.MakeRaw(fd)
			if err != nil {
				return fmt.Errorf("failed to enable raw mode: %w", err)
			}
			defer term.Restore(fd, state)
			opts.Raw = true
		}

		return runSession(ctx, appInstance.Timer, os.Stdin, cmd.OutOrStdout(), opts)
	},
}

type sessionOptions struct {
	AutoContinue bool
	Interval     time.Duration
	// Raw terminals need explicit carriage returns
	Raw    bool
	Logger hclog.Logger
}

// runSession drives timer from single-byte commands on in and reports on out
// until q is read or ctx is done
func runSession(ctx context.Context, timer service.SessionTimer, in io.Reader, out io.Writer, opts sessionOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := timer.Subscribe(256)
	defer timer.Unsubscribe(events)

	go service.NewTicker(timer, opts.Interval, opts.Logger).Run(ctx)

	keys := make(chan byte)
	go readKeys(ctx, in, keys)

	printf := func(format string, args ...any) {
		line := fmt.Sprintf(format, args...)
		if opts.Raw {
			line = strings.ReplaceAll(line, "\n", "\r\n")
		}
		io.WriteString(out, line)
	}

	st := timer.Snapshot()
	printf("Fomoduct · %s %s (paused)\n", st.Phase.Label(), st.Clock())
	printf("%s\n", describeConfig(st.Config))
	printf("Keys: s start, p pause, r reset, q quit\n")

	lastRunning := st.Running
	for {
		select {
		case <-ctx.Done():
			return nil

		case k, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			switch k {
			case 's', 'S':
				timer.Start()
			case 'p', 'P':
				timer.Pause()
			case ' ':
				timer.Toggle()
			case 'r', 'R':
				timer.Reset()
				st := timer.Snapshot()
				printf("↺ Reset: %s %s\n", st.Phase.Label(), st.Clock())
			case 'q', 'Q', 3, 4: // ctrl+c and ctrl+d arrive as bytes in raw mode
				printf("Bye.\n")
				return nil
			}

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			st := ev.State

			if ev.Type == service.EventPhaseCompleted {
				lastRunning = false
				printf("✓ %s\n", ev.Completed.Message())
				if opts.AutoContinue {
					timer.Start()
				} else {
					printf("Press s to start the %s (%s).\n", strings.ToLower(st.Phase.Label()), st.Clock())
				}
				continue
			}

			switch {
			case st.Running && !lastRunning:
				printf("▶ %s %s\n", st.Phase.Label(), st.Clock())
			case !st.Running && lastRunning:
				printf("⏸ Paused at %s\n", st.Clock())
			case st.Running && st.RemainingSeconds%60 == 0:
				printf("  %s %s remaining\n", st.Phase.Label(), st.Clock())
			}
			lastRunning = st.Running
		}
	}
}

// readKeys forwards bytes from in until it fails or ctx is done
func readKeys(ctx context.Context, in io.Reader, keys chan<- byte) {
	defer close(keys)
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n == 1 {
			select {
			case keys <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// describeConfig prints the durations in one line
func describeConfig(c domain.TimerConfig) string {
	return fmt.Sprintf("work %dm, short break %dm, long break %dm every %d sessions",
		c.WorkMinutes, c.ShortBreakMinutes, c.LongBreakMinutes, c.SessionsBeforeLongBreak)
}

func init() {
	runCmd.Flags().BoolVar(&runAutoContinue, "auto-continue", false, "start the next phase automatically")
}
