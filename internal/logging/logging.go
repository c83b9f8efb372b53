package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name
const Name = "fomoduct"

// Options controls where diagnostics go
type Options struct {
	// Path of the log file; empty means Output is used
	Path string
	// Level name: trace, debug, info, warn, error
	Level string
	// Output is used when Path is empty (stderr if nil)
	Output io.Writer
}

// New creates the root logger. Every process gets a run id so that lines
// from concurrent TUI and CLI invocations can be told apart in a shared
// file. The returned closer releases the log file, if any.
func New(opts Options) (hclog.Logger, io.Closer, error) {
	out := opts.Output
	var closer io.Closer = nopCloser{}

	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f
	}
	if out == nil {
		out = os.Stderr
	}

	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Level:  level,
		Output: out,
	}).With("run", uuid.NewString())

	return logger, closer, nil
}

// Discard returns a logger that drops everything (tests, --help)
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
