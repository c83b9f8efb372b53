package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/andy/fomoduct/internal/config"
	"github.com/andy/fomoduct/internal/crypto"
	"github.com/andy/fomoduct/internal/db"
	"github.com/andy/fomoduct/internal/logging"
	"github.com/andy/fomoduct/internal/notify"
	"github.com/andy/fomoduct/internal/repository"
	"github.com/andy/fomoduct/internal/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config     *config.Config
	ConfigPath string
	Logger     hclog.Logger
	DB         *db.DB

	// Repositories
	PreferenceRepo repository.PreferenceRepository

	// Services
	Timer       service.SessionTimer
	Preferences service.PreferenceService
	Notifier    notify.Notifier

	logCloser io.Closer
}

// Options tweak construction for a particular entry point
type Options struct {
	// ConfigPath overrides the default config location
	ConfigPath string
	// BellOutput receives the terminal bell (defaults to stdout)
	BellOutput io.Writer
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Getting (or generating) the encryption key from the keyring
// 3. Opening database
// 4. Running migrations
// 5. Creating repositories
// 6. Creating services
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultConfigPath()
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg, opts)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	// An empty log path sends diagnostics to stderr
	logger, logCloser, err := logging.New(logging.Options{Path: cfg.Log.Path, Level: cfg.Log.Level})
	if err != nil {
		return nil, err
	}

	key, err := databaseKey(cfg, logger)
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	// Open the database with encryption
	database, err := db.Open(cfg.Database.Path, key)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations to ensure schema is up to date
	if err := database.RunMigrations(); err != nil {
		database.Close()
		logCloser.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	bellOut := opts.BellOutput
	if bellOut == nil {
		bellOut = os.Stdout
	}

	prefRepo := repository.NewPreferenceRepo(database)
	timer := service.NewSessionTimer(cfg.Timer.Domain(), logger)
	prefs := service.NewPreferenceService(prefRepo, lipgloss.HasDarkBackground)
	notifier := notify.New(notify.Options{
		Desktop:    cfg.Notifications.Desktop,
		Bell:       cfg.Notifications.Bell,
		BellOutput: bellOut,
	}, logger)

	logger.Debug("app initialised", "config", opts.ConfigPath, "database", cfg.Database.Path)

	return &App{
		Config:         cfg,
		ConfigPath:     opts.ConfigPath,
		Logger:         logger,
		DB:             database,
		PreferenceRepo: prefRepo,
		Timer:          timer,
		Preferences:    prefs,
		Notifier:       notifier,
		logCloser:      logCloser,
	}, nil
}

// KeyFile is where the database key lives when no system keyring is usable
func KeyFile(cfg *config.Config) string {
	return filepath.Join(filepath.Dir(cfg.Database.Path), "db.key")
}

// databaseKey fetches the key, creating one on first run. Preferences are
// not secret enough to warrant a password prompt, so the key is generated.
func databaseKey(cfg *config.Config, logger hclog.Logger) (string, error) {
	keyring := crypto.NewKeyring(KeyFile(cfg))

	// With no database yet there is nothing an unreadable old key could open
	_, statErr := os.Stat(cfg.Database.Path)
	fresh := errors.Is(statErr, fs.ErrNotExist)

	key, created, err := crypto.GetOrCreateKey(keyring, fresh)
	if err != nil {
		return "", fmt.Errorf("failed to obtain database key: %w", err)
	}
	if created {
		logger.Info("generated database encryption key")
		if term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Set up encrypted preferences storage.")
		}
	}
	return key, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.Timer != nil {
		a.Timer.Close()
	}
	var err error
	if a.DB != nil {
		err = a.DB.Close()
	}
	if a.logCloser != nil {
		a.logCloser.Close()
	}
	return err
}

// StartBackground runs the notification dispatcher until ctx is done
func (a *App) StartBackground(ctx context.Context) {
	go notify.NewDispatcher(a.Timer, a.Notifier, a.Logger).Run(ctx)
}

// SaveConfig writes the timer's current durations back to the config file
func (a *App) SaveConfig() error {
	return a.ConfigSaver()()
}

// ConfigSaver records the timer's durations in a.Config and returns the
// file write as a function that touches no App state, so it can run off
// the caller's goroutine. Only the timer section is written; every other
// setting stays as it is on disk, so environment overrides never leak into
// the file.
func (a *App) ConfigSaver() func() error {
	timer := config.FromDomain(a.Timer.Config())
	a.Config.Timer = timer
	path, logger := a.ConfigPath, a.Logger

	return func() error {
		if err := config.SaveTimer(path, timer); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		logger.Info("config saved", "path", path)
		return nil
	}
}
