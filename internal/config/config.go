package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/andy/fomoduct/internal/domain"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. FOMODUCT_TIMER_WORK_MINUTES
const EnvPrefix = "FOMODUCT"

type Config struct {
	// Timer durations
	Timer TimerConfig `yaml:"timer" mapstructure:"timer"`

	// Preferences database
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// Phase completion notifications
	Notifications NotificationConfig `yaml:"notifications" mapstructure:"notifications"`

	// Diagnostics log
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

type TimerConfig struct {
	WorkMinutes             int `yaml:"work_minutes" mapstructure:"work_minutes"`
	ShortBreakMinutes       int `yaml:"short_break_minutes" mapstructure:"short_break_minutes"`
	LongBreakMinutes        int `yaml:"long_break_minutes" mapstructure:"long_break_minutes"`
	SessionsBeforeLongBreak int `yaml:"sessions_before_long_break" mapstructure:"sessions_before_long_break"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // Path to the encrypted preferences database
}

type NotificationConfig struct {
	Desktop bool `yaml:"desktop" mapstructure:"desktop"` // D-Bus / osascript notifications
	Bell    bool `yaml:"bell" mapstructure:"bell"`       // Terminal bell
}

type LogConfig struct {
	Path  string `yaml:"path" mapstructure:"path"`
	Level string `yaml:"level" mapstructure:"level"` // trace, debug, info, warn, error
}

// Domain converts to the clamped domain config
func (t TimerConfig) Domain() domain.TimerConfig {
	return domain.TimerConfig{
		WorkMinutes:             t.WorkMinutes,
		ShortBreakMinutes:       t.ShortBreakMinutes,
		LongBreakMinutes:        t.LongBreakMinutes,
		SessionsBeforeLongBreak: t.SessionsBeforeLongBreak,
	}.Clamped()
}

// FromDomain builds the file representation of a domain config
func FromDomain(c domain.TimerConfig) TimerConfig {
	return TimerConfig{
		WorkMinutes:             c.WorkMinutes,
		ShortBreakMinutes:       c.ShortBreakMinutes,
		LongBreakMinutes:        c.LongBreakMinutes,
		SessionsBeforeLongBreak: c.SessionsBeforeLongBreak,
	}
}

// configDir returns ~/.config/fomoduct
func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "fomoduct")
	}
	return filepath.Join(homeDir, ".config", "fomoduct")
}

// DefaultConfigPath returns ~/.config/fomoduct/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := configDir()
	return &Config{
		Timer: FromDomain(domain.DefaultTimerConfig()),
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "fomoduct.db"),
		},
		Notifications: NotificationConfig{
			Desktop: true,
			Bell:    true,
		},
		Log: LogConfig{
			Path:  filepath.Join(dir, "fomoduct.log"),
			Level: "info",
		},
	}
}

// timerKeys maps each timer key to the range its value is clamped into
var timerKeys = map[string]domain.Bounds{
	"timer.work_minutes":               domain.WorkMinutesBounds,
	"timer.short_break_minutes":        domain.ShortBreakMinutesBounds,
	"timer.long_break_minutes":         domain.LongBreakMinutesBounds,
	"timer.sessions_before_long_break": domain.SessionsBeforeLongBreakBounds,
}

// newViper builds a viper instance seeded with the defaults. withEnv enables
// FOMODUCT_* overrides.
func newViper(withEnv bool) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	if withEnv {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	d := DefaultConfig()
	v.SetDefault("timer.work_minutes", d.Timer.WorkMinutes)
	v.SetDefault("timer.short_break_minutes", d.Timer.ShortBreakMinutes)
	v.SetDefault("timer.long_break_minutes", d.Timer.LongBreakMinutes)
	v.SetDefault("timer.sessions_before_long_break", d.Timer.SessionsBeforeLongBreak)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("notifications.desktop", d.Notifications.Desktop)
	v.SetDefault("notifications.bell", d.Notifications.Bell)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
	return v
}

// Load loads config from the given path, or returns defaults if file doesn't exist.
// Environment variables override both.
func Load(path string) (*Config, error) {
	return load(path, true)
}

// LoadFile is Load without environment overrides, i.e. what is on disk
func LoadFile(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, withEnv bool) (*Config, error) {
	v := newViper(withEnv)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	// Timer values go through the same lenient parse as typed input, so
	// "abc" or "45m" never fails the whole load. Out-of-range values are
	// clamped rather than rejected.
	for key, bounds := range timerKeys {
		v.Set(key, bounds.Parse(v.GetString(key)))
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Timer = FromDomain(cfg.Timer.Domain())

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SaveTimer replaces the timer section of the file at path, leaving every
// other setting as it is on disk. Environment overrides are not persisted.
func SaveTimer(path string, timer TimerConfig) error {
	cfg, err := LoadFile(path)
	if err != nil {
		return err
	}
	cfg.Timer = timer
	return cfg.Save(path)
}

// EnsureDirectories creates the directories for the database and log file
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(filepath.Dir(c.Database.Path), 0700); err != nil {
		return err
	}
	if c.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.Path), 0755); err != nil {
			return err
		}
	}
	return nil
}
