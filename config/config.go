// Package config resolves runtime settings from the environment and command-line flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"

	"github.com/lixenwraith/topple/parameter"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid value")

// Config is the complete runtime configuration
// Flags take precedence over TOPPLE_* environment variables
type Config struct {
	TickRate        int     `env:"TOPPLE_TICK_RATE" envDefault:"60"`
	TimeScale       float64 `env:"TOPPLE_TIME_SCALE" envDefault:"1"`
	Level           string  `env:"TOPPLE_LEVEL"`
	ProgressDB      string  `env:"TOPPLE_PROGRESS_DB" envDefault:"topple.db"`
	LogLevel        string  `env:"TOPPLE_LOG_LEVEL" envDefault:"info"`
	LogFile         string  `env:"TOPPLE_LOG_FILE" envDefault:"topple.log"`
	Headless        bool    `env:"TOPPLE_HEADLESS"`
	HeadlessSeconds float64 `env:"TOPPLE_HEADLESS_SECONDS" envDefault:"10"`
	// Keymap overrides default bindings, e.g. "k=pick_place,space=none"
	Keymap string `env:"TOPPLE_KEYMAP"`
}

// FromEnv parses the environment into a Config with defaults applied
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Load parses the environment, then args as flags on top, then validates
func Load(name string, args []string) (Config, error) {
	cfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// BindFlags registers a flag per field, defaulting to the current values
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.TickRate, "tick-rate", c.TickRate, "Fixed simulation rate in Hz")
	fs.Float64Var(&c.TimeScale, "time-scale", c.TimeScale, "Simulation speed multiplier")
	fs.StringVar(&c.Level, "level", c.Level, "Level to start on (default: resume or first)")
	fs.StringVar(&c.ProgressDB, "progress-db", c.ProgressDB, "SQLite progress file, empty to disable")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Log output file, empty to discard")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "Run without a terminal for a fixed duration")
	fs.Float64Var(&c.HeadlessSeconds, "headless-seconds", c.HeadlessSeconds, "Simulated seconds in headless mode")
	fs.StringVar(&c.Keymap, "keymap", c.Keymap, "Key overrides as key=action pairs separated by commas")
}

// Validate rejects settings the scheduler or logger cannot run with
func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: tick rate %d must be positive", ErrInvalid, c.TickRate))
	}
	if !(c.TimeScale > 0) {
		errs = append(errs, fmt.Errorf("%w: time scale %v must be positive", ErrInvalid, c.TimeScale))
	}
	if c.Headless && !(c.HeadlessSeconds > 0) {
		errs = append(errs, fmt.Errorf("%w: headless seconds %v must be positive", ErrInvalid, c.HeadlessSeconds))
	}
	if _, err := log.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel))
	}
	return errors.Join(errs...)
}

// Step is the fixed simulation step implied by TickRate
func (c Config) Step() time.Duration {
	if c.TickRate <= 0 {
		return parameter.DefaultStep
	}
	return time.Second / time.Duration(c.TickRate)
}

// LoggerLevel returns the parsed log level; info when unparseable
func (c Config) LoggerLevel() log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// HeadlessSteps is the number of fixed steps a headless run simulates
func (c Config) HeadlessSteps() int {
	return int(c.HeadlessSeconds * float64(c.TickRate))
}
