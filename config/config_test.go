package config

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("topple", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TickRate != 60 || cfg.TimeScale != 1 || cfg.ProgressDB != "topple.db" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.Step() != time.Second/60 {
		t.Fatalf("step = %v", cfg.Step())
	}
	if cfg.LoggerLevel() != log.InfoLevel {
		t.Fatalf("level = %v", cfg.LoggerLevel())
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("TOPPLE_TICK_RATE", "120")
	t.Setenv("TOPPLE_LEVEL", "ramp")
	t.Setenv("TOPPLE_LOG_LEVEL", "debug")
	t.Setenv("TOPPLE_HEADLESS", "true")

	cfg, err := Load("topple", []string{"-level", "first-push", "-headless-seconds", "2"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TickRate != 120 {
		t.Errorf("tick rate = %d, want env value 120", cfg.TickRate)
	}
	if cfg.Level != "first-push" {
		t.Errorf("level = %q, want flag value", cfg.Level)
	}
	if !cfg.Headless || cfg.HeadlessSteps() != 240 {
		t.Errorf("headless = %v steps = %d", cfg.Headless, cfg.HeadlessSteps())
	}
	if cfg.LoggerLevel() != log.DebugLevel {
		t.Errorf("level = %v", cfg.LoggerLevel())
	}
}

func TestValidate(t *testing.T) {
	base := Config{TickRate: 60, TimeScale: 1, LogLevel: "info", HeadlessSeconds: 1}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }, true},
		{"negative scale", func(c *Config) { c.TimeScale = -1 }, true},
		{"zero scale", func(c *Config) { c.TimeScale = 0 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"headless without duration", func(c *Config) { c.Headless = true; c.HeadlessSeconds = 0 }, true},
		{"duration ignored when interactive", func(c *Config) { c.HeadlessSeconds = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Fatalf("error %v does not wrap ErrInvalid", err)
			}
		})
	}
}

func TestEnvParseError(t *testing.T) {
	t.Setenv("TOPPLE_TICK_RATE", "fast")
	if _, err := Load("topple", nil); err == nil {
		t.Fatal("non-numeric tick rate accepted")
	}
}

func TestBadFlag(t *testing.T) {
	if _, err := Load("topple", []string{"-tick-rate", "0"}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}
