package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/topple/config"
)

// setupLogger opens the configured log file; an empty path discards output
// The returned closer is never nil
func setupLogger(cfg config.Config) (*log.Logger, io.Closer, error) {
	opts := log.Options{
		Prefix:          "topple",
		ReportTimestamp: true,
		Level:           cfg.LoggerLevel(),
	}
	if cfg.LogFile == "" {
		return log.NewWithOptions(io.Discard, opts), io.NopCloser(nil), nil
	}

	if dir := filepath.Dir(cfg.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.NewWithOptions(f, opts), f, nil
}
