// Package logging sets up the single slog stream this CLI writes to:
// stdout plus a rotated log file. Trimmed from the teacher's
// pkg/logging/logger.go, which fans the same Init call out to separate
// server/request/event streams for its HTTP server and overlay UI — neither
// of which this repo has.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajturner/acetate/pkg/config"
)

// Init installs a slog.TextHandler writing to both stdout and the
// configured log file as the default logger. The returned func closes the
// log file; callers should defer it.
func Init(cfg config.LogConfig) (func(), error) {
	if cfg.Path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
		return func() {}, nil
	}

	rotate(cfg.Path)

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: create log directory: %w", err)
	}

	file, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}

	level := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level, AddSource: level == slog.LevelDebug}
	EnableTrace = level == slog.LevelDebug

	handler := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(file, opts),
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: maxLevel(level, slog.LevelInfo)}),
	}}
	slog.SetDefault(slog.New(handler))

	return func() { file.Close() }, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func maxLevel(a, b slog.Level) slog.Level {
	if a > b {
		return a
	}
	return b
}

// rotate renames an existing log file to .old so each run starts fresh.
func rotate(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	old := path + ".old"
	_ = os.Remove(old)
	_ = os.Rename(path, old)
}

// multiHandler fans a record out to every wrapped handler, following the
// teacher's pkg/logging/logger.go multiHandler.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: next}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: next}
}
