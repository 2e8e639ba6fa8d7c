// Package logging provides the shell's diagnostic logger: a colorized
// log/slog handler for expansion warnings and launcher debug tracing. It
// never carries user-facing command output — stdout/stderr
// of children and interactive prompts bypass it entirely.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/fatih/color"
)

// TextHandler is a slog.Handler that colorizes the level prefix and sorts
// attributes for stable, readable diagnostic output.
type TextHandler struct {
	cfg    Config
	groups []string
	attrs  []slog.Attr
	w      io.Writer
}

// Config configures a TextHandler.
type Config struct {
	Color bool
	Level slog.Level
}

// Option configures a Config via functional options.
type Option func(*Config)

// WithColor enables or disables ANSI coloring, overriding the terminal
// autodetection fatih/color performs by default.
func WithColor(c bool) Option {
	return func(cfg *Config) { cfg.Color = c }
}

// WithLevel sets the minimum level the handler passes through.
func WithLevel(level slog.Level) Option {
	return func(cfg *Config) { cfg.Level = level }
}

// New builds a TextHandler writing to w.
func New(w io.Writer, opts ...Option) *TextHandler {
	cfg := Config{Color: !color.NoColor, Level: slog.LevelWarn}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &TextHandler{cfg: cfg, w: w}
}

func (h *TextHandler) clone() *TextHandler {
	nh := *h
	nh.groups = append([]string(nil), h.groups...)
	nh.attrs = append([]slog.Attr(nil), h.attrs...)
	return &nh
}

func (h *TextHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.cfg.Level
}

func (h *TextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := h.clone()
	nh.groups = append(nh.groups, name)
	return nh
}

func (h *TextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := h.clone()
	nh.attrs = append(nh.attrs, attrs...)
	return nh
}

func (h *TextHandler) Handle(_ context.Context, record slog.Record) error {
	color.NoColor = !h.cfg.Color
	color.Output = h.w

	c := color.New()
	defer color.Unset()
	if _, err := c.Fprintf(h.w, "%s ", record.Time.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("logging: write time: %w", err)
	}

	switch record.Level {
	case slog.LevelDebug:
		c = color.New(color.FgCyan)
	case slog.LevelInfo:
		c = color.New(color.FgBlue)
	case slog.LevelWarn:
		c = color.New(color.FgYellow)
	case slog.LevelError:
		c = color.New(color.FgRed)
	default:
		c = color.New()
	}
	if _, err := c.Fprintf(h.w, "%-5s ", record.Level); err != nil {
		return fmt.Errorf("logging: write level: %w", err)
	}

	plain := color.New()
	if _, err := plain.Fprintf(h.w, "%s", record.Message); err != nil {
		return fmt.Errorf("logging: write message: %w", err)
	}

	kv := make(map[string]slog.Value, len(h.attrs)+record.NumAttrs())
	for _, attr := range h.attrs {
		kv[attr.Key] = attr.Value
	}
	record.Attrs(func(attr slog.Attr) bool {
		kv[attr.Key] = attr.Value
		return true
	})

	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := plain.Fprintf(h.w, " %s=%s", k, kv[k]); err != nil {
			return fmt.Errorf("logging: write attr %s: %w", k, err)
		}
	}
	_, err := fmt.Fprintln(h.w)
	return err
}

// NewLogger returns a ready-to-use *slog.Logger for shell diagnostics.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(New(w, WithLevel(level)))
}
