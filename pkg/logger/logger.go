// Package logger builds the *slog.Logger values that vidgen passes explicitly
// through its pipeline. There is no package-level logger.
package logger

import (
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Format selects how records are encoded.
type Format int

const (
	// Text is slog's key=value encoding.
	Text Format = iota
	// JSON is one JSON object per line.
	JSON
	// Pretty is the colorized charmbracelet/log output meant for terminals.
	Pretty
)

// Option configures a logger created with New or Tee.
type Option func(*config)

type config struct {
	level  slog.Level
	format Format
	source bool
	w      io.Writer
}

// WithDebug lowers the level to Debug.
func WithDebug(debug bool) Option {
	return func(c *config) {
		if debug {
			c.level = slog.LevelDebug
		}
	}
}

// WithFormat selects the record encoding.
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithWriter replaces os.Stderr as the destination. A nil w is ignored.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.w = w
		}
	}
}

// WithSource adds the caller's file:line to each record.
func WithSource(source bool) Option {
	return func(c *config) {
		c.source = source
	}
}

// New creates a logger. Without options it writes Text records at Info level
// to os.Stderr, leaving stdout to command output.
func New(opts ...Option) *slog.Logger {
	return slog.New(newConfig(opts).handler())
}

func newConfig(opts []Option) config {
	c := config{level: slog.LevelInfo, w: os.Stderr}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) handler() slog.Handler {
	switch c.format {
	case JSON:
		return slog.NewJSONHandler(c.w, &slog.HandlerOptions{Level: c.level, AddSource: c.source})
	case Pretty:
		// charmbracelet/log levels share slog's numeric values.
		return charmlog.NewWithOptions(c.w, charmlog.Options{
			Level:           charmlog.Level(c.level),
			ReportTimestamp: true,
			ReportCaller:    c.source,
		})
	default:
		return slog.NewTextHandler(c.w, &slog.HandlerOptions{Level: c.level, AddSource: c.source})
	}
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrNop returns l, or a Nop logger when l is nil.
func OrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Nop()
	}
	return l
}
