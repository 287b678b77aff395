package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
)

// Tee returns a logger that sends every record to base and appends it as
// JSON to the file at path, creating the file if needed. opts configure the
// file side (level, source); its format is always JSON. The returned func
// closes the file.
func Tee(base *slog.Logger, path string, opts ...Option) (*slog.Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	file := newConfig(append(opts, WithWriter(f), WithFormat(JSON))).handler()
	return slog.New(fanout{OrNop(base).Handler(), file}), f.Close, nil
}

// fanout hands each record to every handler that enables its level. A
// handler that fails does not keep the record from the others.
type fanout []slog.Handler

func (h fanout) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(h, func(x slog.Handler) bool {
		return x.Enabled(ctx, level)
	})
}

func (h fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, x := range h {
		if x.Enabled(ctx, r.Level) {
			errs = append(errs, x.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (h fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(x slog.Handler) slog.Handler { return x.WithAttrs(attrs) })
}

func (h fanout) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.each(func(x slog.Handler) slog.Handler { return x.WithGroup(name) })
}

func (h fanout) each(fn func(slog.Handler) slog.Handler) fanout {
	out := make(fanout, len(h))
	for i, x := range h {
		out[i] = fn(x)
	}
	return out
}
