package stream

import (
	"context"
	"log/slog"

	"github.com/papercomputeco/vidgen/pkg/logger"
)

// Parser consumes a Source to exhaustion and returns the assembled payload.
// The payload is owned by the caller.
type Parser interface {
	Parse(ctx context.Context, src Source) ([]byte, error)
}

// Extractor finds media bytes in one decoded JSON event, returning nil when
// the event carries none. *extract.Extractor implements it.
type Extractor interface {
	Extract(ctx context.Context, event map[string]any) []byte
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, event map[string]any) []byte

func (f ExtractorFunc) Extract(ctx context.Context, event map[string]any) []byte {
	return f(ctx, event)
}

// ProgressFunc observes the cumulative payload size. total is the declared
// response length, or -1 when the server did not declare one.
type ProgressFunc func(received, total int64)

// Options configures the parsers.
type Options struct {
	// Extractor is used by the event-based strategies. Without one, no event
	// yields media.
	Extractor Extractor

	Logger *slog.Logger

	// Progress, when set, is called after every chunk that grew the payload.
	Progress ProgressFunc

	// Total is the declared response length, or -1.
	Total int64
}

func (o Options) withDefaults() Options {
	o.Logger = logger.OrNop(o.Logger)
	if o.Extractor == nil {
		o.Extractor = ExtractorFunc(func(context.Context, map[string]any) []byte { return nil })
	}
	return o
}

// New returns the Parser for a classification.
func New(c Classification, opts Options) Parser {
	switch c {
	case Binary:
		return NewBinaryParser(opts)
	case ServerSentEvents:
		return NewSSEParser(opts)
	case NDJSON:
		return NewNDJSONParser(opts)
	default:
		return NewAutoParser(opts)
	}
}

type meter struct {
	received int64
	total    int64
	fn       ProgressFunc
}

func newMeter(opts Options) *meter {
	return &meter{total: opts.Total, fn: opts.Progress}
}

func (m *meter) add(n int) {
	if n == 0 {
		return
	}
	m.received += int64(n)
	if m.fn != nil {
		m.fn(m.received, m.total)
	}
}
