package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"slices"

	"github.com/papercomputeco/vidgen/pkg/sse"
	"github.com/papercomputeco/vidgen/pkg/utils"
)

// LineParser handles the event-based framings. Each accepted line holds one
// JSON event which is handed to the Extractor; extracted bytes are appended
// in line order.
type LineParser struct {
	format Classification
	accept sse.AcceptFunc
	// payload returns the JSON text of an accepted line, or false when the
	// line carries no event.
	payload func(line []byte) ([]byte, bool)
	opts    Options
}

// NewSSEParser returns a parser for "data:" lines. The "[DONE]" sentinel is
// skipped.
func NewSSEParser(opts Options) *LineParser {
	return &LineParser{
		format: ServerSentEvents,
		accept: sse.AcceptData,
		payload: func(line []byte) ([]byte, bool) {
			ev, ok := sse.ParseLine(line)
			if !ok || ev.Done {
				return nil, false
			}
			return []byte(ev.Data), true
		},
		opts: opts.withDefaults(),
	}
}

// NewNDJSONParser returns a parser treating every non-blank line as an event.
func NewNDJSONParser(opts Options) *LineParser {
	return &LineParser{
		format: NDJSON,
		accept: sse.AcceptNonBlank,
		payload: func(line []byte) ([]byte, bool) {
			return line, true
		},
		opts: opts.withDefaults(),
	}
}

func (p *LineParser) Parse(ctx context.Context, src Source) ([]byte, error) {
	out, n, err := p.consume(ctx, src, nil, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, &FormatError{Format: p.format, Err: ErrNoPayload}
	}
	return out, nil
}

// consume runs the line loop over seed followed by the rest of src. It
// returns the concatenated extracted bytes and the number of events that
// contributed. When raw is non-nil every chunk read from src is also copied
// into it.
func (p *LineParser) consume(ctx context.Context, src Source, seed []byte, raw *bytes.Buffer) ([]byte, int, error) {
	var (
		out       bytes.Buffer
		extracted int
		lineNo    int
		m         = newMeter(p.opts)
		log       = p.opts.Logger.With("format", p.format.String())
	)

	splitter := sse.NewLineSplitter(p.accept, func(line []byte) error {
		lineNo++

		data, ok := p.payload(line)
		if !ok {
			return nil
		}

		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			log.Warn("skipping malformed event", "line", lineNo, "error", err, "data", utils.Truncate(string(data), 200))
			return nil
		}

		event, ok := v.(map[string]any)
		if !ok {
			log.Debug("skipping non-object event", "line", lineNo)
			return nil
		}

		b := p.opts.Extractor.Extract(ctx, event)
		if len(b) == 0 {
			log.Debug("no video data in event", "line", lineNo, "keys", slices.Sorted(maps.Keys(event)))
			return nil
		}

		log.Debug("extracted video data", "line", lineNo, "bytes", len(b))
		out.Write(b)
		m.add(len(b))
		extracted++
		return nil
	})

	if len(seed) > 0 {
		if _, err := splitter.Write(seed); err != nil {
			return nil, 0, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		chunk, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		if raw != nil {
			raw.Write(chunk)
		}
		if _, err := splitter.Write(chunk); err != nil {
			return nil, 0, err
		}
	}

	if err := splitter.Flush(); err != nil {
		return nil, 0, err
	}

	log.Info("finished reading event stream", "events", extracted, "bytes", out.Len())
	return out.Bytes(), extracted, nil
}
