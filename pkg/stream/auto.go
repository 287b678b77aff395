package stream

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/papercomputeco/vidgen/pkg/sse"
)

// AutoParser is used when the content type says nothing useful. It reads one
// chunk ahead and picks a strategy from it:
//
//   - a known container signature: binary
//   - not valid UTF-8: binary
//   - text starting with "data:": SSE
//   - text starting with "{": NDJSON
//   - anything else: binary
//
// The first chunk is always part of whatever the chosen strategy consumes.
// A text strategy that extracts nothing degrades to returning the raw bytes
// of the whole body rather than failing.
type AutoParser struct {
	opts Options
}

func NewAutoParser(opts Options) *AutoParser {
	return &AutoParser{opts: opts.withDefaults()}
}

func (p *AutoParser) Parse(ctx context.Context, src Source) ([]byte, error) {
	log := p.opts.Logger

	first, err := firstChunk(src)
	if err != nil {
		return nil, err
	}
	// Sources may reuse their buffer on the next read.
	first = bytes.Clone(first)

	if name, ok := sniff(first); ok {
		log.Info("auto-detected binary video stream", "container", name)
		return p.binary(ctx, first, src)
	}

	if !isText(first) {
		log.Info("first chunk is not text, treating stream as binary")
		return p.binary(ctx, first, src)
	}

	var lp *LineParser
	text := bytes.TrimSpace(first)
	switch {
	case bytes.HasPrefix(text, []byte(sse.DataPrefix)):
		log.Info("auto-detected SSE stream")
		lp = NewSSEParser(p.opts)
	case bytes.HasPrefix(text, []byte("{")):
		log.Info("auto-detected NDJSON stream")
		lp = NewNDJSONParser(p.opts)
	default:
		log.Warn("could not detect stream format, treating stream as binary")
		return p.binary(ctx, first, src)
	}

	var raw bytes.Buffer
	raw.Write(first)

	out, n, err := lp.consume(ctx, src, first, &raw)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		log.Warn("no event carried video data, returning raw response bytes", "bytes", raw.Len())
		return raw.Bytes(), nil
	}
	return out, nil
}

func (p *AutoParser) binary(ctx context.Context, first []byte, src Source) ([]byte, error) {
	return NewBinaryParser(p.opts).Parse(ctx, &prepend{first: first, src: src})
}

// firstChunk returns the first non-empty chunk of src.
func firstChunk(src Source) ([]byte, error) {
	for {
		chunk, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil, &FormatError{Format: Unknown, Err: ErrEmptyResponse}
		}
		if err != nil {
			return nil, err
		}
		if len(chunk) > 0 {
			return chunk, nil
		}
	}
}
