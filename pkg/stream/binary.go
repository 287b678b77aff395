package stream

import (
	"bytes"
	"context"
	"errors"
	"io"
)

// BinaryParser concatenates every chunk of the body without inspecting it.
type BinaryParser struct {
	opts Options
}

func NewBinaryParser(opts Options) *BinaryParser {
	return &BinaryParser{opts: opts.withDefaults()}
}

func (p *BinaryParser) Parse(ctx context.Context, src Source) ([]byte, error) {
	var out bytes.Buffer
	m := newMeter(p.opts)

	n, err := drain(ctx, src, &out, m)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, &FormatError{Format: Binary, Err: ErrEmptyResponse}
	}

	p.opts.Logger.Info("received binary stream", "bytes", out.Len(), "chunks", n)
	return out.Bytes(), nil
}

// drain appends the remaining chunks of src to out in arrival order and
// returns how many non-empty chunks it read.
func drain(ctx context.Context, src Source, out *bytes.Buffer, m *meter) (int, error) {
	chunks := 0
	for {
		if err := ctx.Err(); err != nil {
			return chunks, err
		}

		chunk, err := src.Next()
		if errors.Is(err, io.EOF) {
			return chunks, nil
		}
		if err != nil {
			return chunks, err
		}
		if len(chunk) == 0 {
			continue
		}

		out.Write(chunk)
		m.add(len(chunk))
		chunks++
	}
}
