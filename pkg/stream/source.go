package stream

import (
	"errors"
	"io"
)

// DefaultChunkSize is the read size used by NewReaderSource when none is given.
const DefaultChunkSize = 8192

// Source yields the response body as an ordered sequence of chunks. Next
// returns io.EOF once the body is exhausted. A returned chunk is only valid
// until the following call to Next.
type Source interface {
	Next() ([]byte, error)
}

type readerSource struct {
	r   io.Reader
	buf []byte
}

// NewReaderSource adapts r into a Source reading at most size bytes per chunk.
func NewReaderSource(r io.Reader, size int) Source {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &readerSource{r: r, buf: make([]byte, size)}
}

func (s *readerSource) Next() ([]byte, error) {
	for {
		n, err := s.r.Read(s.buf)
		if n > 0 {
			// Deliver the bytes now; a trailing error resurfaces on the
			// next call.
			return s.buf[:n], nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, err
		}
	}
}

// prepend replays first ahead of the rest of src.
type prepend struct {
	first []byte
	src   Source
}

func (p *prepend) Next() ([]byte, error) {
	if p.first != nil {
		b := p.first
		p.first = nil
		return b, nil
	}
	return p.src.Next()
}
