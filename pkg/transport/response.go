package transport

import (
	"errors"
	"io"
	"net/http"

	"github.com/papercomputeco/vidgen/pkg/stream"
)

// StreamResponse is an open response whose body has not been read. It is a
// stream.Source; read failures surface as transport errors.
type StreamResponse struct {
	StatusCode int
	Header     http.Header

	// ContentLength is the declared body length, or -1.
	ContentLength int64

	body io.ReadCloser
	src  stream.Source
}

func newStreamResponse(resp *http.Response, chunkSize int) *StreamResponse {
	return &StreamResponse{
		StatusCode:    resp.StatusCode,
		Header:        resp.Header,
		ContentLength: resp.ContentLength,
		body:          resp.Body,
		src:           stream.NewReaderSource(resp.Body, chunkSize),
	}
}

// ContentType returns the Content-Type header value.
func (r *StreamResponse) ContentType() string {
	return r.Header.Get("Content-Type")
}

// Next returns the next body chunk, or io.EOF at the end of the body.
func (r *StreamResponse) Next() ([]byte, error) {
	b, err := r.src.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, wrap(err)
	}
	return b, nil
}

// Close releases the connection. It is safe to call more than once.
func (r *StreamResponse) Close() error {
	if r.body == nil {
		return nil
	}
	err := r.body.Close()
	r.body = nil
	return err
}
