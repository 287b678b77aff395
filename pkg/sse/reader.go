package sse

import "bytes"

// AcceptFunc decides whether a complete, whitespace-trimmed line is handed to
// the LineFunc.
type AcceptFunc func(line []byte) bool

// LineFunc handles one accepted line. The slice is only valid for the
// duration of the call.
type LineFunc func(line []byte) error

// LineSplitter turns an ordered sequence of arbitrarily sized chunks into
// complete lines.
//
// ┌────────────────┐
// │ chunk (Write)  │
// └────────────────┘
// │
// ▼
// ┌────────────────┐   ┌─────────────────────────┐
// │ buf + chunk    │──▶│ split on '\n'           │
// └────────────────┘   └─────────────────────────┘
// ▲                           │             │
// │ last segment              │ complete    │
// └───────────────────────────┘ lines       ▼
// ┌────────────────┐
// │ accept/handle  │
// └────────────────┘
//
// The segment after the last newline is retained until more data arrives or
// Flush is called. The retained segment is never searched twice, so a single
// line spread over many chunks costs time linear in its length.
type LineSplitter struct {
	buf []byte
	// scanned is the prefix of buf already known to hold no newline.
	scanned int
	accept  AcceptFunc
	handle  LineFunc
}

// NewLineSplitter returns a LineSplitter that passes every trimmed complete
// line for which accept returns true to handle.
func NewLineSplitter(accept AcceptFunc, handle LineFunc) *LineSplitter {
	return &LineSplitter{
		accept: accept,
		handle: handle,
	}
}

// Write appends chunk to the pending buffer and handles every line it
// completes. It implements io.Writer so a splitter can sit behind an
// io.TeeReader or io.Copy.
func (s *LineSplitter) Write(chunk []byte) (int, error) {
	s.buf = append(s.buf, chunk...)

	start, from := 0, s.scanned
	for {
		i := bytes.IndexByte(s.buf[from:], '\n')
		if i < 0 {
			break
		}

		end := from + i
		if err := s.line(s.buf[start:end]); err != nil {
			s.compact(end + 1)
			return len(chunk), err
		}
		start, from = end+1, end+1
	}

	s.compact(start)
	s.scanned = len(s.buf)
	return len(chunk), nil
}

// Flush handles the retained fragment as a final line. Streams frequently end
// without a trailing newline.
func (s *LineSplitter) Flush() error {
	if len(s.buf) == 0 {
		return nil
	}

	rest := s.buf
	s.buf = nil
	s.scanned = 0
	return s.line(rest)
}

// Pending returns the number of buffered bytes not yet terminated by a newline.
func (s *LineSplitter) Pending() int {
	return len(s.buf)
}

func (s *LineSplitter) line(raw []byte) error {
	line := bytes.TrimSpace(raw)
	if !s.accept(line) {
		return nil
	}
	return s.handle(line)
}

// compact drops the first n consumed bytes, keeping the incomplete tail.
func (s *LineSplitter) compact(n int) {
	if n == 0 {
		return
	}
	s.buf = append(s.buf[:0], s.buf[n:]...)
	s.scanned = 0
}
