// Package sse provides the incremental line framing shared by the streaming
// response parsers in vidgen, plus interpretation of Server-Sent Events
// "data:" lines.
//
// Upstream generation APIs deliver events as text lines that are split
// arbitrarily across network reads. A LineSplitter carries the trailing
// fragment of each chunk forward until its newline arrives. What counts as a
// line worth handling is decided by an AcceptFunc, so the same splitter frames
// both SSE streams (data: lines only) and NDJSON streams (any non-blank line).
//
// This package intentionally does NOT implement the full SSE event model
// (multi-line events, event types, ids, retry): the video APIs vidgen talks to
// put one complete JSON document on every data: line.
//
// See the SSE specification:
// https://html.spec.whatwg.org/multipage/server-sent-events.html
package sse

import (
	"bytes"
	"strings"
)

const (
	// DataPrefix is the field prefix of an SSE data line.
	DataPrefix = "data:"

	// DoneSentinel is the OpenAI-style end marker sent as a data line value.
	DoneSentinel = "[DONE]"
)

// Event is the parsed value of a single SSE data line.
type Event struct {
	// Data is the line remainder after the "data:" prefix, whitespace trimmed.
	Data string

	// Done reports whether Data is the DoneSentinel. A done event carries
	// no payload.
	Done bool
}

// ParseLine interprets one complete line. ok is false when the line is not a
// data line (comments, "event:" lines, keep-alives).
func ParseLine(line []byte) (ev Event, ok bool) {
	line = bytes.TrimSpace(line)
	if !bytes.HasPrefix(line, []byte(DataPrefix)) {
		return Event{}, false
	}

	data := strings.TrimSpace(string(line[len(DataPrefix):]))
	return Event{Data: data, Done: data == DoneSentinel}, true
}

// AcceptData accepts only SSE data lines.
func AcceptData(line []byte) bool {
	return bytes.HasPrefix(line, []byte(DataPrefix))
}

// AcceptNonBlank accepts every line with non-whitespace content.
func AcceptNonBlank(line []byte) bool {
	return len(line) > 0
}
