// Package stream classifies a generation API response by its declared content
// type and recovers the media payload from it, whichever of the supported
// framings the server chose: raw binary, Server-Sent Events, newline-delimited
// JSON, or an undeclared shape that has to be sniffed.
package stream

import "strings"

// Classification selects the parsing strategy for a response.
type Classification int

const (
	// Unknown means the content type gave no usable signal. The payload
	// shape is detected from the first chunk.
	Unknown Classification = iota

	// Binary is a raw media byte stream.
	Binary

	// ServerSentEvents is a text/event-stream of "data:" lines.
	ServerSentEvents

	// NDJSON is newline-delimited JSON, one event per line.
	NDJSON
)

func (c Classification) String() string {
	switch c {
	case Binary:
		return "binary"
	case ServerSentEvents:
		return "sse"
	case NDJSON:
		return "ndjson"
	default:
		return "unknown"
	}
}

// Classify maps a Content-Type header value to a Classification. Matching is
// case-insensitive and the rules are checked in order, so
// "application/octet-stream+json" is Binary.
func Classify(contentType string) Classification {
	ct := strings.ToLower(strings.TrimSpace(contentType))

	switch {
	case strings.Contains(ct, "octet-stream"), strings.HasPrefix(ct, "video/"):
		return Binary
	case strings.Contains(ct, "text/event-stream"):
		return ServerSentEvents
	case strings.Contains(ct, "json"):
		return NDJSON
	default:
		return Unknown
	}
}
