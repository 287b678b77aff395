// Package extract locates media bytes inside one decoded JSON event from a
// generation stream. Media is either inline (base64 or hex text) or a URL
// pointing at a second resource, which is fetched.
package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/vidgen/pkg/logger"
)

// Fetcher retrieves the body of a URL discovered inside an event.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Extractor searches events for media using a fixed, ordered field search.
type Extractor struct {
	fields  Fields
	fetcher Fetcher
	logger  *slog.Logger
}

// New creates an Extractor. A nil fetcher disables URL dereferencing.
func New(fields Fields, fetcher Fetcher, log *slog.Logger) *Extractor {
	return &Extractor{
		fields:  fields.WithDefaults(),
		fetcher: fetcher,
		logger:  logger.OrNop(log),
	}
}

// Extract returns the media bytes found in event, or nil.
//
// Entries of the choices array are searched first (their delta, then message
// objects), then the top-level object. Within each object URL fields are
// tried before data fields. A field that yields nothing, including a URL
// whose fetch fails, does not end the search.
func (e *Extractor) Extract(ctx context.Context, event map[string]any) []byte {
	if e.fields.Choices != "" {
		if choices, ok := event[e.fields.Choices].([]any); ok {
			for i, c := range choices {
				choice, ok := c.(map[string]any)
				if !ok {
					continue
				}

				for _, name := range e.fields.Containers {
					obj, ok := choice[name].(map[string]any)
					if !ok {
						continue
					}

					where := fmt.Sprintf("%s[%d].%s", e.fields.Choices, i, name)
					if b := e.search(ctx, obj, where); b != nil {
						return b
					}
				}
			}
		}
	}

	return e.search(ctx, event, "")
}

func (e *Extractor) search(ctx context.Context, obj map[string]any, where string) []byte {
	for _, field := range e.fields.URL {
		v, ok := obj[field]
		if !ok {
			continue
		}

		url, ok := ExtractURL(v)
		if !ok {
			continue
		}

		e.logger.Info("found video URL", "field", qualify(where, field))
		e.logger.Debug("video URL", "url", url)

		if b := e.fetch(ctx, url); b != nil {
			return b
		}
	}

	for _, field := range e.fields.Data {
		if e.fields.reserved(field) {
			continue
		}

		v, ok := obj[field]
		if !ok {
			continue
		}

		if b, ok := DecodeInline(v); ok {
			e.logger.Debug("decoded inline video data",
				"field", qualify(where, field),
				"bytes", len(b),
			)
			return b
		}

		e.logger.Warn("could not decode inline video data", "field", qualify(where, field))
	}

	return nil
}

func (e *Extractor) fetch(ctx context.Context, url string) []byte {
	if e.fetcher == nil {
		e.logger.Warn("no fetcher configured, skipping video URL")
		return nil
	}

	b, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		e.logger.Warn("failed to download video from URL", "error", err)
		return nil
	}
	if len(b) == 0 {
		e.logger.Warn("video URL returned an empty body")
		return nil
	}

	e.logger.Info("downloaded video from URL", "bytes", len(b))
	return b
}

func qualify(where, field string) string {
	if where == "" {
		return field
	}
	return where + "." + field
}
