// Package transport issues the streaming generation request and the plain
// GETs used to dereference media URLs found inside a stream.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/papercomputeco/vidgen/pkg/logger"
	"github.com/papercomputeco/vidgen/pkg/stream"
	"github.com/papercomputeco/vidgen/pkg/utils"
)

const (
	// DefaultTimeout bounds a whole request, body included. Video generation
	// responses stream for minutes.
	DefaultTimeout = 10 * time.Minute

	// errorSnippet is how much of a failed download body is kept.
	errorSnippet = 500
)

// Options configures a Client.
type Options struct {
	// Timeout bounds each request including reading its body.
	// Defaults to DefaultTimeout.
	Timeout time.Duration

	// Token is sent as a bearer token on generation requests only.
	Token string

	// ChunkSize is the body read size. Defaults to stream.DefaultChunkSize.
	ChunkSize int

	Logger *slog.Logger

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// Client performs single-attempt HTTP requests. No request is retried.
type Client struct {
	httpClient *http.Client
	token      string
	chunkSize  int
	userAgent  string
	logger     *slog.Logger
}

// New creates a Client.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = stream.DefaultChunkSize
	}

	return &Client{
		httpClient: httpClient,
		token:      opts.Token,
		chunkSize:  chunkSize,
		userAgent:  utils.UserAgent(),
		logger:     logger.OrNop(opts.Logger),
	}
}

// Open POSTs body as JSON to endpoint and returns the response once its status
// is confirmed below 400. The caller must Close the StreamResponse.
//
// A status of 400 or above is returned as a KindStatus *Error carrying the
// fully drained body text.
func (c *Client) Open(ctx context.Context, endpoint string, body any) (*StreamResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("sending generation request", "endpoint", endpoint, "bytes", len(payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrap(err)
	}

	c.logger.Info("received response",
		"status", resp.StatusCode,
		"content_type", resp.Header.Get("Content-Type"),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()

		text, err := io.ReadAll(resp.Body)
		if err != nil {
			c.logger.Warn("could not read error response body", "error", err)
		}
		return nil, &Error{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Body:       string(text),
		}
	}

	return newStreamResponse(resp, c.chunkSize), nil
}

// Fetch GETs url without credentials and returns its body. Only status 200
// counts as success.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("downloading video", "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippet))
		return nil, &Error{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Body:       utils.Truncate(string(text), errorSnippet),
		}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrap(err)
	}
	return b, nil
}
