// Package videoapi is the entry point of the generation pipeline. It sends one
// streaming request, classifies the response and runs the matching parser to
// recover the video bytes.
package videoapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/papercomputeco/vidgen/pkg/extract"
	"github.com/papercomputeco/vidgen/pkg/logger"
	"github.com/papercomputeco/vidgen/pkg/stream"
	"github.com/papercomputeco/vidgen/pkg/transport"
)

// Config holds everything a Client needs. There is no package level state.
type Config struct {
	Endpoint string
	Token    string

	// Timeout bounds the generation request and every URL dereference.
	Timeout time.Duration

	// Fields configures where media is looked for inside events.
	Fields extract.Fields

	Logger   *slog.Logger
	Progress stream.ProgressFunc

	// HTTPClient is optional, mostly for tests.
	HTTPClient *http.Client
}

// Request is a single generation request.
type Request struct {
	Model  string
	Prompt string

	// Images are base64 encoded, at most MaxImages.
	Images []string
}

// Client generates videos against one endpoint.
type Client struct {
	endpoint  string
	transport *transport.Client
	extractor *extract.Extractor
	progress  stream.ProgressFunc
	logger    *slog.Logger
}

// New creates a Client from cfg.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}

	log := logger.OrNop(cfg.Logger)
	tc := transport.New(transport.Options{
		Timeout:    cfg.Timeout,
		Token:      cfg.Token,
		Logger:     log,
		HTTPClient: cfg.HTTPClient,
	})

	return &Client{
		endpoint:  cfg.Endpoint,
		transport: tc,
		extractor: extract.New(cfg.Fields, tc, log),
		progress:  cfg.Progress,
		logger:    log,
	}, nil
}

// Generate sends req and returns the complete video payload. The response is
// closed before Generate returns on every path.
//
// Transport failures are *transport.Error; a stream that yields no payload is
// a *stream.FormatError.
func (c *Client) Generate(ctx context.Context, req Request) ([]byte, error) {
	body, err := BuildRequest(req.Model, req.Prompt, req.Images)
	if err != nil {
		return nil, err
	}

	c.logger.Info("requesting video generation", "model", req.Model, "images", len(req.Images))

	resp, err := c.transport.Open(ctx, c.endpoint, body)
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	class := stream.Classify(resp.ContentType())
	if class == stream.Unknown {
		c.logger.Warn("unknown content type, detecting stream format", "content_type", resp.ContentType())
	} else {
		c.logger.Info("detected stream format", "format", class.String())
	}

	parser := stream.New(class, stream.Options{
		Extractor: c.extractor,
		Logger:    c.logger,
		Progress:  c.progress,
		Total:     resp.ContentLength,
	})

	video, err := parser.Parse(ctx, resp)
	if err != nil {
		return nil, err
	}

	c.logger.Info("received video",
		"bytes", len(video),
		"size", humanize.IBytes(uint64(len(video))),
	)
	return video, nil
}
