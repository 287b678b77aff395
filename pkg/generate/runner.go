// Package generate runs one video generation end to end: prompt loading,
// model selection, image encoding, the API call and saving the result.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/papercomputeco/vidgen/pkg/catalog"
	"github.com/papercomputeco/vidgen/pkg/encoder"
	"github.com/papercomputeco/vidgen/pkg/logger"
	"github.com/papercomputeco/vidgen/pkg/saver"
	"github.com/papercomputeco/vidgen/pkg/videoapi"
)

// VideoGenerator turns a request into video bytes. *videoapi.Client
// implements it.
type VideoGenerator interface {
	Generate(ctx context.Context, req videoapi.Request) ([]byte, error)
}

// Config holds the Runner's collaborators.
type Config struct {
	Generator VideoGenerator

	// Catalog defaults to the embedded catalog.
	Catalog *catalog.Catalog

	// Encoder defaults to an encoder with default limits.
	Encoder *encoder.Encoder

	OutputDir string
	Logger    *slog.Logger

	// Now defaults to time.Now and is used for output file names.
	Now func() time.Time
}

// Job is one generation.
type Job struct {
	Category catalog.Category

	// Prompt is the prompt text, or the path of a .txt file holding it.
	Prompt string

	// Images are image file paths: none for t2v, one or two for i2v.
	Images []string

	// Model overrides automatic selection.
	Model       string
	Orientation catalog.Orientation
}

// Prepared is a Job resolved into an API request.
type Prepared struct {
	Request videoapi.Request

	// PromptFile reports whether the prompt was read from a file.
	PromptFile bool
}

// Result describes a saved video.
type Result struct {
	Path  string
	Model string
	Bytes int
}

// Runner executes jobs.
type Runner struct {
	generator VideoGenerator
	selector  *catalog.Selector
	encoder   *encoder.Encoder
	outputDir string
	logger    *slog.Logger
	now       func() time.Time
}

// NewRunner creates a Runner.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Generator == nil {
		return nil, errors.New("a video generator is required")
	}

	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	enc := cfg.Encoder
	if enc == nil {
		enc = encoder.New(encoder.Options{})
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "output"
	}

	return &Runner{
		generator: cfg.Generator,
		selector:  catalog.NewSelector(cat),
		encoder:   enc,
		outputDir: outputDir,
		logger:    logger.OrNop(cfg.Logger),
		now:       now,
	}, nil
}

// Prepare validates job and builds its request without contacting the API.
func (r *Runner) Prepare(job Job) (Prepared, error) {
	if err := checkImages(job); err != nil {
		return Prepared{}, err
	}

	prompt, fromFile, err := LoadPrompt(job.Prompt)
	if err != nil {
		return Prepared{}, err
	}
	if fromFile {
		r.logger.Info("loaded prompt from file", "path", job.Prompt)
	}

	model, err := r.selector.Select(catalog.Selection{
		Category:    job.Category,
		Images:      len(job.Images),
		Orientation: job.Orientation,
		Model:       job.Model,
	})
	if err != nil {
		return Prepared{}, err
	}

	images, err := r.encoder.EncodeFiles(job.Images)
	if err != nil {
		return Prepared{}, err
	}

	return Prepared{
		Request: videoapi.Request{
			Model:  model,
			Prompt: prompt,
			Images: images,
		},
		PromptFile: fromFile,
	}, nil
}

// Run prepares job, generates the video and saves it under the output
// directory.
func (r *Runner) Run(ctx context.Context, job Job) (Result, error) {
	p, err := r.Prepare(job)
	if err != nil {
		return Result{}, err
	}
	return r.Execute(ctx, p)
}

// Execute sends a prepared request and saves the returned video.
func (r *Runner) Execute(ctx context.Context, p Prepared) (Result, error) {
	r.logger.Info("generating video",
		"model", p.Request.Model,
		"images", len(p.Request.Images),
	)

	video, err := r.generator.Generate(ctx, p.Request)
	if err != nil {
		return Result{}, fmt.Errorf("generating video: %w", err)
	}

	path, err := saver.OutputPath(r.outputDir, r.now())
	if err != nil {
		return Result{}, err
	}
	if err := saver.Save(video, path); err != nil {
		return Result{}, err
	}

	r.logger.Info("saved video", "path", path, "size", humanize.IBytes(uint64(len(video))))

	return Result{Path: path, Model: p.Request.Model, Bytes: len(video)}, nil
}

func checkImages(job Job) error {
	n := len(job.Images)
	switch job.Category {
	case catalog.TextToVideo:
		if n != 0 {
			return fmt.Errorf("text-to-video takes no images, got %d", n)
		}
	case catalog.ImageToVideo:
		if n < 1 || n > videoapi.MaxImages {
			return fmt.Errorf("image-to-video needs 1 or %d images, got %d", videoapi.MaxImages, n)
		}
	}
	return nil
}
