// Package gencmder holds the flags and run loop shared by the t2v and i2v
// commands.
package gencmder

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/vidgen/pkg/catalog"
	"github.com/papercomputeco/vidgen/pkg/cliui"
	"github.com/papercomputeco/vidgen/pkg/config"
	"github.com/papercomputeco/vidgen/pkg/credentials"
	"github.com/papercomputeco/vidgen/pkg/encoder"
	"github.com/papercomputeco/vidgen/pkg/generate"
	"github.com/papercomputeco/vidgen/pkg/logger"
	"github.com/papercomputeco/vidgen/pkg/videoapi"
)

// Options are the per-invocation generation flags.
type Options struct {
	Prompt      string
	Model       string
	Orientation string
	Images      []string
}

// AddFlags registers the prompt, model, orientation and config-backed flags.
func AddFlags(cmd *cobra.Command, o *Options) {
	cmd.Flags().StringVarP(&o.Prompt, "prompt", "p", "", "Prompt text, or path to a .txt file holding it")
	cmd.Flags().StringVarP(&o.Model, "model", "m", "", "Model ID (default: picked automatically)")
	cmd.Flags().StringVar(&o.Orientation, "orientation", string(catalog.Landscape), "Video orientation (landscape, portrait)")
	_ = cmd.MarkFlagRequired("prompt")

	config.AddStringFlags(cmd, config.GenerateFlags, config.GenerateFlagKeys)
}

// Run resolves configuration and generates one video for category.
func Run(cmd *cobra.Command, category catalog.Category, o *Options) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}

	orientation, err := catalog.ParseOrientation(o.Orientation)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	timeout, err := cfg.API.TimeoutDuration()
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	progress := cliui.NewProgress(stderr, "Receiving video")
	defer progress.Done()

	log, closeLog, err := NewLogger(cmd, progress.Writer(stderr))
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := videoapi.New(videoapi.Config{
		Endpoint: cfg.API.Endpoint,
		Token:    cfg.API.Token,
		Timeout:  timeout,
		Fields:   cfg.Extract.Fields(),
		Logger:   log,
		Progress: progress.Update,
	})
	if err != nil {
		return err
	}

	runner, err := generate.NewRunner(generate.Config{
		Generator: client,
		Catalog:   cat,
		Encoder: encoder.New(encoder.Options{
			MaxSize: cfg.Images.MaxSize,
			Formats: cfg.Images.Formats,
		}),
		OutputDir: cfg.Output.Dir,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	job := generate.Job{
		Category:    category,
		Prompt:      o.Prompt,
		Images:      o.Images,
		Model:       o.Model,
		Orientation: orientation,
	}

	var prepared generate.Prepared
	err = cliui.Step(stderr, "Preparing request", func() error {
		var err error
		prepared, err = runner.Prepare(job)
		return err
	})
	if err != nil {
		return err
	}

	res, err := runner.Execute(cmd.Context(), prepared)
	progress.Done()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Saved %s %s\n",
		cliui.SuccessMark,
		cliui.ValueStyle.Render(res.Path),
		cliui.DimStyle.Render(fmt.Sprintf("(%s, %s)", res.Model, humanize.Bytes(uint64(res.Bytes)))),
	)
	return nil
}

// LoadConfig layers flags over VIDGEN_* env vars, config.toml and defaults.
// A token stored with "vidgen auth" for the endpoint host replaces
// api.token from config.toml but not one given by flag or environment.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}
	config.BindRegisteredFlags(v, cmd, config.GenerateFlags, config.GenerateFlagKeys)

	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}

	if tokenFromFlagOrEnv(cmd) {
		return cfg, nil
	}

	stored, err := credentials.Lookup(configDir, cfg.API.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}
	if stored != "" {
		cfg.API.Token = stored
	}
	return cfg, nil
}

func tokenFromFlagOrEnv(cmd *cobra.Command) bool {
	if f := cmd.Flags().Lookup(config.FlagToken); f != nil && f.Changed {
		return true
	}
	return os.Getenv(config.EnvPrefix+"_API_TOKEN") != ""
}

// NewLogger builds the command's logger from the root --debug, --json-logs
// and --log-file flags. Records go to w, pretty when the command's stderr is
// a terminal. With --log-file they are also appended to that file as JSON.
// The returned func closes the file.
func NewLogger(cmd *cobra.Command, w io.Writer) (*slog.Logger, func() error, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	logFile, _ := cmd.Flags().GetString("log-file")

	format := logger.Text
	switch {
	case jsonLogs:
		format = logger.JSON
	case cliui.IsTerminal(cmd.ErrOrStderr()):
		format = logger.Pretty
	}

	log := logger.New(
		logger.WithDebug(debug),
		logger.WithFormat(format),
		logger.WithWriter(w),
	)
	if logFile == "" {
		return log, func() error { return nil }, nil
	}

	return logger.Tee(log, logFile, logger.WithDebug(debug))
}
