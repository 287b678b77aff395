package config

import (
	"github.com/papercomputeco/vidgen/pkg/encoder"
	"github.com/papercomputeco/vidgen/pkg/extract"
)

const (
	defaultEndpoint = "https://api.example.com/v1/chat/completions"
	defaultTimeout  = "10m"

	defaultOutputDir = "./output"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	fields := extract.DefaultFields()

	return &Config{
		Version: CurrentV,
		API: APIConfig{
			Endpoint: defaultEndpoint,
			Timeout:  defaultTimeout,
		},
		Output: OutputConfig{
			Dir: defaultOutputDir,
		},
		Images: ImagesConfig{
			MaxSize: encoder.DefaultMaxSize,
			Formats: encoder.DefaultFormats(),
		},
		Extract: ExtractConfig{
			ChoicesField:    fields.Choices,
			ContainerFields: fields.Containers,
			URLFields:       fields.URL,
			DataFields:      fields.Data,
			ReservedFields:  fields.Reserved,
		},
	}
}
