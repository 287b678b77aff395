package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/papercomputeco/vidgen/pkg/extract"
)

// Config represents the persistent vidgen configuration stored as config.toml
// in the .vidgen/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int           `toml:"version"`
	API     APIConfig     `toml:"api"`
	Output  OutputConfig  `toml:"output"`
	Catalog CatalogConfig `toml:"catalog"`
	Images  ImagesConfig  `toml:"images"`
	Extract ExtractConfig `toml:"extract"`
}

// APIConfig holds the generation endpoint settings.
type APIConfig struct {
	Endpoint string `toml:"endpoint,omitempty"`
	Token    string `toml:"token,omitempty"`

	// Timeout is a Go duration string, e.g. "10m".
	Timeout string `toml:"timeout,omitempty"`
}

// TimeoutDuration parses Timeout.
func (a APIConfig) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid api.timeout %q: %w", a.Timeout, err)
	}
	return d, nil
}

// OutputConfig holds where generated videos are written.
type OutputConfig struct {
	Dir string `toml:"dir,omitempty"`
}

// CatalogConfig points at a model.json file. Empty uses the embedded catalog.
type CatalogConfig struct {
	Path string `toml:"path,omitempty"`
}

// ImagesConfig constrains reference images.
type ImagesConfig struct {
	MaxSize int64    `toml:"max_size,omitempty"`
	Formats []string `toml:"formats,omitempty"`
}

// ExtractConfig holds the field names searched for media inside stream events.
type ExtractConfig struct {
	ChoicesField    string   `toml:"choices_field,omitempty"`
	ContainerFields []string `toml:"container_fields,omitempty"`
	URLFields       []string `toml:"url_fields,omitempty"`
	DataFields      []string `toml:"data_fields,omitempty"`
	ReservedFields  []string `toml:"reserved_fields,omitempty"`
}

// Fields converts the section into extractor field lists. Unset lists fall
// back to the extractor defaults.
func (e ExtractConfig) Fields() extract.Fields {
	return extract.Fields{
		Choices:    e.ChoicesField,
		Containers: e.ContainerFields,
		URL:        e.URLFields,
		Data:       e.DataFields,
		Reserved:   e.ReservedFields,
	}.WithDefaults()
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"api.endpoint": {
		get: func(c *Config) string { return c.API.Endpoint },
		set: func(c *Config, v string) error { c.API.Endpoint = v; return nil },
	},
	"api.token": {
		get: func(c *Config) string { return c.API.Token },
		set: func(c *Config, v string) error { c.API.Token = v; return nil },
	},
	"api.timeout": {
		get: func(c *Config) string { return c.API.Timeout },
		set: func(c *Config, v string) error {
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid value for api.timeout: %w", err)
			}
			c.API.Timeout = v
			return nil
		},
	},
	"output.dir": {
		get: func(c *Config) string { return c.Output.Dir },
		set: func(c *Config, v string) error { c.Output.Dir = v; return nil },
	},
	"catalog.path": {
		get: func(c *Config) string { return c.Catalog.Path },
		set: func(c *Config, v string) error { c.Catalog.Path = v; return nil },
	},
	"images.max_size": {
		get: func(c *Config) string {
			if c.Images.MaxSize == 0 {
				return ""
			}
			return strconv.FormatInt(c.Images.MaxSize, 10)
		},
		set: func(c *Config, v string) error {
			n, err := humanize.ParseBytes(v)
			if err != nil {
				return fmt.Errorf("invalid value for images.max_size: %w", err)
			}
			c.Images.MaxSize = int64(n)
			return nil
		},
	},
	"images.formats": {
		get: func(c *Config) string { return joinList(c.Images.Formats) },
		set: func(c *Config, v string) error { c.Images.Formats = SplitList(v); return nil },
	},
	"extract.choices_field": {
		get: func(c *Config) string { return c.Extract.ChoicesField },
		set: func(c *Config, v string) error { c.Extract.ChoicesField = v; return nil },
	},
	"extract.container_fields": {
		get: func(c *Config) string { return joinList(c.Extract.ContainerFields) },
		set: func(c *Config, v string) error { c.Extract.ContainerFields = SplitList(v); return nil },
	},
	"extract.url_fields": {
		get: func(c *Config) string { return joinList(c.Extract.URLFields) },
		set: func(c *Config, v string) error { c.Extract.URLFields = SplitList(v); return nil },
	},
	"extract.data_fields": {
		get: func(c *Config) string { return joinList(c.Extract.DataFields) },
		set: func(c *Config, v string) error { c.Extract.DataFields = SplitList(v); return nil },
	},
	"extract.reserved_fields": {
		get: func(c *Config) string { return joinList(c.Extract.ReservedFields) },
		set: func(c *Config, v string) error { c.Extract.ReservedFields = SplitList(v); return nil },
	},
}

// SplitList parses a comma separated list, dropping blank entries.
func SplitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func joinList(v []string) string {
	return strings.Join(v, ",")
}
