package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/papercomputeco/vidgen/pkg/dotdir"
)

// EnvPrefix prefixes every environment variable vidgen reads,
// e.g. VIDGEN_API_TOKEN for api.token.
const EnvPrefix = "VIDGEN"

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the VIDGEN_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (VIDGEN_API_ENDPOINT, VIDGEN_API_TOKEN, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	v.SetDefault("api.endpoint", d.API.Endpoint)
	v.SetDefault("api.token", d.API.Token)
	v.SetDefault("api.timeout", d.API.Timeout)

	v.SetDefault("output.dir", d.Output.Dir)

	v.SetDefault("catalog.path", d.Catalog.Path)

	v.SetDefault("images.max_size", d.Images.MaxSize)
	v.SetDefault("images.formats", d.Images.Formats)

	v.SetDefault("extract.choices_field", d.Extract.ChoicesField)
	v.SetDefault("extract.container_fields", d.Extract.ContainerFields)
	v.SetDefault("extract.url_fields", d.Extract.URLFields)
	v.SetDefault("extract.data_fields", d.Extract.DataFields)
	v.SetDefault("extract.reserved_fields", d.Extract.ReservedFields)
}

// FromViper resolves the effective Config from v after flags, env and file
// have been layered in.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Version: v.GetInt("version"),
		API: APIConfig{
			Endpoint: v.GetString("api.endpoint"),
			Token:    v.GetString("api.token"),
			Timeout:  v.GetString("api.timeout"),
		},
		Output:  OutputConfig{Dir: v.GetString("output.dir")},
		Catalog: CatalogConfig{Path: v.GetString("catalog.path")},
		Images: ImagesConfig{
			Formats: stringList(v.Get("images.formats")),
		},
		Extract: ExtractConfig{
			ChoicesField:    v.GetString("extract.choices_field"),
			ContainerFields: stringList(v.Get("extract.container_fields")),
			URLFields:       stringList(v.Get("extract.url_fields")),
			DataFields:      stringList(v.Get("extract.data_fields")),
			ReservedFields:  stringList(v.Get("extract.reserved_fields")),
		},
	}

	if raw := v.GetString("images.max_size"); raw != "" {
		n, err := humanize.ParseBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid images.max_size %q: %w", raw, err)
		}
		cfg.Images.MaxSize = int64(n)
	}

	if _, err := cfg.API.TimeoutDuration(); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

// stringList normalizes list values: TOML arrays arrive as []any, env vars
// and flags as a comma separated string.
func stringList(raw any) []string {
	switch val := raw.(type) {
	case nil:
		return nil
	case string:
		return SplitList(val)
	case []string:
		return SplitList(strings.Join(val, ","))
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return SplitList(fmt.Sprint(val))
	}
}
