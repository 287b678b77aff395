package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline, so --endpoint on t2v and
// i2v cannot drift apart.
type Flag struct {
	// Name is the long flag name (e.g. "endpoint").
	Name string

	// Shorthand is the one-letter short flag (e.g. "o"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "api.endpoint").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of registry keys to Flag definitions.
type FlagSet map[string]Flag

// Flag registry keys.
const (
	FlagEndpoint  = "endpoint"
	FlagToken     = "token"
	FlagTimeout   = "timeout"
	FlagOutputDir = "output"
	FlagCatalog   = "catalog"
	FlagMaxSize   = "max-image-size"
)

// GenerateFlags are the config-backed flags shared by the generation commands.
var GenerateFlags = FlagSet{
	FlagEndpoint: {
		Name:        "endpoint",
		ViperKey:    "api.endpoint",
		Description: "Chat completions endpoint URL",
	},
	FlagToken: {
		Name:        "token",
		ViperKey:    "api.token",
		Description: "Bearer token for the API",
	},
	FlagTimeout: {
		Name:        "timeout",
		ViperKey:    "api.timeout",
		Description: "Request timeout (e.g. 90s, 10m)",
	},
	FlagOutputDir: {
		Name:        "output",
		Shorthand:   "o",
		ViperKey:    "output.dir",
		Description: "Directory to save generated videos",
	},
	FlagCatalog: {
		Name:        "catalog",
		ViperKey:    "catalog.path",
		Description: "Path to a model catalog JSON file (default: built-in)",
	},
	FlagMaxSize: {
		Name:        "max-image-size",
		ViperKey:    "images.max_size",
		Description: "Maximum reference image size (e.g. 10MiB)",
	},
}

// GenerateFlagKeys lists every key in GenerateFlags.
var GenerateFlagKeys = []string{
	FlagEndpoint,
	FlagToken,
	FlagTimeout,
	FlagOutputDir,
	FlagCatalog,
	FlagMaxSize,
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddStringFlags registers every key from fs with a throwaway target.
// Values are read back through viper after BindRegisteredFlags.
func AddStringFlags(cmd *cobra.Command, fs FlagSet, keys []string) {
	for _, key := range keys {
		var target string
		AddStringFlag(cmd, fs, key, &target)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}
