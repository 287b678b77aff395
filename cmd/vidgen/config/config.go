// Package configcmder provides the config command for managing persistent
// vidgen configuration stored in the .vidgen/ directory.
package configcmder

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/vidgen/pkg/cliui"
	"github.com/papercomputeco/vidgen/pkg/config"
)

const configLongDesc string = `Manage persistent vidgen configuration.

Configuration is stored as config.toml in the .vidgen/ directory and provides
default values for command flags. CLI flags and VIDGEN_* environment
variables always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  api.endpoint, api.token, api.timeout,
  output.dir, catalog.path,
  images.max_size, images.formats,
  extract.choices_field, extract.container_fields,
  extract.url_fields, extract.data_fields, extract.reserved_fields

Use subcommands to get, set, or list configuration values:
  vidgen config set <key> <value>    Set a configuration value
  vidgen config get <key>            Get a configuration value
  vidgen config list                 List all configuration values

Examples:
  vidgen config set api.token sk-...
  vidgen config set images.max_size 20MiB
  vidgen config set extract.data_fields video,clip,data
  vidgen config get api.endpoint
  vidgen config list`

const configShortDesc string = "Manage persistent vidgen configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func checkKey(key string) error {
	if !config.IsValidConfigKey(key) {
		return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
			key, strings.Join(config.ValidConfigKeys(), ", "))
	}
	return nil
}

func openConfiger(cmd *cobra.Command) (*config.Configer, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")

	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfger, nil
}

func printTarget(w io.Writer, cfger *config.Configer) {
	if target := cfger.GetTarget(); target != "" {
		fmt.Fprintf(w, "\n  %s %s\n\n",
			cliui.KeyStyle.Render("Config file:"),
			cliui.DimStyle.Render(target),
		)
		return
	}
	fmt.Fprintf(w, "\n  %s\n\n", cliui.DimStyle.Render("No config file found. Using defaults."))
}

// displayValue hides secrets.
func displayValue(key, value string) string {
	if key == "api.token" && value != "" {
		if len(value) <= 4 {
			return "****"
		}
		return value[:4] + strings.Repeat("*", 8)
	}
	return value
}
