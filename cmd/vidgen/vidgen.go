// Package vidgencmder
package vidgencmder

import (
	"github.com/spf13/cobra"

	versioncmder "github.com/papercomputeco/vidgen/cmd/version"
	authcmder "github.com/papercomputeco/vidgen/cmd/vidgen/auth"
	configcmder "github.com/papercomputeco/vidgen/cmd/vidgen/config"
	i2vcmder "github.com/papercomputeco/vidgen/cmd/vidgen/i2v"
	modelscmder "github.com/papercomputeco/vidgen/cmd/vidgen/models"
	t2vcmder "github.com/papercomputeco/vidgen/cmd/vidgen/t2v"
)

const vidgenLongDesc string = `vidgen generates videos through a chat-completions style API.

The response is streamed and the video is recovered whether the server
sends raw bytes, server-sent events or newline-delimited JSON.

Generate videos using:
  vidgen t2v -p "prompt"              Text to video
  vidgen i2v -i image.png -p "prompt" Image to video
  vidgen models                       List available models

Settings come from flags, VIDGEN_* environment variables and
.vidgen/config.toml, in that order.`

const vidgenShortDesc string = "vidgen - streaming video generation"

func NewVidgenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "vidgen",
		Short:        vidgenShortDesc,
		Long:         vidgenLongDesc,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON")
	cmd.PersistentFlags().String("log-file", "", "Also append JSON logs to this file")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .vidgen/ config directory")

	// Add subcommands
	cmd.AddCommand(t2vcmder.NewT2VCmd())
	cmd.AddCommand(i2vcmder.NewI2VCmd())
	cmd.AddCommand(modelscmder.NewModelsCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(authcmder.NewAuthCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
