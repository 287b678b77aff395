// Package t2vcmder provides the t2v command for text-to-video generation.
package t2vcmder

import (
	"github.com/spf13/cobra"

	gencmder "github.com/papercomputeco/vidgen/cmd/vidgen/gen"
	"github.com/papercomputeco/vidgen/pkg/catalog"
)

const t2vLongDesc string = `Generate a video from a text prompt.

The prompt is either literal text or the path to a .txt file holding it.
Without --model the recommended fast model for the orientation is used.

Examples:
  vidgen t2v -p "a red fox running through fresh snow"
  vidgen t2v -p prompt.txt --orientation portrait -o ./clips`

const t2vShortDesc string = "Generate a video from text"

func NewT2VCmd() *cobra.Command {
	opts := &gencmder.Options{}

	cmd := &cobra.Command{
		Use:   "t2v",
		Short: t2vShortDesc,
		Long:  t2vLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gencmder.Run(cmd, catalog.TextToVideo, opts)
		},
	}

	gencmder.AddFlags(cmd, opts)

	return cmd
}
