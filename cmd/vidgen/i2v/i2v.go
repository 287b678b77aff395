// Package i2vcmder provides the i2v command for image-to-video generation.
package i2vcmder

import (
	"github.com/spf13/cobra"

	gencmder "github.com/papercomputeco/vidgen/cmd/vidgen/gen"
	"github.com/papercomputeco/vidgen/pkg/catalog"
)

const i2vLongDesc string = `Generate a video from one or two reference images.

With one image the video starts from it. With two, the first and last
frames are pinned to them in order. Images must be jpg, jpeg, png or webp
and no larger than images.max_size.

Examples:
  vidgen i2v -i start.png -p "the camera slowly pulls back"
  vidgen i2v -i first.jpg -i last.jpg -p morph.txt --orientation portrait`

const i2vShortDesc string = "Generate a video from images"

func NewI2VCmd() *cobra.Command {
	opts := &gencmder.Options{}

	cmd := &cobra.Command{
		Use:   "i2v",
		Short: i2vShortDesc,
		Long:  i2vLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gencmder.Run(cmd, catalog.ImageToVideo, opts)
		},
	}

	gencmder.AddFlags(cmd, opts)
	cmd.Flags().StringArrayVarP(&opts.Images, "image", "i", nil, "Reference image path (repeat for first and last frame)")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}
