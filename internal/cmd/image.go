package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/webkit/internal/lib/utils"
)

func NewImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Image size and placeholder helpers",
	}

	cmd.AddCommand(newImageSizeCmd(), newImagePlaceholderCmd())
	return cmd
}

func newImageSizeCmd() *cobra.Command {
	var (
		kind        string
		aspectRatio string
		width       int
		height      int
	)

	cmd := &cobra.Command{
		Use:   "size width|height",
		Short: "Resolve the rendered width or height of an image",
		Example: `  webkit image size height --type fill --aspect-ratio 3:4
  webkit image size width --width 640`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(utils.DimensionWidth), string(utils.DimensionHeight)},
		RunE: func(cmd *cobra.Command, args []string) error {
			dimension := utils.Dimension(args[0])
			if dimension != utils.DimensionWidth && dimension != utils.DimensionHeight {
				return fmt.Errorf("dimension must be width or height, got %q", args[0])
			}

			image := map[string]any{
				"aspectRatio": aspectRatio,
				"width":       width,
				"height":      height,
			}
			return utils.PrintJSON(cmd.OutOrStdout(), map[string]int{
				"size": utils.ImageSize(kind, image, dimension),
			})
		},
	}

	cmd.Flags().StringVar(&kind, "type", "", `Transformation type; "fill" sizes by aspect ratio`)
	cmd.Flags().StringVar(&aspectRatio, "aspect-ratio", "", "Aspect ratio for fill, e.g. 1:1, 3:4, 9:16")
	cmd.Flags().IntVar(&width, "width", 0, "Stored image width")
	cmd.Flags().IntVar(&height, "height", 0, "Stored image height")

	return cmd
}

func newImagePlaceholderCmd() *cobra.Command {
	var (
		width  int
		height int
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "placeholder",
		Short: "Build the shimmer placeholder as a data URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if width < 1 || height < 1 {
				return fmt.Errorf("width and height must be positive")
			}
			if raw {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), utils.Shimmer(width, height))
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), map[string]string{
				"data_url": utils.PlaceholderDataURL(width, height),
			})
		},
	}

	cmd.Flags().IntVar(&width, "width", utils.DefaultImageSize, "Placeholder width")
	cmd.Flags().IntVar(&height, "height", utils.DefaultImageSize, "Placeholder height")
	cmd.Flags().BoolVar(&raw, "svg", false, "Print the SVG instead of a data URL")

	return cmd
}
