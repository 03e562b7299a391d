package cmd

import (
	"fmt"
	"image/color"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/deskpilot/internal/config"
	"github.com/xkilldash9x/deskpilot/internal/screen"
	"github.com/xkilldash9x/deskpilot/internal/vision"
)

// newCaptureCmd creates the `capture` command: a diagnostic screenshot of
// the configured display, optionally with a zone outlined for inspection.
func newCaptureCmd(v *viper.Viper) *cobra.Command {
	captureCmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture the display to a PNG file",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}

			if list, _ := cmd.Flags().GetBool("list"); list {
				for i, bounds := range screen.ListDisplays() {
					fmt.Fprintf(cmd.OutOrStdout(), "display %d: %dx%d at (%d, %d)\n",
						i, bounds.Dx(), bounds.Dy(), bounds.Min.X, bounds.Min.Y)
				}
				return nil
			}

			display, err := sessionDisplay(cfg.Display())
			if err != nil {
				return err
			}

			capturer := screen.NewDisplayCapturer(cfg.Display().Index)
			frame, err := capturer.Capture(cmd.Context())
			if err != nil {
				return fmt.Errorf("capturing display: %w", err)
			}

			if zoneSpec, _ := cmd.Flags().GetString("zone"); zoneSpec != "" {
				zone, err := parseZone(display, zoneSpec)
				if err != nil {
					return err
				}
				frame = vision.OutlineRegion(frame, zone.Physical(display), color.RGBA{R: 255, A: 255})
			}

			output, _ := cmd.Flags().GetString("output")
			if err := vision.EncodePNG(output, frame); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}

	captureCmd.Flags().StringP("output", "o", "capture.png", "Path for the captured PNG.")
	captureCmd.Flags().String("zone", "", "Outline a zone 'x,y,w,h' in scaled units on the capture.")
	captureCmd.Flags().Bool("list", false, "List active displays instead of capturing.")

	return captureCmd
}
