package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/deskpilot/api/schemas"
	"github.com/xkilldash9x/deskpilot/internal/config"
	"github.com/xkilldash9x/deskpilot/internal/verb"
)

// newClickCmd creates and configures the `click` command.
func newClickCmd(v *viper.Viper) *cobra.Command {
	clickCmd := &cobra.Command{
		Use:   "click",
		Short: "Click a target and verify the interface reacted",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Re-materialize the config now that the command's flags
			// are bound, so overrides carry the right precedence.
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			env, err := buildEnv(cfg)
			if err != nil {
				return err
			}

			target, err := parseTarget(cmd, env.Display)
			if err != nil {
				return err
			}
			buttonSpec, _ := cmd.Flags().GetString("button")
			button, err := parseButton(buttonSpec)
			if err != nil {
				return err
			}

			click, err := verb.NewClick(ctx, env, target, button)
			if err != nil {
				return fmt.Errorf("resolving click target: %w", err)
			}
			return fireAndReport(cmd, click)
		},
	}

	targetFlags(clickCmd)
	budgetFlags(clickCmd)
	clickCmd.Flags().String("button", "left", "Mouse button ('left', 'right', 'middle').")

	return clickCmd
}

func parseButton(s string) (schemas.MouseButton, error) {
	switch strings.ToLower(s) {
	case "left":
		return schemas.ButtonLeft, nil
	case "right":
		return schemas.ButtonRight, nil
	case "middle":
		return schemas.ButtonMiddle, nil
	default:
		return schemas.ButtonNone, fmt.Errorf("unknown mouse button %q", s)
	}
}
