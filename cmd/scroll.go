package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/deskpilot/api/schemas"
	"github.com/xkilldash9x/deskpilot/internal/config"
	"github.com/xkilldash9x/deskpilot/internal/locate"
	"github.com/xkilldash9x/deskpilot/internal/verb"
)

// newScrollCmd creates and configures the `scroll` command and its
// iterative and seeking variants.
func newScrollCmd(v *viper.Viper) *cobra.Command {
	scrollCmd := &cobra.Command{
		Use:   "scroll",
		Short: "Scroll at a target and verify content moved",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			env, err := buildEnv(cfg)
			if err != nil {
				return err
			}

			anchor, err := parseTarget(cmd, env.Display)
			if err != nil {
				return err
			}
			directionSpec, _ := cmd.Flags().GetString("direction")
			direction, err := parseDirection(directionSpec)
			if err != nil {
				return err
			}
			ticks, _ := cmd.Flags().GetInt("ticks")
			maxSteps, _ := cmd.Flags().GetInt("max-steps")
			seekPath, _ := cmd.Flags().GetString("seek")
			toEnd, _ := cmd.Flags().GetBool("to-end")

			switch {
			case seekPath != "" && toEnd:
				return fmt.Errorf("--seek and --to-end are mutually exclusive")

			case seekPath != "":
				needleTpl, err := loadTemplate(cmd, seekPath)
				if err != nil {
					return err
				}
				seek, err := verb.NewSeekScroll(ctx, env, anchor, locate.TemplateTarget(needleTpl), direction, ticks, maxSteps)
				if err != nil {
					return fmt.Errorf("resolving scroll anchor: %w", err)
				}
				if err := fireAndReport(cmd, seek); err != nil {
					return err
				}
				if found, ok := seek.Found(); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "found at %s (score %.3f)\n", found.Point, found.Score)
				}
				return nil

			case toEnd:
				iter, err := verb.NewIterativeScroll(ctx, env, anchor, direction, ticks, maxSteps)
				if err != nil {
					return fmt.Errorf("resolving scroll anchor: %w", err)
				}
				return fireAndReport(cmd, iter)

			default:
				scroll, err := verb.NewScroll(ctx, env, anchor, direction, ticks)
				if err != nil {
					return fmt.Errorf("resolving scroll anchor: %w", err)
				}
				return fireAndReport(cmd, scroll)
			}
		},
	}

	targetFlags(scrollCmd)
	budgetFlags(scrollCmd)
	scrollCmd.Flags().String("direction", "down", "Scroll direction ('up', 'down').")
	scrollCmd.Flags().Int("ticks", 0, "Wheel ticks per scroll, or per step for the bounded variants.")
	scrollCmd.Flags().Bool("to-end", false, "Scroll stepwise until the content stops moving.")
	scrollCmd.Flags().String("seek", "", "Scroll stepwise until this template PNG becomes visible.")
	scrollCmd.Flags().Int("max-steps", 0, "Step limit for --to-end and --seek.")

	return scrollCmd
}

func parseDirection(s string) (schemas.ScrollDirection, error) {
	switch strings.ToLower(s) {
	case "up":
		return schemas.ScrollUp, nil
	case "down":
		return schemas.ScrollDown, nil
	default:
		return "", fmt.Errorf("unknown scroll direction %q", s)
	}
}
