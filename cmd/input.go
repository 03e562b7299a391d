package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/deskpilot/internal/config"
	"github.com/xkilldash9x/deskpilot/internal/verb"
)

// newInputCmd creates and configures the `input` command.
func newInputCmd(v *viper.Viper) *cobra.Command {
	inputCmd := &cobra.Command{
		Use:   "input",
		Short: "Type text into a field and verify it landed",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to their corresponding config keys so
			// command-line values override file and env settings.
			if err := v.BindPFlag("input.typing_wpm", cmd.Flags().Lookup("wpm")); err != nil {
				return err
			}
			if err := v.BindPFlag("input.submit_hold", cmd.Flags().Lookup("hold")); err != nil {
				return err
			}
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

			target, err := parseTarget(cmd, env.Display)
			if err != nil {
				return err
			}
			text, _ := cmd.Flags().GetString("text")
			submit, _ := cmd.Flags().GetBool("submit")

			input, err := verb.NewInput(ctx, env, target, text, submit, verb.InputOptions{
				WPM:        cfg.Input().TypingWPM,
				SubmitHold: cfg.Input().SubmitHold,
			})
			if err != nil {
				return fmt.Errorf("resolving input target: %w", err)
			}
			return fireAndReport(cmd, input)
		},
	}

	targetFlags(inputCmd)
	budgetFlags(inputCmd)
	inputCmd.Flags().String("text", "", "Text to type into the target.")
	inputCmd.Flags().Bool("submit", false, "Tap Return after the text.")
	inputCmd.Flags().Float64("wpm", 0, "Typing speed in words per minute. (Overrides config/env)")
	inputCmd.Flags().Duration("hold", 0, "Return key hold when submitting. (Overrides config/env)")
	inputCmd.MarkFlagRequired("text")

	return inputCmd
}
