package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/deskpilot/internal/config"
)

// newLocateCmd creates the `locate` command, a dry run of target
// resolution: it reports where an action would land without firing one.
func newLocateCmd(v *viper.Viper) *cobra.Command {
	locateCmd := &cobra.Command{
		Use:   "locate",
		Short: "Resolve a target to a point without acting on it",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
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
			resolved, err := env.Resolver.Resolve(cmd.Context(), target)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", target.Describe(), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "point: %s\n", resolved.Point)
			fmt.Fprintf(out, "zone:  %s\n", resolved.CheckZone)
			fmt.Fprintf(out, "score: %.3f\n", resolved.Score)
			return nil
		},
	}

	targetFlags(locateCmd)
	return locateCmd
}
