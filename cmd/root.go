package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/deskpilot/internal/config"
	"github.com/xkilldash9x/deskpilot/internal/observability"
)

// NewRootCommand builds the deskpilot command tree. Every call returns a
// fresh instance with its own viper state, so commands never leak flag
// bindings into each other.
func NewRootCommand() *cobra.Command {
	rootCmd, _ := newRootCommand()
	return rootCmd
}

// newRootCommand also hands back the tree's viper so tests can inspect
// the state a command materialized its config from.
func newRootCommand() (*cobra.Command, *viper.Viper) {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "deskpilot",
		Short: "Deskpilot drives desktop interfaces with operator-like input.",
		Long: `Deskpilot synthesizes mouse and keyboard input against the live desktop,
locates targets visually from template images, and verifies every action
by watching the screen for the interface's reaction.`,
		// Version is dynamically set at build time. See cmd/version.go.
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// This runs before any command, setting up config and logging.
			if err := initializeConfig(v, cfgFile); err != nil {
				return err
			}
			if err := bindRootFlags(v, cmd); err != nil {
				return err
			}

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				// Fall back to a bare logger so the failure is readable.
				observability.InitializeLogger(config.LoggerConfig{
					Level: "info", Format: "console", ServiceName: "deskpilot",
				})
				return err
			}

			observability.InitializeLogger(cfg.Logger())
			observability.GetLogger().Info("Starting deskpilot",
				zap.String("version", Version))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().Float64("scale", 0, "Display scale factor. (Overrides config/env)")
	rootCmd.PersistentFlags().String("journal", "", "Directory for the action journal. (Overrides config/env)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(
		newClickCmd(v),
		newInputCmd(v),
		newScrollCmd(v),
		newLocateCmd(v),
		newCaptureCmd(v),
		newVersionCmd(),
	)
	return rootCmd, v
}

// Execute runs a fresh command tree against the given context. The caller
// decides the exit code; errors have already been logged here.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		return err
	}
	return nil
}

// initializeConfig layers defaults, the config file, and ENV variables
// into v.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	config.SetDefaults(v)

	if cfgFile != "" {
		// Safely expand potential home directory references (~).
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return fmt.Errorf("could not resolve config path %q: %w", cfgFile, err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("DESKPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars.
	}
	return nil
}

// bindRootFlags maps the persistent override flags onto their config
// keys before the config is materialized.
func bindRootFlags(v *viper.Viper, cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	if err := v.BindPFlag("display.scale", flags.Lookup("scale")); err != nil {
		return err
	}
	return v.BindPFlag("journal.dir", flags.Lookup("journal"))
}
