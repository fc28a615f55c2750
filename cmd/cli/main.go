package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/bonuspool/cmd/cli/commands"
	"github.com/jakechorley/bonuspool/internal/config"
	"github.com/jakechorley/bonuspool/pkg/utils/logging"
)

var (
	configPath string
	app        *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bonuspool",
		Short: "Bonuspool CLI - Distribute performance bonus pools",
		Long:  `A CLI tool for distributing a fixed bonus pool among clinical staff based on weighted performance metrics.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the config file (defaults to bonuspool_config.yaml search)")

	rootCmd.AddCommand(commands.AllocateCmd(appRef()))
	rootCmd.AddCommand(commands.ValidateConfigCmd(appRef()))
	rootCmd.AddCommand(commands.ListParticipantsCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, created empty so command
// constructors can capture it before initApp fills it in.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up the logger and configuration
func initApp() error {
	var err error
	ctx := appRef()

	if configPath != "" {
		ctx.Cfg, err = config.LoadFromPath(configPath)
	} else {
		ctx.Cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx.Logger, err = logging.InitLogger(ctx.Cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx.Logger.Debug("Configuration loaded", zap.String("config_path", configPath))

	return nil
}
