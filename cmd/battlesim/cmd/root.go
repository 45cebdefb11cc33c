package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tactics-sim/internal/config"
	"tactics-sim/pkg/logger"
)

var (
	configFile string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "battlesim",
	Short: "Turn-based tactical battle simulator",
	Long: `battlesim runs deterministic grid battles between two armies.

Available commands:
  run        Simulate a scenario to the end and save the replay
  serve      Play a scenario turn by turn for websocket spectators
  inspect    Print a summary of a saved replay
  version    Print build information

Use "battlesim [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(viper.New(), configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Configure(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		return nil
	},
}

// Execute executes the root command
func Execute() {
	logger.Init()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./battlesim.yaml)")
}
