package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"tactics-sim/internal/domain"
	"tactics-sim/internal/infrastructure/storage"
	"tactics-sim/internal/network"
	"tactics-sim/internal/scenario"
	"tactics-sim/internal/server"
	"tactics-sim/internal/version"
	"tactics-sim/pkg/api"
	"tactics-sim/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Play a scenario turn by turn for websocket spectators",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioPath, _ := cmd.Flags().GetString("scenario")

		logger.Log.Info("Starting battle server...")
		logger.Log.Info(version.String())

		fs := afero.NewOsFs()
		sc, err := scenario.Load(fs, scenarioPath)
		if err != nil {
			return err
		}
		setup, err := sc.Setup(domain.NewUnitFactory(), cfg.Battle())
		if err != nil {
			return err
		}
		svc, err := storage.NewReplayService(fs, cfg.ReplayDir)
		if err != nil {
			return err
		}

		// Graceful Shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		hub := network.NewBroadcaster()
		match := server.NewMatch(setup, hub, cfg.Tick, storage.NewSessionID())
		match.OnFinish(func(e api.ReplayExport) {
			if _, err := svc.SaveJSON(e); err != nil {
				logger.Log.WithError(err).Error("Failed to save replay")
			}
		})

		go func() {
			if err := match.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Log.WithError(err).Error("Match stopped")
			}
		}()

		srv := server.New(match, hub, cfg.Port)
		err = srv.Run(ctx)
		logger.Log.Info("Done.")
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("scenario", "", "Path to the scenario YAML file")
	_ = serveCmd.MarkFlagRequired("scenario")
}
