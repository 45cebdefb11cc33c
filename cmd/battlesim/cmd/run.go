package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"tactics-sim/internal/army"
	"tactics-sim/internal/domain"
	"tactics-sim/internal/infrastructure/storage"
	"tactics-sim/internal/scenario"
	"tactics-sim/pkg/api"
	"tactics-sim/pkg/logger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a scenario to the end and save the replay",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioPath, _ := cmd.Flags().GetString("scenario")
		format, _ := cmd.Flags().GetString("replay-format")
		outDir, _ := cmd.Flags().GetString("out")
		exportArmies, _ := cmd.Flags().GetBool("export-armies")
		if outDir == "" {
			outDir = cfg.ReplayDir
		}
		if format != "json" && format != "binary" {
			return fmt.Errorf("unknown replay format %q (want json or binary)", format)
		}

		fs := afero.NewOsFs()
		sc, err := scenario.Load(fs, scenarioPath)
		if err != nil {
			return err
		}
		setup, err := sc.Setup(domain.NewUnitFactory(), cfg.Battle())
		if err != nil {
			return err
		}

		played := setup.Field.Simulate(setup.A, setup.B, setup.MaxTurns)

		svc, err := storage.NewReplayService(fs, outDir)
		if err != nil {
			return err
		}
		export := api.NewReplayExport(storage.NewSessionID(), setup.Terrain.Width, setup.Terrain.Height, setup.Field.Replay())

		var path string
		if format == "binary" {
			path, err = svc.SaveBinary(export)
		} else {
			path, err = svc.SaveJSON(export)
		}
		if err != nil {
			return err
		}

		if exportArmies {
			for _, a := range []*army.Army{setup.A, setup.B} {
				if _, err := svc.SaveArmy(a.Name, army.Export(a)); err != nil {
					return err
				}
			}
		}

		logger.Log.WithField("replay", path).Debug("Run complete")
		printSummary(cmd.OutOrStdout(), played, setup.Field.Winner(setup.A, setup.B), api.NewStatsView(setup.Field.Stats()))
		fmt.Fprintf(cmd.OutOrStdout(), "Replay:  %s\n", path)
		return nil
	},
}

func printSummary(w io.Writer, turns int, winner string, stats api.StatsView) {
	if winner == "" {
		winner = "none"
	}
	fmt.Fprintf(w, "Turns:   %d\n", turns)
	fmt.Fprintf(w, "Winner:  %s\n", winner)
	fmt.Fprintf(w, "Damage:  %d\n", stats.TotalDamage)
	fmt.Fprintf(w, "Healing: %d\n", stats.TotalHealing)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("scenario", "", "Path to the scenario YAML file")
	runCmd.Flags().String("replay-format", "json", "Replay format: json or binary")
	runCmd.Flags().String("out", "", "Directory for replays (default from config replay_dir)")
	runCmd.Flags().Bool("export-armies", false, "Also save the final army rosters")
	_ = runCmd.MarkFlagRequired("scenario")
}
