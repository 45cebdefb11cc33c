package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"tactics-sim/internal/infrastructure/storage"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <replay>",
	Short: "Print a summary of a saved replay (.json or .btrp)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		verbose, _ := cmd.Flags().GetBool("verbose")

		svc, err := storage.NewReplayService(afero.NewOsFs(), filepath.Dir(path))
		if err != nil {
			return err
		}
		export, err := svc.Load(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Session: %s\n", export.SessionID)
		fmt.Fprintf(out, "Field:   %dx%d\n", export.Width, export.Height)
		fmt.Fprintf(out, "Turns:   %d\n", len(export.Turns))

		counts := map[string]int{}
		for _, turn := range export.Turns {
			for _, act := range turn.Actions {
				counts[act.Type]++
				if !verbose {
					continue
				}
				line := fmt.Sprintf("  #%d %-6s %s %v -> %v", turn.TurnNumber, act.Type, act.Actor.ID, act.Origin, act.Destination)
				if act.Target != nil {
					line += fmt.Sprintf(" target %s", act.Target.ID)
				}
				if act.Amount != nil {
					line += fmt.Sprintf(" amount %d", *act.Amount)
				}
				fmt.Fprintln(out, line)
			}
		}
		fmt.Fprintf(out, "Heals:   %d\n", counts["heal"])
		fmt.Fprintf(out, "Attacks: %d\n", counts["attack"])
		fmt.Fprintf(out, "Moves:   %d\n", counts["move"])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolP("verbose", "v", false, "Print every action")
}
