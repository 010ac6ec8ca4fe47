package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/framestack/envelope-engine/internal/config"
	"github.com/framestack/envelope-engine/internal/repo"
)

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "List archived envelope runs or show one run's report",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		store := repo.NewRunStore(cfg.Archive.Dir)
		if !store.Enabled() {
			return fmt.Errorf("run archive not configured (set archive.dir)")
		}

		if len(args) == 1 {
			report, err := store.LoadReport(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("run %s  %s → %s\n", report.RunID,
				report.StartedAt.Format("2006-01-02 15:04:05"),
				report.FinishedAt.Format("15:04:05"))
			fmt.Printf("selection: %v  elements: %d\n", report.Selection, report.Elements)
			for _, outcome := range report.Outcomes {
				line := fmt.Sprintf("  %-3s %-12s extracted=%d skipped=%d",
					outcome.CombinationID, outcome.Status,
					outcome.ElementsExtracted, outcome.ElementsSkipped)
				if outcome.Reason != "" {
					line += "  (" + outcome.Reason + ")"
				}
				fmt.Println(line)
			}
			for _, artifact := range report.Artifacts {
				fmt.Printf("  artifact: %s\n", artifact)
			}
			return nil
		}

		ids, err := store.ListRuns()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("no archived runs")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
