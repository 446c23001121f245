package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/cicadas-dev/chorus/internal/output"
)

var (
	historyBranch string
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the review audit trail",
	Long:  "Show create/approve/reject/merge events recorded for this repository.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyRun(historyBranch, historyLimit)
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyBranch, "branch", "", "Filter by task branch")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum number of events")
	rootCmd.AddCommand(historyCmd)
}

func historyRun(branch string, limit int) error {
	_, root, err := getService()
	if err != nil {
		return err
	}

	s, err := getEventStore(root)
	if err != nil {
		return err
	}

	events, err := s.ListEvents(context.Background(), branch, limit)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		ui.Info("No review events recorded.")
		return nil
	}

	table := ui.Table([]string{"When", "Branch", "Action", "Actor", "Notes"})
	for _, e := range events {
		_ = table.Append([]string{
			e.CreatedAt.Format(time.RFC3339),
			output.Cyan(e.Branch),
			output.ActionColor(string(e.Action)),
			e.Actor,
			e.Notes,
		})
	}
	_ = table.Render()
	return nil
}
