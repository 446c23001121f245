package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	diffBranch string
	diffBase   string
	diffStat   bool
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show the changes a review covers",
	Long: `Diff the task branch against its base.

This is the same range the packet's Review Commands section lists, without
copy-pasting the git invocation by hand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return diffRun(diffBranch, diffBase, diffStat)
	},
}

func init() {
	diffCmd.Flags().StringVar(&diffBranch, "branch", "", "Task branch (defaults to current)")
	diffCmd.Flags().StringVar(&diffBase, "base", "", "Base branch (defaults to inferred)")
	diffCmd.Flags().BoolVar(&diffStat, "stat", false, "Show a diffstat summary instead of the full diff")
	rootCmd.AddCommand(diffCmd)
}

func diffRun(branch, base string, stat bool) error {
	svc, _, err := getService()
	if err != nil {
		return err
	}

	res, err := svc.Diff(branch, base, stat)
	if err != nil {
		return err
	}

	if res.Output == "" {
		ui.Info("No changes between %s and %s", res.Base, res.Branch)
		return nil
	}
	fmt.Fprintln(ui.Out, res.Output)
	return nil
}
