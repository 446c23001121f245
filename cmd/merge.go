package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cicadas-dev/chorus/internal/models"
	"github.com/cicadas-dev/chorus/internal/output"
)

var (
	mergeBranch string
	mergeInto   string
)

var mergeIfApprovedCmd = &cobra.Command{
	Use:   "merge-if-approved",
	Short: "Merge a task branch if its review packet is approved",
	Long: `Merge a task branch into its base, gated on the review packet.

The packet must exist and carry an affirmative approval before any
repository mutation happens. Merge conflicts surface as-is; resolve them
with git and re-invoke.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mergeIfApprovedRun(mergeBranch, mergeInto)
	},
}

func init() {
	mergeIfApprovedCmd.Flags().StringVar(&mergeBranch, "branch", "", "Task branch (defaults to current)")
	mergeIfApprovedCmd.Flags().StringVar(&mergeInto, "into", "", "Base branch to merge into (defaults to inferred)")
	rootCmd.AddCommand(mergeIfApprovedCmd)
}

func mergeIfApprovedRun(branch, into string) error {
	svc, root, err := getService()
	if err != nil {
		return err
	}

	if dryRun {
		ui.DryRunMsg("Would merge %s if approved", branchLabel(branch))
		return nil
	}

	res, err := svc.MergeIfApproved(branch, into)
	if err != nil {
		return err
	}

	recordEvent(root, &models.ReviewEvent{
		Branch: res.Branch,
		Base:   res.Base,
		Action: models.EventMerged,
	})

	ui.Success("Merged %s into %s", output.Cyan(res.Branch), output.Cyan(res.Base))
	return nil
}
