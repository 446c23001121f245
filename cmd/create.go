package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cicadas-dev/chorus/internal/models"
	"github.com/cicadas-dev/chorus/internal/output"
)

var (
	createBranch string
	createBase   string
)

var createReviewCmd = &cobra.Command{
	Use:   "create-review",
	Short: "Create a review packet for a task branch",
	Long: `Create a review packet for a task branch.

Without --branch, uses the currently checked-out branch. Without --base,
infers it from the branch name (task/<name>/... compares against feat/<name>).
Creation is idempotent: an existing packet is never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return createReviewRun(createBranch, createBase)
	},
}

func init() {
	createReviewCmd.Flags().StringVar(&createBranch, "branch", "", "Task branch (defaults to current)")
	createReviewCmd.Flags().StringVar(&createBase, "base", "", "Base branch to compare against")
	rootCmd.AddCommand(createReviewCmd)
}

func createReviewRun(branch, base string) error {
	svc, root, err := getService()
	if err != nil {
		return err
	}

	if dryRun {
		ui.DryRunMsg("Would create review packet for %s", branchLabel(branch))
		return nil
	}

	res, err := svc.Create(branch, base)
	if err != nil {
		return err
	}

	if !res.Created {
		ui.Info("Review packet already exists: %s", res.Path)
		return nil
	}

	recordEvent(root, &models.ReviewEvent{
		Branch: res.Branch,
		Base:   res.Base,
		Action: models.EventCreated,
	})

	ui.Success("Created review packet: %s", res.Path)
	ui.VerboseLog("Comparing %s against %s", output.Cyan(res.Branch), output.Cyan(res.Base))
	return nil
}
