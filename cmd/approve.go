package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cicadas-dev/chorus/internal/models"
)

var (
	approveBranch   string
	approveReviewer string
	approveDecision string
	approveNotes    string
)

var setApprovalCmd = &cobra.Command{
	Use:   "set-approval",
	Short: "Approve or reject a review packet",
	Long: `Record an approval decision on an existing review packet.

Rewrites the packet's approval fields in place; all narrative sections are
preserved verbatim. The timestamp is refreshed on every update, including
rejections.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setApprovalRun(approveBranch, approveReviewer, approveDecision, approveNotes)
	},
}

func init() {
	setApprovalCmd.Flags().StringVar(&approveBranch, "branch", "", "Task branch (defaults to current)")
	setApprovalCmd.Flags().StringVar(&approveReviewer, "reviewer", "", "Reviewer identity (required)")
	setApprovalCmd.Flags().StringVar(&approveDecision, "decision", "approve", "Decision: approve or reject")
	setApprovalCmd.Flags().StringVar(&approveNotes, "notes", "", "Review notes")
	_ = setApprovalCmd.MarkFlagRequired("reviewer")
	rootCmd.AddCommand(setApprovalCmd)
}

func setApprovalRun(branch, reviewer, decision, notes string) error {
	var approved bool
	switch decision {
	case "approve":
		approved = true
	case "reject":
		approved = false
	default:
		return fmt.Errorf("invalid --decision %q (expected approve or reject)", decision)
	}

	svc, root, err := getService()
	if err != nil {
		return err
	}

	if dryRun {
		ui.DryRunMsg("Would mark packet for %s as %s", branchLabel(branch), decision)
		return nil
	}

	res, err := svc.SetApproval(branch, reviewer, approved, notes)
	if err != nil {
		return err
	}

	action := models.EventApproved
	if !approved {
		action = models.EventRejected
	}
	recordEvent(root, &models.ReviewEvent{
		Branch: res.Branch,
		Action: action,
		Actor:  reviewer,
		Notes:  notes,
	})

	ui.Success("Updated review packet: %s", res.Path)
	return nil
}
