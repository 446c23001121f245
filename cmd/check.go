package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cicadas-dev/chorus/internal/packet"
)

var checkBranch string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a review packet's structure",
	Long: `Check that a packet still has the fields chorus rewrites.

set-approval only replaces lines that are present, so a hand-edited packet
that lost a field stays broken silently. check makes that visible.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkRun(checkBranch)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkBranch, "branch", "", "Task branch (defaults to current)")
	rootCmd.AddCommand(checkCmd)
}

func checkRun(branch string) error {
	svc, _, err := getService()
	if err != nil {
		return err
	}

	path, lines, err := svc.Load(branch)
	if err != nil {
		return err
	}

	checks := packet.Lint(lines)
	failed := 0
	for _, c := range checks {
		if c.Passed {
			ui.Success("%s: %s", c.Name, c.Detail)
		} else {
			ui.Error("%s: %s", c.Name, c.Detail)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed for %s", failed, path)
	}
	return nil
}
