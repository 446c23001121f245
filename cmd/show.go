package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cicadas-dev/chorus/internal/output"
	"github.com/cicadas-dev/chorus/internal/packet"
)

var (
	showBranch string
	showRaw    bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a review packet",
	Long:  "Show a packet's parsed fields, or the raw file with --raw.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showRun(showBranch)
	},
}

func init() {
	showCmd.Flags().StringVar(&showBranch, "branch", "", "Task branch (defaults to current)")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the raw packet file")
	rootCmd.AddCommand(showCmd)
}

func showRun(branch string) error {
	svc, _, err := getService()
	if err != nil {
		return err
	}

	path, lines, err := svc.Load(branch)
	if err != nil {
		return err
	}

	if showRaw {
		for _, line := range lines {
			fmt.Fprintln(ui.Out, line)
		}
		return nil
	}

	p := packet.Parse(lines)
	ui.Info("Packet: %s", path)
	fmt.Fprintln(ui.Out)
	fmt.Fprintf(ui.Out, "  %-10s %s\n", "Branch", output.Cyan(p.Branch))
	fmt.Fprintf(ui.Out, "  %-10s %s\n", "Base", p.Base)
	fmt.Fprintf(ui.Out, "  %-10s %s\n", "Compare", p.CompareRange)
	fmt.Fprintf(ui.Out, "  %-10s %s\n", "Created", p.CreatedAt)
	fmt.Fprintf(ui.Out, "  %-10s %s\n", "Approved", output.ApprovalColor(p.Approved))
	fmt.Fprintf(ui.Out, "  %-10s %s\n", "Reviewer", p.Reviewer)
	fmt.Fprintf(ui.Out, "  %-10s %s\n", "Timestamp", p.ApprovedAt)
	fmt.Fprintf(ui.Out, "  %-10s %s\n", "Notes", p.Notes)
	return nil
}
