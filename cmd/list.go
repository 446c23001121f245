package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cicadas-dev/chorus/internal/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List review packets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRun()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listRun() error {
	svc, _, err := getService()
	if err != nil {
		return err
	}

	infos, err := svc.ListPackets()
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		ui.Info("No review packets. Use 'chorus create-review' to get started.")
		return nil
	}

	table := ui.Table([]string{"Branch", "Base", "Approved", "Reviewer", "Created"})
	for _, info := range infos {
		_ = table.Append([]string{
			output.Cyan(info.Packet.Branch),
			info.Packet.Base,
			output.ApprovalColor(info.Packet.Approved),
			info.Packet.Reviewer,
			info.Packet.CreatedAt,
		})
	}
	_ = table.Render()
	return nil
}
