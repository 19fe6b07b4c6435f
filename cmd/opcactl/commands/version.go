package commands

import (
	"github.com/spf13/cobra"

	"github.com/ihoflaz/opca-admin-dashboard/internal/version"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(version.Get())
		},
	}
}
