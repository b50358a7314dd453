package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eleven-am/taskdeck/pkg/taskdeck"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display taskdeck version and build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), taskdeck.FullVersionInfo())
		},
	}
}
