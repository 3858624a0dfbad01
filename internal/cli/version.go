package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/concept-clarity/internal/app"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clarity %s\n", app.BuildVersion())
		},
	}
}
