package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/concept-clarity/internal/transport/rest"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the glossary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.newService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			stats, err := svc.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rest.NewStatsResponse(stats))
			}

			fmt.Fprintf(out, "Total terms:  %d\n", stats.TotalTerms)
			fmt.Fprintf(out, "Sample terms: %s\n", strings.Join(stats.SampleTerms, ", "))
			fmt.Fprintf(out, "Categories:   %s\n", strings.Join(stats.Categories, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
