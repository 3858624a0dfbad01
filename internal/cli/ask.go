package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/concept-clarity/internal/transport/rest"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Answer a question from the glossary",
		Example: `  clarity ask What is blockchain?
  clarity ask --json "tell me about wallets"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.newService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			res, err := svc.Predict(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rest.NewPredictResponse(res))
			}

			fmt.Fprintln(out, res.Answer)
			fmt.Fprintf(out, "confidence: %.2f (%s)\n", res.Confidence, res.Tier)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the API response shape")
	return cmd
}
