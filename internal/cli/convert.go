package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/concept-clarity/internal/adapter/glossaryfile"
	"github.com/heartmarshall/concept-clarity/internal/domain"
)

func newConvertCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert <src> <dst>",
		Short: "Rewrite a glossary file as JSON or YAML, keeping term order",
		Long: `Convert loads a glossary and saves it to dst. Formats follow the file
extensions (.yaml/.yml or JSON) unless --from/--to are given.`,
		Example: `  clarity convert dataset/fintech_terms.json dataset/fintech_terms.yaml`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]

			srcFormat, err := glossaryfile.ParseFormat(from)
			if err != nil {
				return err
			}
			dstFormat, err := glossaryfile.ParseFormat(to)
			if err != nil {
				return err
			}

			g, err := glossaryfile.Read(src, srcFormat)
			if err != nil {
				return err
			}
			if err := glossaryfile.Save(cmd.Context(), dst, dstFormat, g); err != nil {
				return err
			}
			if err := verifyRoundTrip(g, dst, dstFormat); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "converted %d terms: %s -> %s\n", g.Len(), src, dst)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "auto", "source format: auto, json or yaml")
	cmd.Flags().StringVar(&to, "to", "auto", "destination format: auto, json or yaml")
	return cmd
}

// verifyRoundTrip re-reads path and checks it holds exactly want, in order.
func verifyRoundTrip(want *domain.Glossary, path string, format glossaryfile.Format) error {
	got, err := glossaryfile.Read(path, format)
	if err != nil {
		return fmt.Errorf("verify %s: %w", path, err)
	}
	if !want.Equal(got) {
		return fmt.Errorf("verify %s: written glossary differs from source (%d terms, want %d)", path, got.Len(), want.Len())
	}
	return nil
}
