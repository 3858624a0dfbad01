package cli

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/concept-clarity/internal/app"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var noBanner bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve /predict, /stats, /reload and the health endpoints until
SIGINT or SIGTERM. SIGHUP reloads the glossary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if !noBanner {
				printBanner(cmd.ErrOrStderr(), cfg)
				defer printShutdownBanner(cmd.ErrOrStderr())
			}
			return app.Run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().BoolVar(&noBanner, "no-banner", false, "skip the startup banner")
	return cmd
}
