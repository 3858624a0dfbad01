// Package cli implements the clarity command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/concept-clarity/internal/config"
)

type rootOptions struct {
	configPath   string
	glossaryPath string
}

// NewRootCmd builds the clarity command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "clarity",
		Short:         "Concept Clarity: answers FinTech questions from a local glossary",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `Concept Clarity matches questions against a glossary of FinTech terms
and returns the best definition with a confidence score. Run "clarity serve"
for the HTTP API or ask questions directly from the shell.`,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config (default $CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.glossaryPath, "glossary", "", "glossary file path (overrides glossary.path)")

	root.AddCommand(
		newServeCmd(opts),
		newAskCmd(opts),
		newStatsCmd(opts),
		newConvertCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI until completion or SIGINT/SIGTERM and exits 1 on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the config and applies the --glossary override.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.glossaryPath != "" {
		cfg.Glossary.Path = o.glossaryPath
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config: validate: %w", err)
		}
	}
	return cfg, nil
}
