package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/octobees/leads-enricher/internal/app"
	"github.com/octobees/leads-enricher/internal/config"
	"github.com/octobees/leads-enricher/internal/logging"
)

func newEnrichCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "enrich <source>...",
		Short: "Scrape companies by website or name and print the enriched data as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			pipeline, logger, err := buildPipeline(ctx)
			if err != nil {
				return err
			}
			defer pipeline.Close()
			defer func() { _ = logger.Sync() }()

			items := pipeline.Scrape.ScrapeMany(ctx, args)
			return writeJSON(cmd, items)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall time limit")
	return cmd
}

func newSocialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "social <company name>",
		Short: "Resolve the official social profiles of a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, logger, err := buildPipeline(cmd.Context())
			if err != nil {
				return err
			}
			defer pipeline.Close()
			defer func() { _ = logger.Sync() }()

			return writeJSON(cmd, pipeline.Resolver.Resolve(cmd.Context(), args[0]))
		},
	}
}

// buildPipeline wires the pipeline without metrics; CLI logs go to stderr
// at warn level unless LOG_LEVEL says otherwise.
func buildPipeline(ctx context.Context) (*app.Pipeline, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cliLogLevel(cfg), "console")
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	pipeline, err := app.NewPipeline(ctx, cfg, logger, nil)
	if err != nil {
		return nil, nil, err
	}
	return pipeline, logger, nil
}

func cliLogLevel(cfg *config.Config) string {
	if cfg.LogLevel == "" || cfg.LogLevel == "info" {
		return "warn"
	}
	return cfg.LogLevel
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
