package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/octobees/leads-enricher/internal/auth"
	"github.com/octobees/leads-enricher/internal/config"
	"github.com/octobees/leads-enricher/internal/database"
	"github.com/octobees/leads-enricher/internal/service"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.Up), string(database.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			dir := database.Direction(strings.ToLower(args[0]))
			if err := database.Migrate(cfg.DatabaseURL, dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", dir)
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			authService := service.NewAuthService(cfg.Operator, auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL))
			token, err := authService.IssueToken(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Token subject (required)")
	if err := cmd.MarkFlagRequired("subject"); err != nil {
		panic(fmt.Sprintf("failed to mark subject flag as required: %v", err))
	}
	return cmd
}
