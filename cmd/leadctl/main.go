// Command leadctl runs the enrichment pipeline and operator chores from the shell.
package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "leadctl",
		Short:         "Lead enrichment utilities",
		Long:          "leadctl scrapes companies, resolves their social profiles, migrates the database and issues operator tokens.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEnrichCmd(), newSocialCmd(), newMigrateCmd(), newTokenCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
