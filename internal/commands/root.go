package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/stripecsv/internal/buildinfo"
	"github.com/cleared-dev/stripecsv/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "stripecsv",
		Short:   "Export Stripe transactions as accounting CSV",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", config.FileName, "config file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newPreviewCommand())
	rootCmd.AddCommand(newExportCommand())

	return rootCmd
}
