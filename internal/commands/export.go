package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/stripecsv/internal/blob"
	"github.com/cleared-dev/stripecsv/internal/delivery"
	"github.com/cleared-dev/stripecsv/internal/export"
	"github.com/cleared-dev/stripecsv/internal/gate"
)

func newExportCommand() *cobra.Command {
	var flags exportFlags
	var outDir string
	var paid bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions as a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				cfg.Export.OutputDir = outDir
			}
			if cmd.Flags().Changed("paid") {
				cfg.Billing.Paid = paid
			}

			params, err := flags.params(cfg)
			if err != nil {
				return err
			}
			provider, err := flags.provider(cfg)
			if err != nil {
				return err
			}

			var deliverer delivery.Deliverer
			if cfg.Export.OutputDir == "-" {
				deliverer = &delivery.Writer{W: cmd.OutOrStdout()}
			} else {
				deliverer = delivery.NewDir(cfg.Export.OutputDir)
			}

			log := newLogger(cmd, cfg)
			exporter := export.NewExporter(deliverer, blob.NewStore())
			svc := export.NewService(provider, gate.Entitlement{Paid: cfg.Billing.Paid}, exporter, log)

			doc, err := svc.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if cfg.Export.OutputDir == "-" {
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", doc.Name, len(doc.Data))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&outDir, "out", "", `download directory, or "-" for stdout`)
	cmd.Flags().BoolVar(&paid, "paid", false, "payment status (overrides config)")

	return cmd
}
