package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/stripecsv/internal/export"
	"github.com/cleared-dev/stripecsv/internal/format"
	"github.com/cleared-dev/stripecsv/internal/gate"
	"github.com/cleared-dev/stripecsv/internal/model"
)

func newPreviewCommand() *cobra.Command {
	var flags exportFlags
	var rows int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show a sample of the rows an export would contain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			params, err := flags.params(cfg)
			if err != nil {
				return err
			}
			provider, err := flags.provider(cfg)
			if err != nil {
				return err
			}

			auth := gate.Entitlement{Paid: cfg.Billing.Paid}
			svc := export.NewService(provider, auth, nil, newLogger(cmd, cfg))
			records, err := svc.Preview(cmd.Context(), params, rows)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, %s\n\n", params.DataType.Title(), formatLabel(params.Format))
			if err := writeTable(out, records); err != nil {
				return err
			}
			if !cfg.Billing.Paid {
				fmt.Fprintf(out, "\nPreview only. %s\n", gate.Notice)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&rows, "rows", export.DefaultPreviewRows, "number of rows to show")

	return cmd
}

func formatLabel(f model.AccountingFormat) string {
	if f == model.FormatSummary {
		return "Summary (daily totals)"
	}
	return "Line-by-line (every transaction)"
}

// writeTable prints records in display form under the export header.
func writeTable(w io.Writer, records []model.TransactionRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, col := range format.Columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Date, r.Gross, r.Fee, r.Net, r.Currency, r.Reference)
	}
	return tw.Flush()
}
