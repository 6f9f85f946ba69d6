package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/stripecsv/internal/config"
	"github.com/cleared-dev/stripecsv/internal/logging"
	"github.com/cleared-dev/stripecsv/internal/model"
	"github.com/cleared-dev/stripecsv/internal/source"
)

// exportFlags are shared by preview and export.
type exportFlags struct {
	from       string
	to         string
	dataType   string
	format     string
	sourcePath string
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.dataType, "type", "", "data type: Charges, Payouts, Fees or Refunds")
	cmd.Flags().StringVar(&f.format, "format", "", "accounting format: summary (daily totals) or line (every transaction)")
	cmd.Flags().StringVar(&f.sourcePath, "source", "", "records CSV to export instead of the built-in sample")
}

// params builds ExportParams from flags, falling back to cfg.
func (f *exportFlags) params(cfg *config.Config) (model.ExportParams, error) {
	dataType := cfg.Export.DataType
	if f.dataType != "" {
		dataType = f.dataType
	}
	accFormat := cfg.Export.Format
	if f.format != "" {
		accFormat = f.format
	}

	dt, err := model.ParseDataType(dataType)
	if err != nil {
		return model.ExportParams{}, err
	}
	af, err := model.ParseAccountingFormat(accFormat)
	if err != nil {
		return model.ExportParams{}, err
	}
	period, err := model.ParsePeriod(f.from, f.to)
	if err != nil {
		return model.ExportParams{}, err
	}
	return model.ExportParams{DataType: dt, Format: af, Period: period}, nil
}

func (f *exportFlags) provider(cfg *config.Config) (source.Provider, error) {
	path := cfg.Source.Path
	if f.sourcePath != "" {
		path = f.sourcePath
	}

	records := source.Sample()
	if path != "" {
		var err error
		if records, err = source.OpenCSV(path); err != nil {
			return nil, err
		}
	}
	return &source.Static{Records: records, PageSize: cfg.Source.PageSize}, nil
}

// loadConfig reads .env, the --config file and STRIPECSV_* overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotenv(); err != nil {
		return nil, err
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) zerolog.Logger {
	return logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Out:    cmd.ErrOrStderr(),
	})
}
