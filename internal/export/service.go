package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/stripecsv/internal/gate"
	"github.com/cleared-dev/stripecsv/internal/model"
	"github.com/cleared-dev/stripecsv/internal/source"
)

// DefaultPreviewRows is the number of rows Preview shows when asked for 0.
const DefaultPreviewRows = 5

// ErrNoPeriod is returned by Run when the export has no date range.
var ErrNoPeriod = errors.New("export period is required")

// Service wires the record source, the payment gate and the Exporter.
type Service struct {
	records  source.Provider
	auth     gate.Authorizer
	exporter *Exporter
	log      zerolog.Logger
}

// NewService creates a Service.
func NewService(records source.Provider, auth gate.Authorizer, exporter *Exporter, log zerolog.Logger) *Service {
	return &Service{
		records:  records,
		auth:     auth,
		exporter: exporter,
		log:      log.With().Str("component", "export").Logger(),
	}
}

// Run exports every record matching params. It fails with
// gate.ErrPaymentRequired, without fetching or delivering anything, when
// the authorizer denies the export.
func (s *Service) Run(ctx context.Context, params model.ExportParams) (*Document, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Period.IsZero() {
		return nil, ErrNoPeriod
	}

	if err := gate.Check(s.auth); err != nil {
		s.log.Warn().Err(err).Str("data_type", string(params.DataType)).Msg("Export rejected")
		return nil, err
	}

	records, err := source.Collect(ctx, s.records, queryFor(params))
	if err != nil {
		return nil, fmt.Errorf("collecting %s: %w", params.DataType, err)
	}

	s.log.Info().
		Str("data_type", string(params.DataType)).
		Str("format", string(params.Format)).
		Int("records", len(records)).
		Msg("Exporting")

	doc, err := s.exporter.Export(params, records)
	if err != nil {
		s.log.Error().Err(err).Msg("Export failed")
		return nil, err
	}

	s.log.Info().
		Str("filename", doc.Name).
		Int("bytes", len(doc.Data)).
		Msg("Export delivered")
	return doc, nil
}

// Preview returns up to n records for display, fetching pages until it has
// n or the source is exhausted. Line previews keep the display form; summary
// previews show the daily totals of those records. It is not gated.
func (s *Service) Preview(ctx context.Context, params model.ExportParams, n int) ([]model.TransactionRecord, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultPreviewRows
	}

	records, err := source.CollectN(ctx, s.records, queryFor(params), n)
	if err != nil {
		return nil, fmt.Errorf("fetching preview: %w", err)
	}
	if params.Format == model.FormatSummary {
		if records, err = Summarize(records); err != nil {
			return nil, err
		}
	}
	s.log.Debug().Int("rows", len(records)).Msg("Preview")
	return records, nil
}

func queryFor(params model.ExportParams) source.Query {
	return source.Query{DataType: params.DataType, Period: params.Period}
}
