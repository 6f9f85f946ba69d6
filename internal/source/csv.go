package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cleared-dev/stripecsv/internal/format"
	"github.com/cleared-dev/stripecsv/internal/model"
)

// ReadCSV reads records laid out as Date,Gross,Fee,Net,Currency,Reference
// with a header row. Amounts are kept as written.
func ReadCSV(r io.Reader) ([]model.TransactionRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = format.NumFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading records CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	for i, name := range format.Columns {
		if !strings.EqualFold(strings.TrimSpace(rows[0][i]), name) {
			return nil, fmt.Errorf("header column %d: expected %q, got %q", i+1, name, rows[0][i])
		}
	}

	var records []model.TransactionRecord
	for i, row := range rows[1:] {
		rec, err := unmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// OpenCSV reads records from a CSV file on disk.
func OpenCSV(path string) ([]model.TransactionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening records %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading records %s: %w", path, err)
	}
	return records, nil
}

func unmarshalRecord(row []string) (model.TransactionRecord, error) {
	if _, err := time.Parse(model.DateFormat, row[format.ColDate]); err != nil {
		return model.TransactionRecord{}, fmt.Errorf("parsing date %q: %w", row[format.ColDate], err)
	}
	return model.TransactionRecord{
		Date:      row[format.ColDate],
		Gross:     row[format.ColGross],
		Fee:       row[format.ColFee],
		Net:       row[format.ColNet],
		Currency:  row[format.ColCurrency],
		Reference: row[format.ColRef],
	}, nil
}
