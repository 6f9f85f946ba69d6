// Package export assembles transaction records into a CSV document and
// delivers it as a downloadable file.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/cleared-dev/stripecsv/internal/format"
	"github.com/cleared-dev/stripecsv/internal/model"
)

// Header is the first line of every export.
const Header = "Date,Gross,Fee,Net,Currency,Reference"

// ContentType is the MIME type the document is delivered with.
const ContentType = "text/csv;charset=utf-8"

// Document is a finished CSV export. It lives only until it is delivered.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// Build formats records in the order given and joins them under Header
// with "\n" separators. Fields are quoted per RFC 4180 where needed. The
// document has no trailing newline. Any formatting failure aborts the
// whole build.
func Build(records []model.TransactionRecord) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, r := range records {
		row, err := format.FormatRecord(r)
		if err != nil {
			return nil, &ExportError{Reference: r.Reference, Row: i + 1, Err: err}
		}
		if err := cw.Write(row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Filename returns the download name for an export, e.g.
// "stripe-charges-2024-01.csv".
func Filename(dataType model.DataType, period model.Period) string {
	year, month := period.Month()
	return fmt.Sprintf("stripe-%s-%04d-%02d.csv", strings.ToLower(string(dataType)), year, int(month))
}
