// Package format turns transaction records into CSV-ready field values.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/stripecsv/internal/model"
)

// Column order of a formatted row.
const (
	NumFields   = 6
	ColDate     = 0
	ColGross    = 1
	ColFee      = 2
	ColNet      = 3
	ColCurrency = 4
	ColRef      = 5
)

// Columns are the header names, in column order.
var Columns = []string{"Date", "Gross", "Fee", "Net", "Currency", "Reference"}

// ErrUnbalanced is wrapped by FormatError when net != gross - fee.
var ErrUnbalanced = errors.New("net does not equal gross minus fee")

// FormatError reports a monetary field that cannot be emitted.
type FormatError struct {
	Field  string // column name, e.g. "Gross"
	Value  string // value as stored in the record
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s %q: %s", strings.ToLower(e.Field), e.Value, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// Amounts are the parsed monetary fields of a record.
type Amounts struct {
	Gross, Fee, Net decimal.Decimal
}

// ParseRecord parses and checks r's monetary fields: each must be a plain
// decimal within the currency's minor units, and net must equal gross
// minus fee exactly.
func ParseRecord(r model.TransactionRecord) (Amounts, error) {
	places := MinorUnits(r.Currency)

	gross, err := parseField(Columns[ColGross], r.Gross, places)
	if err != nil {
		return Amounts{}, err
	}
	fee, err := parseField(Columns[ColFee], r.Fee, places)
	if err != nil {
		return Amounts{}, err
	}
	net, err := parseField(Columns[ColNet], r.Net, places)
	if err != nil {
		return Amounts{}, err
	}

	if want := gross.Sub(fee); !net.Equal(want) {
		return Amounts{}, &FormatError{
			Field:  Columns[ColNet],
			Value:  r.Net,
			Reason: fmt.Sprintf("expected %s", want.StringFixed(places)),
			Err:    ErrUnbalanced,
		}
	}
	return Amounts{Gross: gross, Fee: fee, Net: net}, nil
}

// FormatRecord returns the six CSV fields for r in column order. Amounts
// are stripped of grouping separators and fixed to the currency's minor
// units.
func FormatRecord(r model.TransactionRecord) ([]string, error) {
	a, err := ParseRecord(r)
	if err != nil {
		return nil, err
	}
	places := MinorUnits(r.Currency)

	row := make([]string, NumFields)
	row[ColDate] = r.Date
	row[ColGross] = a.Gross.StringFixed(places)
	row[ColFee] = a.Fee.StringFixed(places)
	row[ColNet] = a.Net.StringFixed(places)
	row[ColCurrency] = r.Currency
	row[ColRef] = r.Reference
	return row, nil
}

func parseField(field, value string, places int32) (decimal.Decimal, error) {
	d, err := ParseAmount(value)
	if err != nil {
		return decimal.Decimal{}, &FormatError{Field: field, Value: value, Reason: "not a decimal number", Err: err}
	}
	if !d.Equal(d.Truncate(places)) {
		return decimal.Decimal{}, &FormatError{
			Field:  field,
			Value:  value,
			Reason: fmt.Sprintf("more than %d decimal places", places),
		}
	}
	return d, nil
}
