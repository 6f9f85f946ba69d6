package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateFormat is the layout of TransactionRecord.Date and period flags.
const DateFormat = "2006-01-02"

// DataType selects which kind of payment records are exported.
type DataType string

const (
	DataTypeCharges DataType = "charges"
	DataTypePayouts DataType = "payouts"
	DataTypeFees    DataType = "fees"
	DataTypeRefunds DataType = "refunds"
)

// DataTypes lists every supported data type in display order.
var DataTypes = []DataType{DataTypeCharges, DataTypePayouts, DataTypeFees, DataTypeRefunds}

// ParseDataType accepts either the display name ("Charges") or the
// lowercase form.
func ParseDataType(s string) (DataType, error) {
	dt := DataType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range DataTypes {
		if dt == known {
			return dt, nil
		}
	}
	return "", fmt.Errorf("unknown data type %q", s)
}

// Title returns the display name, e.g. "Charges".
func (d DataType) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// AccountingFormat controls how records are laid out in the export.
type AccountingFormat string

const (
	FormatSummary AccountingFormat = "summary" // daily totals
	FormatLine    AccountingFormat = "line"    // every transaction
)

// ParseAccountingFormat parses "summary" or "line".
func ParseAccountingFormat(s string) (AccountingFormat, error) {
	switch f := AccountingFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSummary, FormatLine:
		return f, nil
	}
	return "", fmt.Errorf("unknown accounting format %q", s)
}

// Period is an inclusive date range.
type Period struct {
	From time.Time
	To   time.Time
}

// ParsePeriod parses two YYYY-MM-DD dates. Either may be empty.
func ParsePeriod(from, to string) (Period, error) {
	var p Period
	var err error
	if from != "" {
		if p.From, err = time.Parse(DateFormat, from); err != nil {
			return Period{}, fmt.Errorf("parsing from date %q: %w", from, err)
		}
	}
	if to != "" {
		if p.To, err = time.Parse(DateFormat, to); err != nil {
			return Period{}, fmt.Errorf("parsing to date %q: %w", to, err)
		}
	}
	return p, nil
}

// IsZero reports whether neither bound is set.
func (p Period) IsZero() bool {
	return p.From.IsZero() && p.To.IsZero()
}

// Month returns the year and month an export of this period is filed
// under: the month of From, or of To when From is unset.
func (p Period) Month() (year int, month time.Month) {
	t := p.From
	if t.IsZero() {
		t = p.To
	}
	return t.Year(), t.Month()
}

// Contains reports whether date (YYYY-MM-DD) falls within the period.
// Unset bounds are open.
func (p Period) Contains(date string) bool {
	d, err := time.Parse(DateFormat, date)
	if err != nil {
		return false
	}
	if !p.From.IsZero() && d.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && d.After(p.To) {
		return false
	}
	return true
}

// ExportParams is the full configuration of one export or preview. It is
// built once from user input and passed by value.
type ExportParams struct {
	DataType DataType         `validate:"required,oneof=charges payouts fees refunds"`
	Format   AccountingFormat `validate:"required,oneof=summary line"`
	Period   Period
}

var validate = validator.New()

// ErrPeriodOrder is returned when the period ends before it starts.
var ErrPeriodOrder = errors.New("period ends before it starts")

// Validate checks the data type, accounting format and period ordering.
func (p ExportParams) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid export parameters: %w", err)
	}
	if !p.Period.From.IsZero() && !p.Period.To.IsZero() && p.Period.To.Before(p.Period.From) {
		return fmt.Errorf("invalid export parameters: %w", ErrPeriodOrder)
	}
	return nil
}
