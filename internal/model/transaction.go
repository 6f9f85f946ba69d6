package model

// TransactionRecord is one financial event as supplied by the record source.
// Amounts are kept as the source's decimal strings, which may carry grouping
// commas ("1,250.00"). Records are values and are never modified in place.
type TransactionRecord struct {
	Date      string // YYYY-MM-DD
	Gross     string
	Fee       string
	Net       string // gross - fee
	Currency  string // ISO 4217, e.g. "USD"
	Reference string // unique within an export
}
