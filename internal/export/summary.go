package export

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/stripecsv/internal/format"
	"github.com/cleared-dev/stripecsv/internal/model"
)

type dailyKey struct {
	date     string
	currency string
}

type dailyTotal struct {
	gross, fee, net decimal.Decimal
	count           int
}

// Summarize collapses records into daily totals, one row per date and
// currency, in the order each pair first appears.
func Summarize(records []model.TransactionRecord) ([]model.TransactionRecord, error) {
	totals := make(map[dailyKey]*dailyTotal)
	var order []dailyKey

	for i, r := range records {
		a, err := format.ParseRecord(r)
		if err != nil {
			return nil, &ExportError{Reference: r.Reference, Row: i + 1, Err: err}
		}

		key := dailyKey{date: r.Date, currency: r.Currency}
		t, ok := totals[key]
		if !ok {
			t = &dailyTotal{}
			totals[key] = t
			order = append(order, key)
		}
		t.gross = t.gross.Add(a.Gross)
		t.fee = t.fee.Add(a.Fee)
		t.net = t.net.Add(a.Net)
		t.count++
	}

	out := make([]model.TransactionRecord, 0, len(order))
	for _, key := range order {
		t := totals[key]
		places := format.MinorUnits(key.currency)
		out = append(out, model.TransactionRecord{
			Date:      key.date,
			Gross:     t.gross.StringFixed(places),
			Fee:       t.fee.StringFixed(places),
			Net:       t.net.StringFixed(places),
			Currency:  key.currency,
			Reference: fmt.Sprintf("daily-%s-%s-%d", key.date, key.currency, t.count),
		})
	}
	return out, nil
}
