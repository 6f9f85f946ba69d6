// Package source supplies transaction records to the exporter.
package source

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cleared-dev/stripecsv/internal/model"
)

// DefaultPageSize is used by Static when PageSize is unset.
const DefaultPageSize = 100

// Query selects records for one export.
type Query struct {
	DataType model.DataType
	Period   model.Period
}

// Page is one batch of records. Next is empty on the last page.
type Page struct {
	Records []model.TransactionRecord
	Next    string
}

// Provider is a paginated record source. Records are returned already
// filtered to the query and in export order.
type Provider interface {
	Page(ctx context.Context, q Query, cursor string) (Page, error)
}

// Collect drains every page of p in order.
func Collect(ctx context.Context, p Provider, q Query) ([]model.TransactionRecord, error) {
	return CollectN(ctx, p, q, 0)
}

// CollectN is Collect that stops fetching once it holds limit records and
// returns at most limit. A limit of 0 or less means no limit.
func CollectN(ctx context.Context, p Provider, q Query, limit int) ([]model.TransactionRecord, error) {
	var records []model.TransactionRecord
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := p.Page(ctx, q, cursor)
		if err != nil {
			return nil, fmt.Errorf("fetching page %q: %w", cursor, err)
		}
		records = append(records, page.Records...)
		if limit > 0 && len(records) >= limit {
			return records[:limit], nil
		}
		if page.Next == "" {
			return records, nil
		}
		if page.Next == cursor {
			return nil, fmt.Errorf("provider returned cursor %q twice", cursor)
		}
		cursor = page.Next
	}
}

// Static serves a fixed record set, filtered by the query period.
type Static struct {
	Records  []model.TransactionRecord
	PageSize int
}

// NewStatic returns a Static over records.
func NewStatic(records []model.TransactionRecord) *Static {
	return &Static{Records: records}
}

// Page implements Provider. The cursor is the offset into the filtered set.
func (s *Static) Page(_ context.Context, q Query, cursor string) (Page, error) {
	offset := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 0 {
			return Page{}, fmt.Errorf("invalid cursor %q", cursor)
		}
		offset = n
	}

	var matched []model.TransactionRecord
	for _, r := range s.Records {
		if q.Period.Contains(r.Date) {
			matched = append(matched, r)
		}
	}
	if offset >= len(matched) {
		return Page{}, nil
	}

	size := s.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	end := min(offset+size, len(matched))

	page := Page{Records: matched[offset:end]}
	if end < len(matched) {
		page.Next = strconv.Itoa(end)
	}
	return page, nil
}

// Sample returns the built-in preview dataset.
func Sample() []model.TransactionRecord {
	return []model.TransactionRecord{
		{Date: "2024-01-15", Gross: "1,250.00", Fee: "36.25", Net: "1,213.75", Currency: "USD", Reference: "ch_1MqFv..."},
		{Date: "2024-01-16", Gross: "2,840.50", Fee: "82.37", Net: "2,758.13", Currency: "USD", Reference: "ch_1MqGw..."},
		{Date: "2024-01-17", Gross: "945.00", Fee: "27.41", Net: "917.59", Currency: "USD", Reference: "ch_1MqHx..."},
		{Date: "2024-01-18", Gross: "3,120.75", Fee: "90.50", Net: "3,030.25", Currency: "USD", Reference: "ch_1MqIy..."},
		{Date: "2024-01-19", Gross: "1,680.00", Fee: "48.72", Net: "1,631.28", Currency: "USD", Reference: "ch_1MqJz..."},
	}
}
