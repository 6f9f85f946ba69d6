package export

import (
	"fmt"

	"github.com/cleared-dev/stripecsv/internal/blob"
	"github.com/cleared-dev/stripecsv/internal/delivery"
	"github.com/cleared-dev/stripecsv/internal/model"
)

// Exporter builds documents and hands them to a Deliverer. It keeps no
// state between calls; each export owns its own blob handle.
type Exporter struct {
	blobs     *blob.Store
	deliverer delivery.Deliverer
}

// NewExporter creates an Exporter. A nil store gets a private one.
func NewExporter(deliverer delivery.Deliverer, blobs *blob.Store) *Exporter {
	if blobs == nil {
		blobs = blob.NewStore()
	}
	return &Exporter{blobs: blobs, deliverer: deliverer}
}

// Prepare lays out records per params.Format and builds the document
// without delivering it.
func Prepare(params model.ExportParams, records []model.TransactionRecord) (*Document, error) {
	if params.Format == model.FormatSummary {
		var err error
		if records, err = Summarize(records); err != nil {
			return nil, err
		}
	}

	data, err := Build(records)
	if err != nil {
		return nil, err
	}
	return &Document{
		Name:        Filename(params.DataType, params.Period),
		ContentType: ContentType,
		Data:        data,
	}, nil
}

// Export builds the document for records and delivers it. Nothing is
// delivered unless every record formats.
func (e *Exporter) Export(params model.ExportParams, records []model.TransactionRecord) (*Document, error) {
	doc, err := Prepare(params, records)
	if err != nil {
		return nil, err
	}
	if err := e.Deliver(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Deliver exposes doc through a blob handle for the duration of the
// download. The handle is revoked on every return path, including a
// panicking Deliverer.
func (e *Exporter) Deliver(doc *Document) error {
	if e.deliverer == nil {
		return &DeliveryError{Filename: doc.Name, Err: errNoDeliverer}
	}

	h, err := e.blobs.Create(doc.Data, doc.ContentType)
	if err != nil {
		return &DeliveryError{Filename: doc.Name, Err: err}
	}
	defer e.blobs.Revoke(h.URL)

	data, err := e.blobs.Open(h.URL)
	if err != nil {
		return &DeliveryError{Filename: doc.Name, Err: fmt.Errorf("opening handle: %w", err)}
	}
	if err := e.deliverer.Deliver(data, h.ContentType, doc.Name); err != nil {
		return &DeliveryError{Filename: doc.Name, Err: err}
	}
	return nil
}
