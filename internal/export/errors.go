package export

import (
	"errors"
	"fmt"
)

// ExportError reports a record that could not be formatted. No document
// is produced when one occurs.
type ExportError struct {
	Reference string
	Row       int // 1-based position in the input
	Err       error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("record %d (%s): %v", e.Row, e.Reference, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// DeliveryError reports that the finished document could not be handed
// to the host's file-save capability.
type DeliveryError struct {
	Filename string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivering %s: %v", e.Filename, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// errNoDeliverer is wrapped by DeliveryError when the Exporter has no
// Deliverer configured.
var errNoDeliverer = errors.New("no file delivery configured")
