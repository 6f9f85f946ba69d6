// Package gate decides whether the user may export.
package gate

import "errors"

// Notice is shown to users who try to export without paying.
const Notice = "Export requires payment."

// ErrPaymentRequired is returned when the authorizer denies an export.
var ErrPaymentRequired = errors.New(Notice)

// Authorizer reports whether an export may run.
type Authorizer interface {
	MayExport() (bool, error)
}

// Entitlement authorizes exports from a known payment status.
type Entitlement struct {
	Paid bool
}

// MayExport reports the payment status.
func (e Entitlement) MayExport() (bool, error) {
	return e.Paid, nil
}

// Check returns ErrPaymentRequired unless a allows exporting.
func Check(a Authorizer) error {
	if a == nil {
		return ErrPaymentRequired
	}
	ok, err := a.MayExport()
	if err != nil {
		return err
	}
	if !ok {
		return ErrPaymentRequired
	}
	return nil
}
