package gate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type errAuthorizer struct{ err error }

func (a errAuthorizer) MayExport() (bool, error) { return false, a.err }

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(Entitlement{Paid: true}))
	assert.ErrorIs(t, Check(Entitlement{Paid: false}), ErrPaymentRequired)
	assert.ErrorIs(t, Check(nil), ErrPaymentRequired, "no authorizer means no export")
}

func TestCheck_AuthorizerError(t *testing.T) {
	boom := errors.New("billing service down")
	err := Check(errAuthorizer{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrPaymentRequired)
}

func TestNotice(t *testing.T) {
	assert.Equal(t, "Export requires payment.", ErrPaymentRequired.Error())
}
