package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), expected)
	}
}

// AssertDecimalEqual compares a decimal against its string form, ignoring
// scale ("2000" equals "2000.00").
func AssertDecimalEqual(t *testing.T, want string, got decimal.Decimal) bool {
	t.Helper()
	w, err := decimal.NewFromString(want)
	if !assert.NoError(t, err, "bad expected decimal %q", want) {
		return false
	}
	return assert.True(t, w.Equal(got), "want %s, got %s", want, got.String())
}
