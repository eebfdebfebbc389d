package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// SeriesPoint is one element of a tenure-indexed backend array: the amount,
// IRR or processing-fee value offered for Tenure months.
type SeriesPoint struct {
	Tenure int
	Value  any
}

// MultiplierRow is one row of a tenure-multiplier table. Keys that parse as
// positive integers are tenures; every other key is a metadata column.
type MultiplierRow map[string]any

var errNotNumeric = errors.New("value is not numeric")

// DecimalFromAny decodes the numeric encodings found in already JSON-decoded
// payloads: Go numbers, json.Number, decimal.Decimal and numeric strings.
// Thousands separators and surrounding whitespace in strings are ignored.
func DecimalFromAny(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, errNotNumeric
	case decimal.Decimal:
		return v, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, errNotNumeric
		}
		return decimal.NewFromFloat(v), nil
	case float32:
		return DecimalFromAny(float64(v))
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return parseNumeric(v.String())
	case string:
		return parseNumeric(v)
	default:
		return decimal.Zero, fmt.Errorf("%w: %T", errNotNumeric, raw)
	}
}

func parseNumeric(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, errNotNumeric
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", errNotNumeric, s)
	}
	return d, nil
}
