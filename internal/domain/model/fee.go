package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

// FeeKind distinguishes a flat processing fee from a percentage of principal.
type FeeKind uint8

const (
	FeeKindFlat FeeKind = iota + 1
	FeeKindPercent
)

// Fee is a processing fee: either a flat currency amount or a percentage of
// the principal. The zero Fee behaves as a flat fee of zero.
type Fee struct {
	kind  FeeKind
	value decimal.Decimal
}

// FlatFee is a fixed amount in currency units.
func FlatFee(amount decimal.Decimal) Fee {
	return Fee{kind: FeeKindFlat, value: amount}
}

// PercentFee is pct percent of the principal.
func PercentFee(pct decimal.Decimal) Fee {
	return Fee{kind: FeeKindPercent, value: pct}
}

// ParseFee decodes the fee encodings seen in BRE payloads. A string carrying a
// '%' marker ("1%", "1.5 %") is a percentage; any other number or numeric
// string is a flat amount. Negative values are rejected.
func ParseFee(raw any) (Fee, error) {
	var fee Fee
	switch v := raw.(type) {
	case Fee:
		fee = v
	case string:
		s := strings.TrimSpace(v)
		if strings.Contains(s, "%") {
			d, err := parseNumeric(strings.ReplaceAll(s, "%", ""))
			if err != nil {
				return Fee{}, fmt.Errorf("parse percent fee %q: %w", v, err)
			}
			fee = PercentFee(d)
			break
		}
		d, err := parseNumeric(s)
		if err != nil {
			return Fee{}, fmt.Errorf("parse flat fee %q: %w", v, err)
		}
		fee = FlatFee(d)
	default:
		d, err := DecimalFromAny(raw)
		if err != nil {
			return Fee{}, fmt.Errorf("parse fee: %w", err)
		}
		fee = FlatFee(d)
	}
	if fee.value.IsNegative() {
		return Fee{}, fmt.Errorf("%w: negative fee %s", valueobject.ErrInvalidArgument, fee)
	}
	return fee, nil
}

func (f Fee) Kind() FeeKind {
	if f.kind == 0 {
		return FeeKindFlat
	}
	return f.kind
}

func (f Fee) Value() decimal.Decimal { return f.value }
func (f Fee) IsPercent() bool        { return f.kind == FeeKindPercent }

// String renders the payload form: "1%" or "2000".
func (f Fee) String() string {
	if f.IsPercent() {
		return f.value.String() + "%"
	}
	return f.value.String()
}

// Equal compares kind and value.
func (f Fee) Equal(other Fee) bool {
	return f.Kind() == other.Kind() && f.value.Equal(other.value)
}

// MarshalJSON encodes the fee in its payload form so it round-trips through
// ParseFee.
func (f Fee) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON accepts a JSON string or number.
func (f *Fee) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseFee(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
