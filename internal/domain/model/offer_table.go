package model

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

// OfferEntry holds the terms offered for one tenure.
type OfferEntry struct {
	Amount            decimal.Decimal `json:"amount"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	ProcessingFee     Fee             `json:"processing_fee"`
	TenureMonths      int             `json:"tenure_months"`
	// HasTerms is false for entries derived from a multiplier table that
	// have not had rate and fee merged in yet.
	HasTerms bool `json:"has_terms"`
}

// OfferTable is an immutable tenure → terms mapping, ascending by tenure.
// The zero value is the empty table ("no offer available").
type OfferTable struct {
	entries []OfferEntry
}

// NewOfferTable validates entries and orders them by tenure. Tenures must be
// positive and unique; amounts and rates must not be negative.
func NewOfferTable(entries []OfferEntry) (OfferTable, error) {
	sorted := make([]OfferEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TenureMonths < sorted[j].TenureMonths })

	for i, e := range sorted {
		if e.TenureMonths <= 0 {
			return OfferTable{}, fmt.Errorf("%w: tenure %d must be positive", valueobject.ErrInvalidArgument, e.TenureMonths)
		}
		if i > 0 && sorted[i-1].TenureMonths == e.TenureMonths {
			return OfferTable{}, fmt.Errorf("%w: duplicate tenure %d", valueobject.ErrInvalidArgument, e.TenureMonths)
		}
		if e.Amount.IsNegative() || e.AnnualRatePercent.IsNegative() {
			return OfferTable{}, fmt.Errorf("%w: negative terms for tenure %d", valueobject.ErrInvalidArgument, e.TenureMonths)
		}
	}
	return OfferTable{entries: sorted}, nil
}

func (t OfferTable) Len() int      { return len(t.entries) }
func (t OfferTable) IsEmpty() bool { return len(t.entries) == 0 }

// Tenures returns the tenures in ascending order.
func (t OfferTable) Tenures() []int {
	out := make([]int, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.TenureMonths
	}
	return out
}

// Entries returns a copy of the entries in ascending tenure order.
func (t OfferTable) Entries() []OfferEntry {
	out := make([]OfferEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Get looks up the entry for tenure.
func (t OfferTable) Get(tenure int) (OfferEntry, bool) {
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].TenureMonths >= tenure })
	if i < len(t.entries) && t.entries[i].TenureMonths == tenure {
		return t.entries[i], true
	}
	return OfferEntry{}, false
}

// Longest returns the entry with the greatest tenure.
func (t OfferTable) Longest() (OfferEntry, bool) {
	if t.IsEmpty() {
		return OfferEntry{}, false
	}
	return t.entries[len(t.entries)-1], true
}
