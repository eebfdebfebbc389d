package service

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

// Reconciliation is what the host writes back after an edit. Target is the
// control to rewrite: the slider thumb after a text edit, the "N Months"
// label after a slider edit, and both (zero Target) after mount.
type Reconciliation struct {
	Result      *model.SelectionResult
	Phase       valueobject.SliderPhase
	Source      valueobject.EditSource
	Target      valueobject.EditSource
	TextLabel   string
	State       model.SliderState
	SliderValue int
	Applied     bool
}

// ---------------------------------------------------------------------------
// SliderSyncController – keeps slider and text input on the tenure grid
// ---------------------------------------------------------------------------

// SliderSyncController owns the SliderState of one tenure field. It is not
// safe for concurrent use.
type SliderSyncController struct {
	selector *TenureSelector
	result   *model.SelectionResult
	table    model.OfferTable
	phase    valueobject.SliderPhase
	state    model.SliderState
}

// NewSliderSyncController returns an Idle controller over table.
func NewSliderSyncController(table model.OfferTable, selector *TenureSelector) *SliderSyncController {
	c := &SliderSyncController{
		selector: selector,
		table:    table,
		phase:    valueobject.SliderPhaseIdle,
	}
	if state, err := model.SliderStateFor(table); err == nil {
		c.state = state
	}
	return c
}

// RestoreSliderSyncController resumes a controller from persisted state. A
// state that does not match the table grid is replaced by the table's
// initial state.
func RestoreSliderSyncController(
	table model.OfferTable,
	selector *TenureSelector,
	state model.SliderState,
	phase valueobject.SliderPhase,
	result *model.SelectionResult,
) *SliderSyncController {
	c := NewSliderSyncController(table, selector)
	if !phase.IsZero() {
		c.phase = phase
	}
	if slices.Equal(state.AvailableTenures, table.Tenures()) && state.Contains(state.CurrentTenure) {
		c.state = state
	}
	if result != nil {
		r := *result
		c.result = &r
	}
	return c
}

// Mount performs the initial Idle → Reconciled transition on the longest
// tenure. An empty table leaves the controller Idle.
func (c *SliderSyncController) Mount() Reconciliation {
	if !c.phase.Equal(valueobject.SliderPhaseIdle) {
		return c.snapshot(valueobject.EditSource{}, false)
	}
	sel, ok := c.selector.SelectMax(c.table)
	if !ok {
		return c.snapshot(valueobject.EditSource{}, false)
	}
	c.apply(sel)
	return c.snapshot(valueobject.EditSource{}, true)
}

// BeginDrag marks the start of a drag gesture.
func (c *SliderSyncController) BeginDrag() error {
	if c.table.IsEmpty() {
		return fmt.Errorf("%w: nothing to drag", valueobject.ErrNoOfferData)
	}
	if !c.phase.CanTransitionTo(valueobject.SliderPhaseUserDragging) {
		return fmt.Errorf("%w: slider %s -> %s", valueobject.ErrInvalidStatusTransition, c.phase, valueobject.SliderPhaseUserDragging)
	}
	c.phase = valueobject.SliderPhaseUserDragging
	return nil
}

// Reconcile snaps raw to the nearest grid tenure and reprices. A slider
// source is read as a number; a text source keeps only its digits. When the
// table is empty or raw has no usable value the previous state and result
// are kept and Applied is false.
func (c *SliderSyncController) Reconcile(raw string, source valueobject.EditSource) Reconciliation {
	requested, ok := parseRawTenure(raw, source)
	if !ok {
		return c.snapshot(source, false)
	}
	return c.Snap(requested, source)
}

// Snap moves the controller to the grid tenure nearest requested. A zero
// source marks a host-driven selection that rewrites both controls.
func (c *SliderSyncController) Snap(requested float64, source valueobject.EditSource) Reconciliation {
	sel, ok := c.selector.SelectNearest(c.table, requested)
	if !ok {
		return c.snapshot(source, false)
	}
	c.apply(sel)
	return c.snapshot(source, true)
}

func (c *SliderSyncController) State() model.SliderState       { return c.state }
func (c *SliderSyncController) Phase() valueobject.SliderPhase { return c.phase }

// Result returns the last applied selection.
func (c *SliderSyncController) Result() (model.SelectionResult, bool) {
	if c.result == nil {
		return model.SelectionResult{}, false
	}
	return *c.result, true
}

func (c *SliderSyncController) apply(sel model.SelectionResult) {
	if next, err := c.state.WithCurrent(sel.TenureMonths); err == nil {
		c.state = next
	}
	c.result = &sel
	c.phase = valueobject.SliderPhaseReconciled
}

func (c *SliderSyncController) snapshot(source valueobject.EditSource, applied bool) Reconciliation {
	r := Reconciliation{
		State:   c.state,
		Phase:   c.phase,
		Source:  source,
		Applied: applied,
	}
	if c.result != nil {
		sel := *c.result
		r.Result = &sel
	}
	if applied {
		r.Target = source.Counterpart()
		r.SliderValue = c.state.CurrentTenure
		r.TextLabel = TenureLabel(c.state.CurrentTenure)
	}
	return r
}

// TenureLabel formats the text shown next to the slider.
func TenureLabel(tenure int) string {
	return strconv.Itoa(tenure) + " Months"
}

func parseRawTenure(raw string, source valueobject.EditSource) (float64, bool) {
	if source.Equal(valueobject.EditSourceText) {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, raw)
		n, err := strconv.Atoi(digits)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ReconcileSlider is the stateless form of SliderSyncController.Reconcile.
// A state whose grid does not match table is reset to the table's grid
// first. The result is nil when nothing was applied.
func ReconcileSlider(
	selector *TenureSelector,
	table model.OfferTable,
	state model.SliderState,
	raw string,
	source valueobject.EditSource,
) (model.SliderState, *model.SelectionResult) {
	c := RestoreSliderSyncController(table, selector, state, valueobject.SliderPhaseReconciled, nil)
	rec := c.Reconcile(raw, source)
	if !rec.Applied {
		if table.IsEmpty() {
			return state, nil
		}
		return rec.State, nil
	}
	return rec.State, rec.Result
}
