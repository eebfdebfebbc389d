package valueobject

import "errors"

// Domain errors. DataShapeMismatch has no sentinel: a tenure missing from one
// source series is dropped while building the table and never surfaces as an
// error.
var (
	// ErrInvalidArgument marks negative or non-positive numeric input that
	// indicates an upstream data defect.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoOfferData marks an operation that needs an offer but the table is empty.
	ErrNoOfferData = errors.New("no offer data")

	ErrSessionNotFound         = errors.New("offer session not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrVersionConflict         = errors.New("offer session version conflict")
)
