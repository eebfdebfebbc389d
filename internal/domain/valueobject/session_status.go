package valueobject

import "fmt"

// SessionStatus is the lifecycle stage of an offer session.
type SessionStatus struct {
	value string
}

const (
	sessionStatusOpen     = "OPEN"
	sessionStatusAccepted = "ACCEPTED"
)

var (
	SessionStatusOpen     = SessionStatus{value: sessionStatusOpen}
	SessionStatusAccepted = SessionStatus{value: sessionStatusAccepted}
)

// NewSessionStatus creates a SessionStatus from a raw string.
func NewSessionStatus(s string) (SessionStatus, error) {
	switch s {
	case sessionStatusOpen:
		return SessionStatusOpen, nil
	case sessionStatusAccepted:
		return SessionStatusAccepted, nil
	default:
		return SessionStatus{}, fmt.Errorf("invalid session status: %q", s)
	}
}

func (s SessionStatus) String() string                { return s.value }
func (s SessionStatus) IsZero() bool                  { return s.value == "" }
func (s SessionStatus) Equal(other SessionStatus) bool { return s.value == other.value }

// IsTerminal reports whether no further edits are accepted.
func (s SessionStatus) IsTerminal() bool { return s.value == sessionStatusAccepted }
