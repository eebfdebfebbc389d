package testutil

import (
	"github.com/google/uuid"
)

// Fixed identifiers for deterministic testing.
var (
	TestSessionID      = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestOtherSessionID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
)

const TestApplicationRef = "journey-0001"
