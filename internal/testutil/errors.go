package testutil

import "errors"

// ErrSimulated is returned by test doubles to drive resolution error paths.
var ErrSimulated = errors.New("simulated error for testing")
