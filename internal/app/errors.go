package app

import "errors"

// Sentinel kinds for orchestration errors.
var (
	ErrEventLocked = errors.New("event is locked")
	ErrNotRanked   = errors.New("participant has no score yet")
)
