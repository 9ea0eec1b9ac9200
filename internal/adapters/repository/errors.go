package repository

import "errors"

// Sentinel kinds for store errors. These allow errors.Is from callers.
var (
	ErrEventNotFound  = errors.New("event not found")
	ErrEventExists    = errors.New("event already exists")
	ErrMatchNotFound  = errors.New("match not found")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrDuplicateEntry = errors.New("entrant already entered")
	ErrPickNotFound   = errors.New("pick payload not found")
	ErrScoreNotFound  = errors.New("score not found")
)
