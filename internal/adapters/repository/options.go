package repository

import "time"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithClock overrides the wall clock used to stamp pick updates. Tests use
// this to get deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}
