// Package dedupe collapses duplicate recalculation requests.
package dedupe

// Option applies a configuration option to the in-memory tracker.
type Option func(*inMemoryTracker)

// WithMaxSize sets the maximum number of in-flight keys to track.
// A size <= 0 disables eviction.
func WithMaxSize(maxSize int) Option {
	return func(t *inMemoryTracker) {
		t.maxSize = maxSize
	}
}
