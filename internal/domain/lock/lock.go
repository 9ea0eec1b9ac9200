// Package lock decides whether an event's picks are still editable.
package lock

import "time"

// Locked reports whether picks for an event are frozen. An event with no
// scheduled start never locks; otherwise the lock takes effect at the start
// time itself, with no grace period.
func Locked(start *time.Time, now time.Time) bool {
	if start == nil {
		return false
	}
	return !now.Before(*start)
}
