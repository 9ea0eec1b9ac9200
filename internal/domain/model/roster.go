// Package model contains domain models passed between layers.
package model

import "time"

// Gender categorizes entrants and events. An event's gender constrains its
// eligible roster.
type Gender string

const (
	GenderMen   Gender = "men"
	GenderWomen Gender = "women"
)

// Entrant is a contestant eligible to appear in an event. Two entrant rows
// with the same normalized name represent the same real contestant; the
// roster package resolves which row is canonical.
type Entrant struct {
	ID        string
	Name      string
	Promotion string // feeder organization label, e.g. "WWE", "NXT"
	Gender    Gender
	Active    bool
	Year      int // roster year, 0 = any
}

// EventStatus tracks an event through its lifecycle.
type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventLive      EventStatus = "live"
	EventFinished  EventStatus = "finished"
)

// Event is one scheduled battle-royal occasion.
type Event struct {
	ID        string
	Name      string
	StartTime *time.Time // nil = unscheduled, never locks
	Gender    Gender
	Status    EventStatus
	Year      int
}
