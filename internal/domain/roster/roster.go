// Package roster resolves duplicate entrant rows to one canonical identity
// per real-world contestant and filters rosters down to an event's eligible
// set.
package roster

import (
	"strings"

	"github.com/okian/rumble/internal/domain/model"
)

// DefaultPrimaryPromotion is preferred when duplicate rows tie on name.
const DefaultPrimaryPromotion = "WWE"

// Option applies a configuration option to the Canonicalizer.
type Option func(*Canonicalizer)

// WithPrimaryPromotion overrides the promotion label preferred on
// duplicate-name ties.
func WithPrimaryPromotion(label string) Option {
	return func(c *Canonicalizer) {
		if label != "" {
			c.primary = label
		}
	}
}

// Canonicalizer maps normalized entrant names to a single canonical row.
type Canonicalizer struct {
	primary string
}

// New creates a Canonicalizer with configuration options.
func New(opts ...Option) *Canonicalizer {
	c := &Canonicalizer{primary: DefaultPrimaryPromotion}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Normalize trims and case-folds an entrant name for identity comparison.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Canonicalize resolves duplicates in the given entrants: for each
// normalized name exactly one row survives. The primary-promotion row wins a
// tie; otherwise the first row encountered in input order is kept. Empty
// input yields an empty map.
func (c *Canonicalizer) Canonicalize(entrants []model.Entrant) map[string]model.Entrant {
	byName := make(map[string]model.Entrant, len(entrants))
	for _, e := range entrants {
		name := Normalize(e.Name)
		existing, seen := byName[name]
		if !seen {
			byName[name] = e
			continue
		}
		if !c.isPrimary(existing) && c.isPrimary(e) {
			byName[name] = e
		}
	}
	return byName
}

// CanonicalList resolves duplicates and returns the surviving rows in
// first-seen input order. Selection option lists are built from this so a
// participant never sees two rows for the same person.
func (c *Canonicalizer) CanonicalList(entrants []model.Entrant) []model.Entrant {
	canonical := c.Canonicalize(entrants)
	out := make([]model.Entrant, 0, len(canonical))
	emitted := make(map[string]bool, len(canonical))
	for _, e := range entrants {
		name := Normalize(e.Name)
		if emitted[name] {
			continue
		}
		emitted[name] = true
		out = append(out, canonical[name])
	}
	return out
}

func (c *Canonicalizer) isPrimary(e model.Entrant) bool {
	return strings.EqualFold(e.Promotion, c.primary)
}

// Eligible filters entrants down to the active rows matching the event's
// gender and roster year. A zero entrant year matches any event year.
func Eligible(entrants []model.Entrant, gender model.Gender, year int) []model.Entrant {
	out := make([]model.Entrant, 0, len(entrants))
	for _, e := range entrants {
		if !e.Active {
			continue
		}
		if gender != "" && e.Gender != gender {
			continue
		}
		if year != 0 && e.Year != 0 && e.Year != year {
			continue
		}
		out = append(out, e)
	}
	return out
}
