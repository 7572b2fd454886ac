package domain

import "time"

// Constraint restricts the dates a task may start or end on.
type Constraint interface {
	// Apply returns the date closest to d that the constraint allows.
	Apply(d time.Time) time.Time
	// SatisfiedBy reports whether d is allowed by the constraint.
	SatisfiedBy(d time.Time) bool
}

// NotEarlierThan allows only dates on or after its bound.
type NotEarlierThan time.Time

// Apply moves d forward to the bound when it is earlier.
func (c NotEarlierThan) Apply(d time.Time) time.Time {
	bound := DayRound(time.Time(c))
	if DayRound(d).Before(bound) {
		return bound
	}
	return d
}

// SatisfiedBy reports whether d is on or after the bound.
func (c NotEarlierThan) SatisfiedBy(d time.Time) bool {
	return !DayRound(d).Before(DayRound(time.Time(c)))
}

// NotLaterThan allows only dates on or before its bound.
type NotLaterThan time.Time

// Apply moves d back to the bound when it is later.
func (c NotLaterThan) Apply(d time.Time) time.Time {
	bound := DayRound(time.Time(c))
	if DayRound(d).After(bound) {
		return bound
	}
	return d
}

// SatisfiedBy reports whether d is on or before the bound.
func (c NotLaterThan) SatisfiedBy(d time.Time) bool {
	return !DayRound(d).After(DayRound(time.Time(c)))
}

// EqualTo pins a date to a fixed day.
type EqualTo time.Time

// Apply always returns the pinned day.
func (c EqualTo) Apply(time.Time) time.Time {
	return DayRound(time.Time(c))
}

// SatisfiedBy reports whether d falls on the pinned day.
func (c EqualTo) SatisfiedBy(d time.Time) bool {
	return DayRound(d).Equal(DayRound(time.Time(c)))
}

type coalesced []Constraint

// Coalesce combines constraints into one that applies each of them in order
// and is satisfied only when all of them are. Nil entries are ignored.
// It returns nil when no constraint remains.
func Coalesce(constraints ...Constraint) Constraint {
	out := make(coalesced, 0, len(constraints))
	for _, c := range constraints {
		if c != nil {
			out = append(out, c)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	default:
		return out
	}
}

func (cs coalesced) Apply(d time.Time) time.Time {
	for _, c := range cs {
		d = c.Apply(d)
	}
	return d
}

func (cs coalesced) SatisfiedBy(d time.Time) bool {
	for _, c := range cs {
		if !c.SatisfiedBy(d) {
			return false
		}
	}
	return true
}
