package criticalpath

import (
	"time"

	"go.trai.ch/critpath/internal/core/domain"
)

// Side tells which end of a task a constraint applies to.
type Side uint8

const (
	// StartSide marks a start-date constraint.
	StartSide Side = iota
	// EndSide marks an end-date constraint.
	EndSide
)

// String returns "start" or "end".
func (s Side) String() string {
	if s == EndSide {
		return "end"
	}
	return "start"
}

// Violation records a constraint that was still unsatisfied after being applied.
type Violation[T comparable] struct {
	Task     T
	Side     Side
	Proposed time.Time
	Applied  time.Time
}

// calendar converts day offsets to dates around the project anchor.
type calendar struct {
	anchor time.Time
	ok     bool
}

// anchorOf returns the earliest start among the leaves of the initial tasks.
func anchorOf[T comparable](g Graph[T]) calendar {
	initial := g.InitialTasks()
	if len(initial) == 0 {
		return calendar{}
	}
	var cal calendar
	for _, t := range Leaves(g, initial) {
		d := domain.DayRound(g.StartDate(t))
		if !cal.ok || d.Before(cal.anchor) {
			cal = calendar{anchor: d, ok: true}
		}
	}
	return cal
}

func (c calendar) date(offset int) time.Time {
	return domain.AddDays(c.anchor, offset)
}

func (c calendar) offset(d time.Time) int {
	return domain.DaysBetween(c.anchor, d)
}

type violationKey[T comparable] struct {
	task T
	side Side
}

// violations keeps the outcome of the last application per task and side.
// Passes revisit nodes, so only the final outcome counts.
type violations[T comparable] struct {
	index     map[violationKey[T]]int
	list      []Violation[T]
	satisfied []bool
}

func (v *violations[T]) record(task T, side Side, proposed, applied time.Time, satisfied bool) {
	key := violationKey[T]{task: task, side: side}
	entry := Violation[T]{Task: task, Side: side, Proposed: proposed, Applied: applied}
	if i, ok := v.index[key]; ok {
		v.list[i] = entry
		v.satisfied[i] = satisfied
		return
	}
	if v.index == nil {
		v.index = make(map[violationKey[T]]int)
	}
	v.index[key] = len(v.list)
	v.list = append(v.list, entry)
	v.satisfied = append(v.satisfied, satisfied)
}

func (v *violations[T]) result() []Violation[T] {
	var out []Violation[T]
	for i, e := range v.list {
		if !v.satisfied[i] {
			out = append(out, e)
		}
	}
	return out
}

// constrainStart runs a tentative earliest start through the node's start constraint.
func (c *calculator[T]) constrainStart(n *node[T], earliestStart int) int {
	if n.startConstraint == nil || !c.cal.ok {
		return earliestStart
	}
	proposed := c.cal.date(earliestStart)
	applied := n.startConstraint.Apply(proposed)
	c.violations.record(n.task, StartSide, proposed, applied, n.startConstraint.SatisfiedBy(applied))
	return c.cal.offset(applied)
}

// constrainEnd runs a tentative latest finish through the node's end constraint.
// The constraint sees the start date implied by the latest finish, mirroring constrainStart.
func (c *calculator[T]) constrainEnd(n *node[T], latestFinish int) int {
	if n.endConstraint == nil || !c.cal.ok {
		return latestFinish
	}
	proposed := c.cal.date(latestFinish - n.duration)
	applied := n.endConstraint.Apply(proposed)
	c.violations.record(n.task, EndSide, proposed, applied, n.endConstraint.SatisfiedBy(applied))
	return c.cal.offset(applied) + n.duration
}
