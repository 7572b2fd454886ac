package criticalpath

import (
	"time"

	"go.trai.ch/critpath/internal/core/domain"
)

// Schedule is the computed state of one task, in days from the project anchor.
type Schedule struct {
	Duration       int
	EarliestStart  int
	EarliestFinish int
	LatestStart    int
	LatestFinish   int
	// Reached is false when one of the passes never got to the task.
	Reached bool
}

// Slack returns how many days the task can slip without delaying the project.
func (s Schedule) Slack() int {
	return s.LatestStart - s.EarliestStart
}

// Critical reports whether the task has zero slack.
func (s Schedule) Critical() bool {
	return s.Reached && s.LatestStart == s.EarliestStart
}

// Result is the outcome of one calculation.
type Result[T comparable] struct {
	// CriticalPath lists the leaf tasks with zero slack, in graph order.
	CriticalPath []T
	// Order lists every leaf task in graph order.
	Order []T
	// Schedules holds the computed values of every leaf task.
	Schedules map[T]Schedule
	// Dependencies is the table of types synthesized while flattening containers.
	Dependencies DependencyTable[T]
	// ProjectStart and ProjectEnd are the values of the sentinel nodes.
	ProjectStart Schedule
	ProjectEnd   Schedule
	// Anchor is day 0; HasAnchor is false when the graph has no initial tasks.
	Anchor    time.Time
	HasAnchor bool
	// Violations lists constraints that could not be satisfied.
	Violations []Violation[T]
}

// Duration returns the project length in days: the longest path's finish.
func (r *Result[T]) Duration() int {
	return r.ProjectEnd.EarliestStart
}

// Date converts a day offset to a calendar date. It reports false without an anchor.
func (r *Result[T]) Date(offset int) (time.Time, bool) {
	if !r.HasAnchor {
		return time.Time{}, false
	}
	return domain.AddDays(r.Anchor, offset), true
}

// IsCritical reports whether task is on the critical path.
func (r *Result[T]) IsCritical(task T) bool {
	s, ok := r.Schedules[task]
	return ok && s.Critical()
}

// CriticalContainers returns the containers of g holding at least one critical leaf.
func CriticalContainers[T comparable](g Graph[T], r *Result[T]) []T {
	var out []T
	for _, task := range g.Tasks() {
		if !g.IsContainer(task) {
			continue
		}
		for _, leaf := range Leaves(g, []T{task}) {
			if r.IsCritical(leaf) {
				out = append(out, task)
				break
			}
		}
	}
	return out
}

// CriticalPath returns the tasks of g with zero slack.
func CriticalPath[T comparable](g Graph[T]) ([]T, error) {
	r, err := Calculate(g)
	if err != nil {
		return nil, err
	}
	return r.CriticalPath, nil
}

// Calculate runs the full critical path computation over g.
// Every call builds its own state, so g may be analysed repeatedly.
func Calculate[T comparable](g Graph[T]) (*Result[T], error) {
	a, deps, err := flatten(g)
	if err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	c := &calculator[T]{
		g:     g,
		arena: a,
		deps:  deps,
		cal:   anchorOf(g),
	}

	a.start.forwardSeen = true
	if err := c.forward(a.start, nil); err != nil {
		return nil, err
	}

	a.end.seedLatest()
	a.end.backwardSeen = true
	if err := c.backward(a.end, nil); err != nil {
		return nil, err
	}

	return c.result(), nil
}

type calculator[T comparable] struct {
	g          Graph[T]
	arena      *arena[T]
	deps       DependencyTable[T]
	cal        calendar
	violations violations[T]
}

func (c *calculator[T]) result() *Result[T] {
	r := &Result[T]{
		Order:        c.arena.order,
		Schedules:    make(map[T]Schedule, len(c.arena.order)),
		Dependencies: c.deps,
		ProjectStart: c.arena.start.schedule(),
		ProjectEnd:   c.arena.end.schedule(),
		Anchor:       c.cal.anchor,
		HasAnchor:    c.cal.ok,
		Violations:   c.violations.result(),
	}
	for _, n := range c.arena.list() {
		s := n.schedule()
		r.Schedules[n.task] = s
		if s.Critical() {
			r.CriticalPath = append(r.CriticalPath, n.task)
		}
	}
	return r
}

// dependencyType resolves the type of the edge from one node to another:
// the explicit dependency first, then the synthesized table, then end-to-start.
func (c *calculator[T]) dependencyType(from, to *node[T]) domain.DependencyType {
	if from.kind != kindTask || to.kind != kindTask {
		return domain.EndStart
	}
	if typ, ok := c.g.DependencyFrom(from.task, to.task); ok {
		return typ
	}
	if typ, ok := c.deps.Get(from.task, to.task); ok {
		return typ
	}
	return domain.EndStart
}

// skipIntraContainer reports whether the edge from cur to other stays inside cur
// while the traversal also entered cur from inside: such edges duplicate the
// leaf-level paths and are not followed.
func (c *calculator[T]) skipIntraContainer(cur, from *node[T], other T) bool {
	if cur.kind != kindTask || from == nil || from.kind != kindTask {
		return false
	}
	return c.g.IsContainer(cur.task) &&
		c.g.Contains(cur.task, from.task) &&
		c.g.Contains(cur.task, other)
}
