// Package criticalpath computes the critical path of a project schedule.
//
// The schedule is read through a Graph: tasks connected by typed precedence
// dependencies, grouped into containers, with resolved start and end dates and
// optional date constraints. Containers are flattened into edges between their
// leaf descendants, then a forward pass computes earliest dates from a virtual
// beginning-of-project node and a backward pass computes latest dates from a
// virtual end-of-project node. Tasks whose latest start equals their earliest
// start form the critical path.
//
// All offsets are whole days relative to the earliest start date of the
// initial tasks. The graph must be acyclic once containers are flattened;
// a cycle is reported as domain.ErrCycleDetected.
package criticalpath

import (
	"time"

	"go.trai.ch/critpath/internal/core/domain"
)

// Graph is the read-only view of a task graph that the calculator consumes.
// Implementations must not change while a calculation is running.
type Graph[T comparable] interface {
	// Tasks returns every task, containers included.
	Tasks() []T
	// IsContainer reports whether the task groups other tasks.
	IsContainer(task T) bool
	// Children returns the direct children of a container.
	Children(container T) []T
	// Incoming returns the tasks with a declared dependency into task.
	Incoming(task T) []T
	// Outgoing returns the tasks with a declared dependency from task.
	Outgoing(task T) []T
	// Contains reports whether container transitively holds task.
	Contains(container, task T) bool
	// StartDate returns the resolved start date of a task.
	StartDate(task T) time.Time
	// EndDate returns the resolved end date of a task.
	EndDate(task T) time.Time
	// InitialTasks returns the top-level tasks without predecessors.
	InitialTasks() []T
	// LatestTasks returns the top-level tasks without successors.
	LatestTasks() []T
	// DependencyFrom returns the type of the explicit dependency from one task to another.
	DependencyFrom(from, to T) (domain.DependencyType, bool)
	// StartConstraints returns the constraints on a task's start date.
	StartConstraints(task T) []domain.Constraint
	// EndConstraints returns the constraints on a task's end date.
	EndConstraints(task T) []domain.Constraint
}

// DurationProvider can be implemented by a Graph to supply task durations in
// whole days. Without it, durations are the day difference between start and end.
type DurationProvider[T comparable] interface {
	Duration(task T) int
}

// Leaves replaces every container in tasks by its transitive leaf descendants.
// The result keeps first-seen order and holds no duplicates.
func Leaves[T comparable](g Graph[T], tasks []T) []T {
	var out []T
	seen := make(map[T]struct{})

	var walk func(ts []T)
	walk = func(ts []T) {
		for _, t := range ts {
			if g.IsContainer(t) {
				walk(g.Children(t))
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	walk(tasks)

	return out
}

func durationOf[T comparable](g Graph[T], task T) int {
	if dp, ok := g.(DurationProvider[T]); ok {
		return dp.Duration(task)
	}
	return domain.DaysBetween(g.StartDate(task), g.EndDate(task))
}
