// Package domain contains the core domain models for project schedules:
// tasks, containers, typed dependencies and date constraints.
package domain

import (
	"slices"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

type linkKey struct {
	from, to InternedString
}

// Project is a schedule of tasks connected by typed dependencies and grouped into containers.
// Once validated it exposes the read-only graph view used by the critical path engine.
type Project struct {
	Name    string
	Version string

	tasks map[InternedString]*Task
	order []InternedString

	parent   map[InternedString]InternedString
	incoming map[InternedString][]InternedString
	outgoing map[InternedString][]InternedString
	links    map[linkKey]DependencyType
}

// NewProject creates a new empty Project.
func NewProject(name string) *Project {
	return &Project{
		Name:  name,
		tasks: make(map[InternedString]*Task),
	}
}

// AddTask adds a task to the project.
// It returns an error if a task with the same id already exists.
func (p *Project) AddTask(t *Task) error {
	if _, exists := p.tasks[t.ID]; exists {
		return zerr.With(zerr.Wrap(ErrTaskAlreadyExists, "failed to add task"), "task_id", t.ID.String())
	}
	p.tasks[t.ID] = t
	p.order = append(p.order, t.ID)
	return nil
}

// Task returns the task with the given id.
func (p *Project) Task(id InternedString) (*Task, bool) {
	t, ok := p.tasks[id]
	return t, ok
}

// Len returns the number of tasks, containers included.
func (p *Project) Len() int {
	return len(p.order)
}

// Validate checks references, dates and containment, and builds the graph indexes.
// It must be called after the last AddTask and before the graph view is used.
func (p *Project) Validate() error {
	p.parent = make(map[InternedString]InternedString)
	p.incoming = make(map[InternedString][]InternedString)
	p.outgoing = make(map[InternedString][]InternedString)
	p.links = make(map[linkKey]DependencyType)

	for _, id := range p.order {
		task := p.tasks[id]
		if err := p.indexChildren(task); err != nil {
			return err
		}
		if err := p.indexLinks(task); err != nil {
			return err
		}
		if !task.IsContainer() {
			if task.Start.IsZero() || task.End.IsZero() || task.End.Before(task.Start) {
				return zerr.With(zerr.Wrap(ErrInvalidDates, "invalid task"), "task_id", id.String())
			}
		}
	}

	return p.validateContainment()
}

func (p *Project) indexChildren(task *Task) error {
	for _, child := range task.Children {
		if _, ok := p.tasks[child]; !ok {
			return zerr.With(zerr.With(zerr.Wrap(ErrMissingDependency, "unknown child"), "child", child.String()), "task_id", task.ID.String())
		}
		if prev, ok := p.parent[child]; ok && prev != task.ID {
			return zerr.With(zerr.With(zerr.Wrap(ErrMultipleParents, "invalid containment"), "task_id", child.String()), "parents",
				prev.String()+", "+task.ID.String())
		}
		p.parent[child] = task.ID
	}
	return nil
}

func (p *Project) indexLinks(task *Task) error {
	for _, link := range task.Dependencies {
		if _, ok := p.tasks[link.From]; !ok {
			return zerr.With(zerr.With(zerr.Wrap(ErrMissingDependency, "unknown dependency"), "dependency", link.From.String()), "task_id", task.ID.String())
		}
		if link.From == task.ID {
			return zerr.With(zerr.Wrap(ErrCycleDetected, "task depends on itself"), "cycle", task.ID.String()+" -> "+task.ID.String())
		}
		key := linkKey{from: link.From, to: task.ID}
		if _, dup := p.links[key]; !dup {
			p.outgoing[link.From] = append(p.outgoing[link.From], task.ID)
			p.incoming[task.ID] = append(p.incoming[task.ID], link.From)
		}
		p.links[key] = link.Type
	}
	return nil
}

// validateContainment checks for cycles in the container hierarchy.
func (p *Project) validateContainment() error {
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		for _, child := range p.tasks[u].Children {
			if visited[child] == 1 {
				return buildCycleError(path, child)
			}
			if visited[child] == 0 {
				if err := visit(child); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, id := range p.order {
		if visited[id] == 0 {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []InternedString, dep InternedString) error {
	startIdx := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-startIdx+1)
	for _, node := range path[startIdx:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(zerr.Wrap(ErrCycleDetected, "invalid containment"), "cycle", strings.Join(parts, " -> "))
}

// Tasks returns every task id in declaration order, containers included.
func (p *Project) Tasks() []InternedString {
	return slices.Clone(p.order)
}

// IsContainer reports whether the task groups other tasks.
func (p *Project) IsContainer(id InternedString) bool {
	t, ok := p.tasks[id]
	return ok && t.IsContainer()
}

// Children returns the direct children of a container.
func (p *Project) Children(id InternedString) []InternedString {
	if t, ok := p.tasks[id]; ok {
		return t.Children
	}
	return nil
}

// Parent returns the container that directly holds the task, if any.
func (p *Project) Parent(id InternedString) (InternedString, bool) {
	parent, ok := p.parent[id]
	return parent, ok
}

// Incoming returns the tasks with a declared link into id.
func (p *Project) Incoming(id InternedString) []InternedString {
	return p.incoming[id]
}

// Outgoing returns the tasks with a declared link from id.
func (p *Project) Outgoing(id InternedString) []InternedString {
	return p.outgoing[id]
}

// Contains reports whether container transitively holds task.
func (p *Project) Contains(container, task InternedString) bool {
	for cur, ok := p.parent[task]; ok; cur, ok = p.parent[cur] {
		if cur == container {
			return true
		}
	}
	return false
}

// StartDate returns the start of a task; for a container it is the earliest start of its leaves.
func (p *Project) StartDate(id InternedString) time.Time {
	return p.bound(id, time.Time.Before, func(t *Task) time.Time { return t.Start })
}

// EndDate returns the end of a task; for a container it is the latest end of its leaves.
func (p *Project) EndDate(id InternedString) time.Time {
	return p.bound(id, time.Time.After, func(t *Task) time.Time { return t.End })
}

func (p *Project) bound(id InternedString, better func(time.Time, time.Time) bool, pick func(*Task) time.Time) time.Time {
	t, ok := p.tasks[id]
	if !ok {
		return time.Time{}
	}
	if !t.IsContainer() {
		return pick(t)
	}
	var out time.Time
	for _, child := range t.Children {
		d := p.bound(child, better, pick)
		if out.IsZero() || (!d.IsZero() && better(d, out)) {
			out = d
		}
	}
	return out
}

// Duration returns the task length in whole days.
func (p *Project) Duration(id InternedString) int {
	if t, ok := p.tasks[id]; ok && t.FixedDuration {
		return t.Duration
	}
	return DaysBetween(p.StartDate(id), p.EndDate(id))
}

// InitialTasks returns the top-level tasks that no link points into.
// Links between a container and its own descendants are not counted.
func (p *Project) InitialTasks() []InternedString {
	return p.topLevel(p.incoming)
}

// LatestTasks returns the top-level tasks that no link leaves from.
func (p *Project) LatestTasks() []InternedString {
	return p.topLevel(p.outgoing)
}

func (p *Project) topLevel(edges map[InternedString][]InternedString) []InternedString {
	var out []InternedString
	for _, id := range p.order {
		if _, nested := p.parent[id]; nested {
			continue
		}
		external := slices.ContainsFunc(edges[id], func(other InternedString) bool {
			return !p.Contains(id, other)
		})
		if !external {
			out = append(out, id)
		}
	}
	return out
}

// DependencyFrom returns the declared type of the link from one task to another.
func (p *Project) DependencyFrom(from, to InternedString) (DependencyType, bool) {
	t, ok := p.links[linkKey{from: from, to: to}]
	return t, ok
}

// StartConstraints returns the constraints on the task's start date.
func (p *Project) StartConstraints(id InternedString) []Constraint {
	if t, ok := p.tasks[id]; ok {
		return t.StartConstraints
	}
	return nil
}

// EndConstraints returns the constraints on the task's end date.
func (p *Project) EndConstraints(id InternedString) []Constraint {
	if t, ok := p.tasks[id]; ok {
		return t.EndConstraints
	}
	return nil
}
