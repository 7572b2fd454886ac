package criticalpath_test

import (
	"slices"
	"time"

	"go.trai.ch/critpath/internal/core/domain"
)

var day0 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// fakeGraph is an in-memory Graph[string] for tests.
type fakeGraph struct {
	order    []string
	children map[string][]string
	parent   map[string]string
	start    map[string]time.Time
	end      map[string]time.Time
	links    map[[2]string]domain.DependencyType
	in       map[string][]string
	out      map[string][]string
	startC   map[string][]domain.Constraint
	endC     map[string][]domain.Constraint
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		children: make(map[string][]string),
		parent:   make(map[string]string),
		start:    make(map[string]time.Time),
		end:      make(map[string]time.Time),
		links:    make(map[[2]string]domain.DependencyType),
		in:       make(map[string][]string),
		out:      make(map[string][]string),
		startC:   make(map[string][]domain.Constraint),
		endC:     make(map[string][]domain.Constraint),
	}
}

// task adds a leaf running from day startDay to day endDay.
func (g *fakeGraph) task(id string, startDay, endDay int) *fakeGraph {
	g.order = append(g.order, id)
	g.start[id] = day0.AddDate(0, 0, startDay)
	g.end[id] = day0.AddDate(0, 0, endDay)
	return g
}

func (g *fakeGraph) container(id string, children ...string) *fakeGraph {
	g.order = append(g.order, id)
	g.children[id] = children
	for _, c := range children {
		g.parent[c] = id
	}
	return g
}

func (g *fakeGraph) link(from, to string, typ domain.DependencyType) *fakeGraph {
	if _, ok := g.links[[2]string{from, to}]; !ok {
		g.out[from] = append(g.out[from], to)
		g.in[to] = append(g.in[to], from)
	}
	g.links[[2]string{from, to}] = typ
	return g
}

// edge declares a neighbour without an explicit dependency object.
func (g *fakeGraph) edge(from, to string) *fakeGraph {
	g.out[from] = append(g.out[from], to)
	g.in[to] = append(g.in[to], from)
	return g
}

func (g *fakeGraph) startConstraint(id string, c domain.Constraint) *fakeGraph {
	g.startC[id] = append(g.startC[id], c)
	return g
}

func (g *fakeGraph) endConstraint(id string, c domain.Constraint) *fakeGraph {
	g.endC[id] = append(g.endC[id], c)
	return g
}

func (g *fakeGraph) Tasks() []string             { return g.order }
func (g *fakeGraph) IsContainer(t string) bool    { return len(g.children[t]) > 0 }
func (g *fakeGraph) Children(t string) []string   { return g.children[t] }
func (g *fakeGraph) Incoming(t string) []string   { return g.in[t] }
func (g *fakeGraph) Outgoing(t string) []string   { return g.out[t] }
func (g *fakeGraph) StartDate(t string) time.Time { return g.bound(t, g.start, time.Time.Before) }
func (g *fakeGraph) EndDate(t string) time.Time   { return g.bound(t, g.end, time.Time.After) }

func (g *fakeGraph) bound(t string, dates map[string]time.Time, better func(time.Time, time.Time) bool) time.Time {
	if !g.IsContainer(t) {
		return dates[t]
	}
	var out time.Time
	for _, c := range g.children[t] {
		d := g.bound(c, dates, better)
		if out.IsZero() || better(d, out) {
			out = d
		}
	}
	return out
}

func (g *fakeGraph) Contains(container, t string) bool {
	for cur, ok := g.parent[t]; ok; cur, ok = g.parent[cur] {
		if cur == container {
			return true
		}
	}
	return false
}

func (g *fakeGraph) InitialTasks() []string { return g.topLevel(g.in) }
func (g *fakeGraph) LatestTasks() []string  { return g.topLevel(g.out) }

func (g *fakeGraph) topLevel(edges map[string][]string) []string {
	var out []string
	for _, t := range g.order {
		if _, nested := g.parent[t]; nested {
			continue
		}
		external := slices.ContainsFunc(edges[t], func(other string) bool {
			return !g.Contains(t, other)
		})
		if !external {
			out = append(out, t)
		}
	}
	return out
}

func (g *fakeGraph) DependencyFrom(from, to string) (domain.DependencyType, bool) {
	typ, ok := g.links[[2]string{from, to}]
	return typ, ok
}

func (g *fakeGraph) StartConstraints(t string) []domain.Constraint { return g.startC[t] }
func (g *fakeGraph) EndConstraints(t string) []domain.Constraint   { return g.endC[t] }

// fixedDurations overrides durations through DurationProvider.
type fixedDurations struct {
	*fakeGraph
	durations map[string]int
}

func (g fixedDurations) Duration(t string) int { return g.durations[t] }
