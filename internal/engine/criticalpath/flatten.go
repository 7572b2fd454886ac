package criticalpath

import "go.trai.ch/critpath/internal/core/domain"

// DependencyTable records the effective dependency type between two leaves
// when the edge was synthesized from a container-level dependency.
type DependencyTable[T comparable] map[T]map[T]domain.DependencyType

func (d DependencyTable[T]) set(from, to T, typ domain.DependencyType) {
	dest, ok := d[from]
	if !ok {
		dest = make(map[T]domain.DependencyType)
		d[from] = dest
	}
	dest[to] = typ
}

// Get returns the synthesized type of the edge from one leaf to another.
func (d DependencyTable[T]) Get(from, to T) (domain.DependencyType, bool) {
	typ, ok := d[from][to]
	return typ, ok
}

// flatten builds the node arena over the leaf tasks of g and the table of
// dependency types synthesized for edges that touched a container.
func flatten[T comparable](g Graph[T]) (*arena[T], DependencyTable[T], error) {
	a := newArena[T]()
	deps := make(DependencyTable[T])

	tasks := g.Tasks()

	for _, task := range tasks {
		if g.IsContainer(task) {
			continue
		}
		n := newNode(kindTask, task, durationOf(g, task))
		for _, t := range g.Incoming(task) {
			if !g.IsContainer(t) {
				n.addPrev(t)
			}
		}
		for _, t := range g.Outgoing(task) {
			if !g.IsContainer(t) {
				n.addNext(t)
			}
		}
		n.startConstraint = domain.Coalesce(g.StartConstraints(task)...)
		n.endConstraint = domain.Coalesce(g.EndConstraints(task)...)
		a.add(n)
	}

	for _, container := range tasks {
		if !g.IsContainer(container) {
			continue
		}
		leaves := Leaves(g, []T{container})

		for _, t := range unrelated(g, container, g.Incoming(container)) {
			typ := explicitType(g, t, container)
			if err := connect(a, deps, Leaves(g, []T{t}), leaves, typ); err != nil {
				return nil, nil, err
			}
		}

		for _, t := range unrelated(g, container, g.Outgoing(container)) {
			typ := explicitType(g, container, t)
			if err := connect(a, deps, leaves, Leaves(g, []T{t}), typ); err != nil {
				return nil, nil, err
			}
		}
	}

	for _, t := range Leaves(g, g.InitialTasks()) {
		a.start.addNext(t)
	}
	for _, t := range Leaves(g, g.LatestTasks()) {
		a.end.addPrev(t)
	}

	return a, deps, nil
}

// unrelated drops the tasks that are ancestors or descendants of container:
// containment is not a scheduling dependency.
func unrelated[T comparable](g Graph[T], container T, tasks []T) []T {
	out := make([]T, 0, len(tasks))
	for _, t := range tasks {
		if g.Contains(container, t) || g.Contains(t, container) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func explicitType[T comparable](g Graph[T], from, to T) domain.DependencyType {
	if typ, ok := g.DependencyFrom(from, to); ok {
		return typ
	}
	return domain.EndStart
}

func connect[T comparable](a *arena[T], deps DependencyTable[T], origins, destinations []T, typ domain.DependencyType) error {
	for _, origin := range origins {
		from, err := a.get(origin)
		if err != nil {
			return err
		}
		for _, destination := range destinations {
			to, err := a.get(destination)
			if err != nil {
				return err
			}
			from.addNext(destination)
			to.addPrev(origin)
			deps.set(origin, destination, typ)
		}
	}
	return nil
}
