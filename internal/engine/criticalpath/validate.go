package criticalpath

import (
	"slices"
	"strings"

	"go.trai.ch/critpath/internal/core/domain"
	"go.trai.ch/zerr"
)

// validate checks the flattened leaf graph for cycles and dangling references.
func (a *arena[T]) validate() error {
	visited := make(map[T]int) // 0: unvisited, 1: visiting, 2: visited
	var path []*node[T]

	var visit func(u *node[T]) error
	visit = func(u *node[T]) error {
		visited[u.task] = 1
		path = append(path, u)

		for _, next := range u.next {
			v, err := a.get(next)
			if err != nil {
				return err
			}
			if visited[next] == 1 {
				return buildCycleError(path, v)
			}
			if visited[next] == 0 {
				if err := visit(v); err != nil {
					return err
				}
			}
		}

		visited[u.task] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, task := range a.order {
		if visited[task] != 0 {
			continue
		}
		if err := visit(a.nodes[task]); err != nil {
			return err
		}
	}

	for _, n := range slices.Concat([]*node[T]{a.start, a.end}, a.list()) {
		for _, t := range slices.Concat(n.next, n.prev) {
			if _, err := a.get(t); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError[T comparable](path []*node[T], dep *node[T]) error {
	startIdx := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-startIdx+1)
	for _, n := range path[startIdx:] {
		parts = append(parts, n.label())
	}
	parts = append(parts, dep.label())
	return zerr.With(zerr.Wrap(domain.ErrCycleDetected, "task graph is not acyclic"), "cycle", strings.Join(parts, " -> "))
}
