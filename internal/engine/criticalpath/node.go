package criticalpath

import (
	"fmt"

	"go.trai.ch/critpath/internal/core/domain"
	"go.trai.ch/zerr"
)

// ErrNodeNotFound is returned when the graph references a task that has no node.
// It means the Graph implementation broke its contract.
var ErrNodeNotFound = zerr.New("no node for task")

type nodeKind uint8

const (
	kindTask nodeKind = iota
	kindProjectStart
	kindProjectEnd
)

// node holds the computation state of one leaf task or sentinel.
// Invariants: earliestFinish = earliestStart + duration, latestStart = latestFinish - duration.
type node[T comparable] struct {
	kind     nodeKind
	task     T
	duration int

	earliestStart  int
	earliestFinish int
	latestStart    int
	latestFinish   int
	latestSet      bool

	forwardSeen  bool
	backwardSeen bool

	prev    []T
	next    []T
	prevSet map[T]struct{}
	nextSet map[T]struct{}

	startConstraint domain.Constraint
	endConstraint   domain.Constraint
}

func newNode[T comparable](kind nodeKind, task T, duration int) *node[T] {
	return &node[T]{
		kind:           kind,
		task:           task,
		duration:       duration,
		earliestFinish: duration,
		prevSet:        make(map[T]struct{}),
		nextSet:        make(map[T]struct{}),
	}
}

func (n *node[T]) addPrev(task T) {
	if _, ok := n.prevSet[task]; ok {
		return
	}
	n.prevSet[task] = struct{}{}
	n.prev = append(n.prev, task)
}

func (n *node[T]) addNext(task T) {
	if _, ok := n.nextSet[task]; ok {
		return
	}
	n.nextSet[task] = struct{}{}
	n.next = append(n.next, task)
}

// offerEarliestStart keeps the largest earliest start offered so far.
// It reports whether the value changed.
func (n *node[T]) offerEarliestStart(es int) bool {
	if es <= n.earliestStart {
		return false
	}
	n.earliestStart = es
	n.earliestFinish = es + n.duration
	return true
}

// offerLatestFinish keeps the smallest latest finish offered so far.
// It reports whether the value changed.
func (n *node[T]) offerLatestFinish(lf int) bool {
	if n.latestSet && lf >= n.latestFinish {
		return false
	}
	n.latestSet = true
	n.latestFinish = lf
	n.latestStart = lf - n.duration
	return true
}

// seedLatest anchors the latest values on the earliest ones.
func (n *node[T]) seedLatest() {
	n.latestSet = true
	n.latestFinish = n.earliestFinish
	n.latestStart = n.latestFinish - n.duration
}

func (n *node[T]) schedule() Schedule {
	return Schedule{
		Duration:       n.duration,
		EarliestStart:  n.earliestStart,
		EarliestFinish: n.earliestFinish,
		LatestStart:    n.latestStart,
		LatestFinish:   n.latestFinish,
		Reached:        n.forwardSeen && n.backwardSeen,
	}
}

func (n *node[T]) label() string {
	switch n.kind {
	case kindProjectStart:
		return "<project start>"
	case kindProjectEnd:
		return "<project end>"
	default:
		return fmt.Sprint(n.task)
	}
}

// arena owns every node of one calculation.
type arena[T comparable] struct {
	nodes map[T]*node[T]
	order []T
	start *node[T]
	end   *node[T]
}

func newArena[T comparable]() *arena[T] {
	var zero T
	return &arena[T]{
		nodes: make(map[T]*node[T]),
		start: newNode(kindProjectStart, zero, 0),
		end:   newNode(kindProjectEnd, zero, 0),
	}
}

func (a *arena[T]) add(n *node[T]) {
	if _, ok := a.nodes[n.task]; ok {
		return
	}
	a.nodes[n.task] = n
	a.order = append(a.order, n.task)
}

func (a *arena[T]) list() []*node[T] {
	out := make([]*node[T], 0, len(a.order))
	for _, t := range a.order {
		out = append(out, a.nodes[t])
	}
	return out
}

func (a *arena[T]) get(task T) (*node[T], error) {
	n, ok := a.nodes[task]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrNodeNotFound, "graph contract violated"), "task", fmt.Sprint(task))
	}
	return n, nil
}
