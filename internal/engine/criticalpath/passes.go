package criticalpath

import "go.trai.ch/critpath/internal/core/domain"

// forward propagates earliest dates from cur to its successors.
// A successor is descended into on its first visit and whenever its earliest start grows.
func (c *calculator[T]) forward(cur, prev *node[T]) error {
	if len(cur.next) == 0 {
		c.finish(cur)
		return nil
	}

	startStart := 0
	for _, task := range cur.next {
		if c.skipIntraContainer(cur, prev, task) {
			continue
		}

		succ, err := c.arena.get(task)
		if err != nil {
			return err
		}

		var es int
		switch c.dependencyType(cur, succ) {
		case domain.StartStart:
			es = cur.earliestStart
			startStart++
		case domain.EndEnd:
			es = cur.earliestFinish - succ.duration
		case domain.EndStart:
			es = cur.earliestFinish
		}
		es = c.constrainStart(succ, es)

		if succ.offerEarliestStart(es) || !succ.forwardSeen {
			succ.forwardSeen = true
			if err := c.forward(succ, cur); err != nil {
				return err
			}
		}
	}

	// Start-to-start successors do not bound this task's finish.
	if startStart == len(cur.next) {
		c.finish(cur)
	}
	return nil
}

// finish offers the finish of cur to the project end and records cur as one of
// its predecessors, so the backward pass bounds cur by the project end.
func (c *calculator[T]) finish(cur *node[T]) {
	end := c.arena.end
	end.offerEarliestStart(cur.earliestFinish)
	if cur.kind == kindTask {
		end.addPrev(cur.task)
	}
}

// backward propagates latest dates from cur to its predecessors.
// A predecessor is descended into on its first visit and whenever its latest finish shrinks.
func (c *calculator[T]) backward(cur, next *node[T]) error {
	start := c.arena.start

	if len(cur.prev) == 0 {
		start.offerLatestFinish(cur.latestStart)
		return nil
	}

	endEnd := 0
	for _, task := range cur.prev {
		if c.skipIntraContainer(cur, next, task) {
			continue
		}

		pred, err := c.arena.get(task)
		if err != nil {
			return err
		}

		var lf int
		switch c.dependencyType(pred, cur) {
		case domain.StartStart:
			lf = cur.latestStart + pred.duration
		case domain.EndEnd:
			lf = cur.latestFinish
			endEnd++
		case domain.EndStart:
			lf = cur.latestStart
		}
		lf = c.constrainEnd(pred, lf)

		if pred.offerLatestFinish(lf) || !pred.backwardSeen {
			pred.backwardSeen = true
			if err := c.backward(pred, cur); err != nil {
				return err
			}
		}
	}

	if endEnd == len(cur.prev) {
		start.offerLatestFinish(cur.latestStart)
	}
	return nil
}
