package criticalpath_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/critpath/internal/core/domain"
	"go.trai.ch/critpath/internal/engine/criticalpath"
)

var allTypes = []domain.DependencyType{domain.EndStart, domain.StartStart, domain.EndEnd}

type refSchedule struct {
	es, ef, ls, lf int
}

// referenceSchedules computes the expected values of a leaf-only graph whose
// links all point from an earlier to a later task in g.order.
func referenceSchedules(g *fakeGraph) (map[string]refSchedule, int) {
	dur := make(map[string]int, len(g.order))
	for _, id := range g.order {
		dur[id] = domain.DaysBetween(g.start[id], g.end[id])
	}

	out := make(map[string]refSchedule, len(g.order))
	for _, id := range g.order {
		es := 0
		for _, from := range g.in[id] {
			var cand int
			switch g.links[[2]string{from, id}] {
			case domain.StartStart:
				cand = out[from].es
			case domain.EndEnd:
				cand = out[from].ef - dur[id]
			default:
				cand = out[from].ef
			}
			es = max(es, cand)
		}
		out[id] = refSchedule{es: es, ef: es + dur[id]}
	}

	boundedByEnd := func(id string) bool {
		for _, to := range g.out[id] {
			if g.links[[2]string{id, to}] != domain.StartStart {
				return false
			}
		}
		return true
	}

	projectEnd := 0
	for _, id := range g.order {
		if boundedByEnd(id) {
			projectEnd = max(projectEnd, out[id].ef)
		}
	}

	for i := len(g.order) - 1; i >= 0; i-- {
		id := g.order[i]
		lf, set := 0, false
		offer := func(v int) {
			if !set || v < lf {
				lf, set = v, true
			}
		}
		if boundedByEnd(id) {
			offer(projectEnd)
		}
		for _, to := range g.out[id] {
			switch g.links[[2]string{id, to}] {
			case domain.StartStart:
				offer(out[to].ls + dur[id])
			case domain.EndEnd:
				offer(out[to].lf)
			default:
				offer(out[to].ls)
			}
		}
		s := out[id]
		s.lf = lf
		s.ls = lf - dur[id]
		out[id] = s
	}
	return out, projectEnd
}

func randomLeafGraph(rng *rand.Rand, n int) *fakeGraph {
	g := newFakeGraph()
	for i := range n {
		start := rng.IntN(5)
		g.task(fmt.Sprintf("t%02d", i), start, start+rng.IntN(6))
	}
	for j := 1; j < n; j++ {
		for i := range j {
			if rng.IntN(4) == 0 {
				g.link(g.order[i], g.order[j], allTypes[rng.IntN(len(allTypes))])
			}
		}
	}
	return g
}

func TestCalculate_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for round := range 200 {
		g := randomLeafGraph(rng, 2+rng.IntN(12))
		want, projectEnd := referenceSchedules(g)

		r, err := criticalpath.Calculate[string](g)
		require.NoError(t, err, "round %d", round)

		assert.Equal(t, projectEnd, r.Duration(), "round %d: project duration", round)
		for _, id := range g.order {
			w := want[id]
			assertSchedule(t, r, id, w.es, w.ef, w.ls, w.lf)
			assert.Equal(t, w.ls == w.es, r.IsCritical(id), "round %d: task %s critical", round, id)
		}
	}
}

// TestCalculate_ContainersMatchExpandedLinks checks that a dependency declared on
// a container schedules exactly like the same dependency declared on every leaf.
func TestCalculate_ContainersMatchExpandedLinks(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for round := range 150 {
		grouped := newFakeGraph()
		expanded := newFakeGraph()

		var units [][]string
		leaf := 0
		for u := range 2 + rng.IntN(6) {
			size := 1 + rng.IntN(3)
			var members []string
			for range size {
				id := fmt.Sprintf("t%02d", leaf)
				leaf++
				start := rng.IntN(4)
				end := start + rng.IntN(5)
				grouped.task(id, start, end)
				expanded.task(id, start, end)
				members = append(members, id)
			}
			if size > 1 {
				grouped.container(fmt.Sprintf("K%d", u), members...)
			}
			units = append(units, members)
		}

		unitID := func(u int) string {
			if len(units[u]) == 1 {
				return units[u][0]
			}
			return fmt.Sprintf("K%d", u)
		}

		for j := 1; j < len(units); j++ {
			for i := range j {
				if rng.IntN(3) != 0 {
					continue
				}
				typ := allTypes[rng.IntN(len(allTypes))]
				grouped.link(unitID(i), unitID(j), typ)
				for _, from := range units[i] {
					for _, to := range units[j] {
						expanded.link(from, to, typ)
					}
				}
			}
		}

		got, err := criticalpath.Calculate[string](grouped)
		require.NoError(t, err, "round %d", round)
		want, err := criticalpath.Calculate[string](expanded)
		require.NoError(t, err, "round %d", round)

		assert.Equal(t, want.Duration(), got.Duration(), "round %d", round)
		assert.Equal(t, want.Schedules, got.Schedules, "round %d", round)
		assert.Equal(t, want.CriticalPath, got.CriticalPath, "round %d", round)
	}
}

func TestCalculate_SlackIsNeverNegativeWithoutConstraints(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	for round := range 100 {
		g := randomLeafGraph(rng, 2+rng.IntN(15))
		r, err := criticalpath.Calculate[string](g)
		require.NoError(t, err)

		require.NotEmpty(t, r.CriticalPath, "round %d", round)
		for _, id := range g.order {
			s := r.Schedules[id]
			assert.GreaterOrEqual(t, s.Slack(), 0, "round %d: task %s", round, id)
			assert.GreaterOrEqual(t, s.EarliestStart, 0, "round %d: task %s", round, id)
			assert.LessOrEqual(t, s.LatestFinish, r.Duration(), "round %d: task %s", round, id)
		}
	}
}
