package app

import (
	"cmp"
	"slices"

	"go.trai.ch/critpath/internal/core/domain"
	"go.trai.ch/critpath/internal/engine/criticalpath"
)

// BuildReport converts a calculation result into the report of one schedule file.
// Task rows and the critical path are ordered by earliest start, then by id.
func BuildReport(source string, p *domain.Project, r *criticalpath.Result[domain.InternedString]) domain.Report {
	rep := domain.Report{
		Source:       source,
		Project:      p.Name,
		Status:       domain.AnalysisStatusCompleted,
		Duration:     r.Duration(),
		CriticalPath: []string{},
		Tasks:        make([]domain.TaskRow, 0, len(r.Order)),
	}
	if start, ok := r.Date(0); ok {
		rep.Start = start
		rep.Finish, _ = r.Date(r.Duration())
	}

	for _, id := range r.Order {
		rep.Tasks = append(rep.Tasks, taskRow(p, r, id))
	}
	slices.SortStableFunc(rep.Tasks, func(a, b domain.TaskRow) int {
		return cmp.Or(
			cmp.Compare(a.EarliestStart, b.EarliestStart),
			cmp.Compare(a.EarliestFinish, b.EarliestFinish),
			cmp.Compare(a.ID, b.ID),
		)
	})
	for _, row := range rep.Tasks {
		if row.Critical {
			rep.CriticalPath = append(rep.CriticalPath, row.ID)
		}
	}

	for _, c := range criticalpath.CriticalContainers[domain.InternedString](p, r) {
		rep.CriticalContainers = append(rep.CriticalContainers, c.String())
	}

	for _, v := range r.Violations {
		rep.Violations = append(rep.Violations, domain.ViolationRow{
			Task:     v.Task.String(),
			Side:     v.Side.String(),
			Proposed: v.Proposed,
			Applied:  v.Applied,
		})
	}

	return rep
}

func taskRow(p *domain.Project, r *criticalpath.Result[domain.InternedString], id domain.InternedString) domain.TaskRow {
	s := r.Schedules[id]
	row := domain.TaskRow{
		ID:             id.String(),
		Duration:       s.Duration,
		EarliestStart:  s.EarliestStart,
		EarliestFinish: s.EarliestFinish,
		LatestStart:    s.LatestStart,
		LatestFinish:   s.LatestFinish,
		Slack:          s.Slack(),
		Critical:       s.Critical(),
	}
	if task, ok := p.Task(id); ok && task.Name != row.ID {
		row.Name = task.Name
	}
	if parent, ok := p.Parent(id); ok {
		row.Container = parent.String()
	}
	if start, ok := r.Date(s.EarliestStart); ok {
		row.Start = start
		row.Finish, _ = r.Date(s.EarliestFinish)
	}
	return row
}
