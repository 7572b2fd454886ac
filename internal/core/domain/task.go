package domain

import "time"

// Task represents a unit of work in a project schedule.
// It uses InternedString for identifiers that are repeated across links and containers.
// A task with children is a container: its own dates are ignored and derived from its leaves.
type Task struct {
	ID    InternedString
	Name  string
	Start time.Time
	End   time.Time

	// Duration overrides the day count derived from Start and End when FixedDuration is set.
	Duration      int
	FixedDuration bool

	Children     []InternedString
	Dependencies []Link

	StartConstraints []Constraint
	EndConstraints   []Constraint
}

// IsContainer reports whether the task groups other tasks.
func (t *Task) IsContainer() bool {
	return len(t.Children) > 0
}
