package domain

import "time"

// Report is the rendered outcome of the critical path analysis of one schedule file.
// Offsets are whole days from Start; dates are omitted when the schedule has no anchor.
type Report struct {
	Source  string         `json:"source"`
	Project string         `json:"project,omitzero"`
	Status  AnalysisStatus `json:"status"`
	Error   string         `json:"error,omitzero"`

	Start    time.Time `json:"start,omitzero"`
	Finish   time.Time `json:"finish,omitzero"`
	Duration int       `json:"duration"`

	CriticalPath       []string `json:"critical_path"`
	CriticalContainers []string `json:"critical_containers,omitempty"`

	Tasks      []TaskRow      `json:"tasks"`
	Violations []ViolationRow `json:"violations,omitempty"`
}

// TaskRow is the computed schedule of one leaf task.
type TaskRow struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitzero"`
	Container string `json:"container,omitzero"`

	Duration       int  `json:"duration"`
	EarliestStart  int  `json:"earliest_start"`
	EarliestFinish int  `json:"earliest_finish"`
	LatestStart    int  `json:"latest_start"`
	LatestFinish   int  `json:"latest_finish"`
	Slack          int  `json:"slack"`
	Critical       bool `json:"critical"`

	Start  time.Time `json:"start,omitzero"`
	Finish time.Time `json:"finish,omitzero"`
}

// ViolationRow is a date constraint that could not be honoured.
type ViolationRow struct {
	Task     string    `json:"task"`
	Side     string    `json:"side"`
	Proposed time.Time `json:"proposed"`
	Applied  time.Time `json:"applied"`
}

// CachedReport is a report stored together with the hash of the schedule it was computed from.
type CachedReport struct {
	Path      string    `json:"path"`
	InputHash string    `json:"input_hash,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
	Report    Report    `json:"report"`
}
