package config

import (
	"time"

	"go.trai.ch/critpath/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Schedule represents the structure of a schedule file.
type Schedule struct {
	Version string     `yaml:"version"`
	Name    string     `yaml:"name"`
	Tasks   []*TaskDTO `yaml:"tasks"`
}

// TaskDTO represents a task or container definition in the schedule.
type TaskDTO struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Start       Date            `yaml:"start"`
	End         Date            `yaml:"end"`
	Duration    *int            `yaml:"duration"`
	Children    []string        `yaml:"children"`
	DependsOn   []DependencyDTO `yaml:"dependsOn"`
	Constraints ConstraintsDTO  `yaml:"constraints"`
}

// DependencyDTO is one incoming dependency of a task.
// The short form is the bare id of the origin task, which implies end-start.
type DependencyDTO struct {
	Task string                `yaml:"task"`
	Type domain.DependencyType `yaml:"type"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *DependencyDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*d = DependencyDTO{Task: node.Value}
		return nil
	}
	type plain DependencyDTO
	var p plain
	if err := node.Decode(&p); err != nil {
		return zerr.Wrap(err, "failed to decode dependency")
	}
	*d = DependencyDTO(p)
	return nil
}

// ConstraintsDTO holds the date constraints of a task.
type ConstraintsDTO struct {
	StartNotEarlierThan Date `yaml:"startNotEarlierThan"`
	StartOn             Date `yaml:"startOn"`
	FinishNotLaterThan  Date `yaml:"finishNotLaterThan"`
	Deadline            Date `yaml:"deadline"`
}

// Date is a calendar date written as YYYY-MM-DD.
type Date time.Time

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	t, err := domain.ParseDate(node.Value)
	if err != nil {
		return zerr.With(err, "line", node.Line)
	}
	*d = Date(t)
	return nil
}

// Time returns the date as a time.Time; the zero Date yields the zero time.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// IsZero reports whether the date was left out.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}
