// Package config provides the schedule file loader for critpath.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/critpath/internal/core/domain"
	"go.trai.ch/critpath/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersions is the range of schedule file versions the loader reads.
const SupportedVersions = ">= 1, < 2"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the schedule file at path and returns a validated domain.Project.
func (l *Loader) Load(path string) (*domain.Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read schedule file"), "file", path)
	}

	var schedule Schedule
	if err := yaml.Unmarshal(data, &schedule); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse schedule file"), "file", path)
	}

	if err := checkVersion(schedule.Version); err != nil {
		return nil, zerr.With(err, "file", path)
	}

	project, err := l.buildProject(&schedule)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid schedule"), "file", path)
	}
	return project, nil
}

func checkVersion(version string) error {
	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedVersion, "invalid version"), "version", version)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return zerr.Wrap(err, "invalid version constraint")
	}
	if !c.Check(v) {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrUnsupportedVersion, "version out of range"),
			"version", version), "supported", SupportedVersions)
	}
	return nil
}

func (l *Loader) buildProject(schedule *Schedule) (*domain.Project, error) {
	project := domain.NewProject(schedule.Name)
	project.Version = schedule.Version

	for i, dto := range schedule.Tasks {
		if dto == nil || strings.TrimSpace(dto.ID) == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrMissingTaskID, "invalid task"), "index", i)
		}
		task := l.mapTask(dto)
		if err := project.AddTask(task); err != nil {
			return nil, err
		}
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}
	return project, nil
}

func (l *Loader) mapTask(dto *TaskDTO) *domain.Task {
	id := domain.NewInternedString(dto.ID)
	task := &domain.Task{
		ID:       id,
		Name:     dto.Name,
		Start:    dto.Start.Time(),
		End:      dto.End.Time(),
		Children: internStrings(dto.Children),
	}
	if task.Name == "" {
		task.Name = dto.ID
	}

	if dto.Duration != nil {
		task.Duration = *dto.Duration
		task.FixedDuration = true
		if task.End.IsZero() && !task.Start.IsZero() {
			task.End = domain.AddDays(task.Start, task.Duration)
		}
	}

	if task.IsContainer() && (!dto.Start.IsZero() || !dto.End.IsZero()) {
		l.Logger.Warn("container dates are derived from its tasks, ignoring declared dates", "task", dto.ID)
		task.Start, task.End = time.Time{}, time.Time{}
	}

	for _, dep := range dto.DependsOn {
		task.Dependencies = append(task.Dependencies, domain.Link{
			From: domain.NewInternedString(dep.Task),
			To:   id,
			Type: dep.Type,
		})
	}

	c := dto.Constraints
	if !c.StartNotEarlierThan.IsZero() {
		task.StartConstraints = append(task.StartConstraints, domain.NotEarlierThan(c.StartNotEarlierThan.Time()))
	}
	if !c.StartOn.IsZero() {
		task.StartConstraints = append(task.StartConstraints, domain.EqualTo(c.StartOn.Time()))
	}
	if !c.FinishNotLaterThan.IsZero() {
		task.EndConstraints = append(task.EndConstraints, domain.NotLaterThan(c.FinishNotLaterThan.Time()))
	}
	if !c.Deadline.IsZero() {
		task.EndConstraints = append(task.EndConstraints, domain.NotLaterThan(c.Deadline.Time()))
	}

	return task
}

func internStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}
