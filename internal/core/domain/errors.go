package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with an id that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a task that doesn't exist in the project.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the task dependency or containment graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrMissingTaskID is returned when a schedule file declares a task without an id.
	ErrMissingTaskID = zerr.New("task has no id")

	// ErrMultipleParents is returned when a task is listed as a child of more than one container.
	ErrMultipleParents = zerr.New("task has more than one parent container")

	// ErrInvalidDates is returned when a task ends before it starts or has no dates at all.
	ErrInvalidDates = zerr.New("invalid task dates")

	// ErrInvalidDependencyType is returned when a dependency type cannot be parsed.
	ErrInvalidDependencyType = zerr.New("invalid dependency type")

	// ErrUnsupportedVersion is returned when a schedule file declares a version this tool cannot read.
	ErrUnsupportedVersion = zerr.New("unsupported schedule version")

	// ErrUnknownFormat is returned when a report format is not supported.
	ErrUnknownFormat = zerr.New("unknown report format")

	// ErrNoInputFiles is returned when analyze is invoked without any schedule file.
	ErrNoInputFiles = zerr.New("no schedule files specified")

	// ErrAnalysisFailed is returned when at least one schedule file could not be analysed.
	ErrAnalysisFailed = zerr.New("analysis failed")

	// ErrStoreReadFailed is returned when a cached report cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cached report")

	// ErrStoreUnmarshalFailed is returned when a cached report cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal cached report")

	// ErrStoreMarshalFailed is returned when a report cannot be encoded for the cache.
	ErrStoreMarshalFailed = zerr.New("failed to marshal cached report")

	// ErrStoreCreateFailed is returned when the cache directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create cache directory")

	// ErrStoreWriteFailed is returned when a cached report cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write cached report")
)
