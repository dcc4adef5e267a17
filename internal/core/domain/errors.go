package domain

import "go.trai.ch/zerr"

var (
	// ErrNoRootFile is returned when the working directory holds no build-description file.
	ErrNoRootFile = zerr.New("no root files are presented")

	// ErrMultipleRootFiles is returned when the working directory holds more than one build-description file.
	ErrMultipleRootFiles = zerr.New("multiple root files are presented")

	// ErrParse is returned when a build-description file is syntactically malformed.
	ErrParse = zerr.New("parse error")

	// ErrInvalidField is returned when a field combination is not allowed for the target kind.
	ErrInvalidField = zerr.New("invalid field")

	// ErrIncludeNotFound is returned when an Include or Depends pattern matches no build-description file.
	ErrIncludeNotFound = zerr.New("included path does not exist")

	// ErrUnknownExtension is returned when a source file has no compiler registered for its extension.
	ErrUnknownExtension = zerr.New("no option for extension")

	// ErrCycleDetected is returned when build-description files include or depend on each other in a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrDependencyNotBuilt is returned when a static library dependency finished without being built.
	ErrDependencyNotBuilt = zerr.New("dependency was not built")

	// ErrBuildFailed is returned when a compile, link or archive step of a unit failed.
	ErrBuildFailed = zerr.New("build failed")

	// ErrBuildExecutionFailed is returned by the application when the build did not complete.
	// The failure has already been reported to the user when this error surfaces.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrCommandFailed is returned when a user-defined command exits with a non-zero status.
	ErrCommandFailed = zerr.New("command failed")

	// ErrExecutorStopped is returned when work is enqueued after the executor has been stopped.
	ErrExecutorStopped = zerr.New("executor stopped")
)
