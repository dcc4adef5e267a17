package domain

import "strings"

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLogLevel converts a textual level, defaulting to info if unknown.
func ParseLogLevel(s string) (LogLevel, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug, true
	case "info", "":
		return LogLevelInfo, true
	case "warn", "warning":
		return LogLevelWarn, true
	case "error":
		return LogLevelError, true
	default:
		return LogLevelInfo, false
	}
}

// Outcome classifies how a reaped executable unit finished.
type Outcome int

const (
	// OutcomeSuccess means exit status zero and no output.
	OutcomeSuccess Outcome = iota
	// OutcomeWarning means exit status zero with output on stdout or stderr.
	OutcomeWarning
	// OutcomeError means a non-zero exit status.
	OutcomeError
)

// ClassifyOutcome derives the outcome from an exit status and captured output.
func ClassifyOutcome(exitStatus int, stdout, stderr []byte) Outcome {
	switch {
	case exitStatus != 0:
		return OutcomeError
	case len(stdout) > 0 || len(stderr) > 0:
		return OutcomeWarning
	default:
		return OutcomeSuccess
	}
}
