package domain

import "runtime"

const (
	// DescriptionExtension is the file extension of build-description files.
	DescriptionExtension = ".bee"
	// DefaultOutputDir is the name of the per-unit build-output directory.
	DefaultOutputDir = "BeelderBuild"
	// DefaultConfigFile is the settings file looked up in the working directory.
	DefaultConfigFile = "beelder.yaml"
)

// Settings is the tool configuration.
type Settings struct {
	// Jobs is the number of process slots.
	Jobs int
	// ParseJobs bounds how many description files are parsed at once.
	ParseJobs int
	// OutputDir is the build-output directory created next to every description file.
	OutputDir string
	// LogLevel is the minimum level of diagnostic logging.
	LogLevel LogLevel
}

// DefaultSettings returns the settings used when no configuration file is present.
func DefaultSettings() Settings {
	jobs := max(1, runtime.NumCPU())
	return Settings{
		Jobs:      jobs,
		ParseJobs: jobs,
		OutputDir: DefaultOutputDir,
		LogLevel:  LogLevelInfo,
	}
}
