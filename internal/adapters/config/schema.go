package config

// Settingsfile represents the structure of the beelder.yaml settings file.
// Absent keys keep their default value.
type Settingsfile struct {
	Jobs      *int   `yaml:"jobs"`
	ParseJobs *int   `yaml:"parse_jobs"`
	OutputDir string `yaml:"output_dir"`
	LogLevel  string `yaml:"log_level"`
}
