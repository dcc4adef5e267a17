// Package config provides the settings loader for beelder.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the settings file at path. A missing file yields the default settings.
func (l *Loader) Load(path string) (domain.Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Debug("no settings file at " + path + ", using defaults")
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	settings, err := Parse(data)
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}
	return settings, nil
}

// Parse decodes settings from YAML, applying defaults for absent keys.
func Parse(data []byte) (domain.Settings, error) {
	var file Settingsfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return domain.Settings{}, zerr.Wrap(err, "failed to parse config file")
	}

	settings := domain.DefaultSettings()

	if file.Jobs != nil {
		if *file.Jobs < 0 {
			return domain.Settings{}, zerr.With(zerr.New("jobs must not be negative"), "jobs", *file.Jobs)
		}
		if *file.Jobs > 0 {
			settings.Jobs = *file.Jobs
		}
	}
	if file.ParseJobs != nil {
		if *file.ParseJobs < 0 {
			return domain.Settings{}, zerr.With(zerr.New("parse_jobs must not be negative"), "parse_jobs", *file.ParseJobs)
		}
		if *file.ParseJobs > 0 {
			settings.ParseJobs = *file.ParseJobs
		}
	}

	if file.OutputDir != "" {
		dir := filepath.Clean(file.OutputDir)
		if filepath.IsAbs(dir) || dir == "." || dir == ".." || strings.HasPrefix(dir, ".."+string(filepath.Separator)) {
			return domain.Settings{}, zerr.With(zerr.New("output_dir must be a relative path inside the unit directory"), "output_dir", file.OutputDir)
		}
		settings.OutputDir = dir
	}

	if file.LogLevel != "" {
		level, ok := domain.ParseLogLevel(file.LogLevel)
		if !ok {
			return domain.Settings{}, zerr.With(zerr.New("unknown log level"), "log_level", file.LogLevel)
		}
		settings.LogLevel = level
	}

	return settings, nil
}
