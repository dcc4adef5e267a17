// Package shell runs user-defined command lines through the system shell.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Runner)(nil)

// fallbackShell is used when no sh is found on the command's PATH.
const fallbackShell = "/bin/sh"

// Runner implements ports.CommandRunner using os/exec and sh -c.
type Runner struct {
	logger    ports.Logger
	telemetry ports.Telemetry

	mu     sync.RWMutex
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a Runner writing command output to the process stdout and stderr.
func NewRunner(logger ports.Logger, telemetry ports.Telemetry) *Runner {
	return &Runner{
		logger:    logger,
		telemetry: telemetry,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// SetOutput redirects command output.
func (r *Runner) SetOutput(stdout, stderr io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stdout = stdout
	r.stderr = stderr
}

// Run executes line with sh -c in dir and blocks until it exits.
// The environment is the process environment overridden by env, except PATH, which is
// prepended to the inherited PATH.
func (r *Runner) Run(ctx context.Context, line, dir string, env map[string]string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	cmdEnv := resolveEnvironment(os.Environ(), env)
	shell, err := lookPath("sh", cmdEnv)
	if err != nil {
		shell = fallbackShell
	}

	ctx, vertex := r.telemetry.Record(ctx, "Command "+line)

	cmd := exec.CommandContext(ctx, shell, "-c", line) //nolint:gosec // user provided command
	cmd.Args[0] = "sh"
	cmd.Dir = dir
	cmd.Env = cmdEnv

	r.mu.RLock()
	cmd.Stdout = io.MultiWriter(r.stdout, vertex.Stdout())
	cmd.Stderr = io.MultiWriter(r.stderr, vertex.Stderr())
	r.mu.RUnlock()

	r.logger.Debug("running command: " + line)

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.With(zerr.Wrap(domain.ErrCommandFailed, err.Error()), "exit_code", exitCode)
		vertex.Complete(err)
		return err
	}

	vertex.Complete(nil)
	return nil
}

// resolveEnvironment merges the defines into the system environment.
// A PATH define is prepended to the system PATH; every other define overrides.
func resolveEnvironment(sysEnv []string, defines map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(defines))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	for k, v := range defines {
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
