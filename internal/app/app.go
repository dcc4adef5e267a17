// Package app implements the application layer for beelder.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports"
	"go.trai.ch/beelder/internal/engine/executor"
	"go.trai.ch/beelder/internal/engine/unit"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	parser       ports.DescriptionParser
	finder       ports.PathFinder
	verifier     ports.Verifier
	runner       ports.CommandRunner
	generator    ports.Generator
	console      ports.Console
	logger       ports.Logger
	telemetry    ports.Telemetry
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	parser ports.DescriptionParser,
	finder ports.PathFinder,
	verifier ports.Verifier,
	runner ports.CommandRunner,
	generator ports.Generator,
	console ports.Console,
	log ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		configLoader: loader,
		parser:       parser,
		finder:       finder,
		verifier:     verifier,
		runner:       runner,
		generator:    generator,
		console:      console,
		logger:       log,
		telemetry:    telemetry,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Dir is the directory holding the root build-description file. Defaults to ".".
	Dir string
	// ConfigPath is the settings file. Defaults to domain.DefaultConfigFile.
	ConfigPath string
	// Jobs overrides the configured number of process slots when positive.
	Jobs int
	// Verbose lowers the log level to debug.
	Verbose bool
}

type levelSetter interface {
	SetLevel(level domain.LogLevel)
}

// Run builds the root description file of opts.Dir according to args.
//
// No arguments run the Default command sequence, "generate" writes CMakeLists.txt files, and
// anything else is run as a list of command names.
func (a *App) Run(ctx context.Context, args []string, opts RunOptions) error {
	// 1. Load the settings
	settings, err := a.settings(opts)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	// 2. Locate the root file
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	rootPath, err := a.finder.Root(dir)
	if err != nil {
		a.console.Fatal("", err)
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}

	// 3. Initialize the executor and the session
	exec, err := executor.New(settings.Jobs, a.console, a.telemetry, a.logger)
	if err != nil {
		return zerr.Wrap(err, "failed to create executor")
	}
	defer func() {
		_ = a.telemetry.Close()
	}()

	session := unit.NewSession(ctx, unit.Services{
		Executor:  exec,
		Parser:    a.parser,
		Finder:    a.finder,
		Verifier:  a.verifier,
		Runner:    a.runner,
		Generator: a.generator,
		Console:   a.console,
		Logger:    a.logger,
	}, domain.NewInvocation(args), settings)

	a.logger.Debug(fmt.Sprintf("building %s with %d jobs", rootPath, settings.Jobs))

	// 4. Run the executor loop and the root unit concurrently
	g, gctx := errgroup.WithContext(session.Context())
	exec.Run(gctx)

	g.Go(func() error {
		if err := exec.Await(); err != nil {
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
		return nil
	})

	g.Go(func() error {
		// The loop only exits once stopped, even when the root never got to drain.
		defer exec.Stop()

		if _, err := session.Run(rootPath); err != nil {
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Debug(fmt.Sprintf("build finished, %d processes ran at most at once", exec.Peak()))
	return nil
}

func (a *App) settings(opts RunOptions) (domain.Settings, error) {
	path := opts.ConfigPath
	if path == "" {
		path = domain.DefaultConfigFile
	}
	settings, err := a.configLoader.Load(path)
	if err != nil {
		return domain.Settings{}, err
	}
	if opts.Jobs > 0 {
		settings.Jobs = opts.Jobs
	}
	if opts.Verbose {
		settings.LogLevel = domain.LogLevelDebug
	}
	if l, ok := a.logger.(levelSetter); ok {
		l.SetLevel(settings.LogLevel)
	}
	return settings, nil
}
