package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/beelder/internal/adapters/telemetry"
	"go.trai.ch/beelder/internal/app"
	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newProvider(application *app.App, logger *mocks.MockLogger) ComponentProvider {
	return func(_ context.Context) (*app.Components, func(), error) {
		return app.NewComponents(application, logger), func() {}, nil
	}
}

// TestRun_Version verifies that the run function returns 0 when the command succeeds.
func TestRun_Version(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	application := app.New(
		mocks.NewMockConfigLoader(ctrl),
		mocks.NewMockDescriptionParser(ctrl),
		mocks.NewMockPathFinder(ctrl),
		mocks.NewMockVerifier(ctrl),
		mocks.NewMockCommandRunner(ctrl),
		mocks.NewMockGenerator(ctrl),
		mocks.NewMockConsole(ctrl),
		mockLogger,
		telemetry.NewNoop(),
	)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"--version"}, stderr, newProvider(application, mockLogger))
	assert.Equal(t, 0, exitCode)
	assert.Empty(t, stderr.String())
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"--version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ConfigurationError verifies that errors outside the build are logged.
func TestRun_ConfigurationError(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	application := app.New(
		mockLoader,
		mocks.NewMockDescriptionParser(ctrl),
		mocks.NewMockPathFinder(ctrl),
		mocks.NewMockVerifier(ctrl),
		mocks.NewMockCommandRunner(ctrl),
		mocks.NewMockGenerator(ctrl),
		mocks.NewMockConsole(ctrl),
		mockLogger,
		telemetry.NewNoop(),
	)

	loadErr := errors.New("load failed")
	mockLoader.EXPECT().Load("ci.yaml").Return(domain.Settings{}, loadErr)
	mockLogger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, loadErr)
	})

	exitCode := run(context.Background(), []string{"-c", "ci.yaml"}, new(bytes.Buffer), newProvider(application, mockLogger))
	assert.Equal(t, 1, exitCode)
}

// TestRun_BuildFailure verifies that a failed build exits 1 without logging again.
func TestRun_BuildFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockFinder := mocks.NewMockPathFinder(ctrl)
	mockConsole := mocks.NewMockConsole(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	application := app.New(
		mockLoader,
		mocks.NewMockDescriptionParser(ctrl),
		mockFinder,
		mocks.NewMockVerifier(ctrl),
		mocks.NewMockCommandRunner(ctrl),
		mocks.NewMockGenerator(ctrl),
		mockConsole,
		mockLogger,
		telemetry.NewNoop(),
	)

	dir := t.TempDir()
	mockLoader.EXPECT().Load(domain.DefaultConfigFile).Return(domain.DefaultSettings(), nil)
	mockFinder.EXPECT().Root(dir).Return("", domain.ErrNoRootFile)
	mockConsole.EXPECT().Fatal("", domain.ErrNoRootFile)
	// Error must not be called.

	exitCode := run(context.Background(), []string{"-C", dir}, new(bytes.Buffer), newProvider(application, mockLogger))
	assert.Equal(t, 1, exitCode)
}

// TestRun_Build runs the whole graph, with debug logging, against a project that only defines commands.
func TestRun_Build(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.bee"), []byte("Commands:\n    touch: touch done\n"), 0o600))

	// The real components resolve through the registered graph.
	provider := func(ctx context.Context) (*app.Components, func(), error) {
		c, err := resolveComponents(ctx)
		return c, func() {}, err
	}

	exitCode := run(context.Background(), []string{"-v", "-C", dir, "touch"}, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
	assert.FileExists(t, filepath.Join(dir, "done"))
}

// TestRun_VerboseVersion verifies that -v and --version coexist on the command line.
func TestRun_VerboseVersion(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	application := app.New(
		mocks.NewMockConfigLoader(ctrl),
		mocks.NewMockDescriptionParser(ctrl),
		mocks.NewMockPathFinder(ctrl),
		mocks.NewMockVerifier(ctrl),
		mocks.NewMockCommandRunner(ctrl),
		mocks.NewMockGenerator(ctrl),
		mocks.NewMockConsole(ctrl),
		mockLogger,
		telemetry.NewNoop(),
	)

	exitCode := run(context.Background(), []string{"-v", "--version"}, new(bytes.Buffer), newProvider(application, mockLogger))
	assert.Equal(t, 0, exitCode)
}
