package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/beelder/cmd/beelder/commands"
	"go.trai.ch/beelder/internal/app"
	"go.trai.ch/beelder/internal/build"
	"go.trai.ch/beelder/internal/core/domain"
)

type mockApp struct {
	runFunc func(ctx context.Context, args []string, opts app.RunOptions) error
}

func (m *mockApp) Run(ctx context.Context, args []string, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, args, opts)
	}
	return nil
}

func TestCommands_Root(t *testing.T) {
	t.Run("passes arguments through", func(t *testing.T) {
		var capturedArgs []string
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, args []string, _ app.RunOptions) error {
				capturedArgs = args
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"clean", "Build", "version", "help"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, []string{"clean", "Build", "version", "help"}, capturedArgs)
	})

	t.Run("defaults", func(t *testing.T) {
		var capturedArgs []string
		var capturedOpts app.RunOptions

		mock := &mockApp{
			runFunc: func(_ context.Context, args []string, opts app.RunOptions) error {
				capturedArgs = args
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Empty(t, capturedArgs)
		assert.Equal(t, app.RunOptions{
			Dir:        ".",
			ConfigPath: domain.DefaultConfigFile,
		}, capturedOpts)
	})

	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedArgs []string
		var capturedOpts app.RunOptions

		mock := &mockApp{
			runFunc: func(_ context.Context, args []string, opts app.RunOptions) error {
				capturedArgs = args
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"-j", "4", "--config", "ci.yaml", "-v", "-C", "project", "generate"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"generate"}, capturedArgs)
		assert.Equal(t, app.RunOptions{
			Dir:        "project",
			ConfigPath: "ci.yaml",
			Jobs:       4,
			Verbose:    true,
		}, capturedOpts)
	})

	t.Run("rejects negative jobs", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"--jobs=-1"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jobs must not be negative")
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"Build"})
		// Silence output to avoid polluting test logs
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("forwards the context", func(t *testing.T) {
		type key struct{}
		ctx := context.WithValue(context.Background(), key{}, "value")

		mock := &mockApp{
			runFunc: func(ctx context.Context, _ []string, _ app.RunOptions) error {
				assert.Equal(t, "value", ctx.Value(key{}))
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{})
		require.NoError(t, cli.Execute(ctx))
	})
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{
		runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
			panic("should not be called")
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "beelder version "+build.Version)
	assert.Contains(t, buf.String(), "commit: "+build.Commit)
}

func TestCommands_Help(t *testing.T) {
	cli := commands.New(&mockApp{})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--help"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "--jobs")
	assert.Contains(t, buf.String(), "Default command sequence")
}

func TestCommands_New_ShortFlags(t *testing.T) {
	require.NotPanics(t, func() { _ = commands.New(&mockApp{}) })

	var capturedOpts app.RunOptions
	cli := commands.New(&mockApp{
		runFunc: func(_ context.Context, _ []string, opts app.RunOptions) error {
			capturedOpts = opts
			return nil
		},
	})
	cli.SetArgs([]string{"-v"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, capturedOpts.Verbose)
}

func TestCommands_VersionAfterVerbose(t *testing.T) {
	cli := commands.New(&mockApp{
		runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
			panic("should not be called")
		},
	})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"-v", "--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "beelder version "+build.Version)
}
