// Package commands implements the CLI of the beelder build tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/beelder/internal/app"
	"go.trai.ch/beelder/internal/build"
	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for beelder.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	opts    app.RunOptions
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, args []string, opts app.RunOptions) error
}

// New creates a new CLI instance with the given app.
//
// beelder has no subcommands: every positional argument is a command name of the root
// build-description file, so a user command may be called "version" or "help".
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "beelder [generate | command...]",
		Short: "A dependency-driven build tool for C and C++ projects",
		Long: fmt.Sprintf(`beelder builds the project described by the single *%s file of the current directory.

Without arguments the file's Default command sequence runs. "generate" writes a
CMakeLists.txt next to every description file instead of building. Any other
arguments are command names run in order on the root file; %q builds it.`,
			domain.DescriptionExtension, domain.BuildCommand),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.opts.Jobs < 0 {
				return zerr.With(zerr.New("jobs must not be negative"), "jobs", c.opts.Jobs)
			}
			return c.app.Run(cmd.Context(), args, c.opts)
		},
	}

	// Own flags first: the default version flag only takes -v while it is free.
	flags := rootCmd.Flags()
	flags.StringVarP(&c.opts.ConfigPath, "config", "c", domain.DefaultConfigFile, "Settings file")
	flags.StringVarP(&c.opts.Dir, "directory", "C", ".", "Directory holding the root description file")
	flags.IntVarP(&c.opts.Jobs, "jobs", "j", 0, "Number of processes run at once (default: number of CPUs)")
	flags.BoolVarP(&c.opts.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd = rootCmd
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
