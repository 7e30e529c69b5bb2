package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

const welcome = `Welcome to TUSK!

Keep tasks in separate named accounts from the command line.

Usage:
  tusk <command> <account> [arguments]

Commands:
  add         Add a task to an account        tusk add work "Book flight"
  delete      Delete a task                   tusk delete work 2
  complete    Mark a task as completed        tusk complete work 1
  uncomplete  Mark a task as not completed    tusk uncomplete work 1
  list        List the tasks of an account    tusk list work
  clear       Remove every task of an account tusk clear work
  config      Show the effective configuration

Accounts are created by their first "add"; every other command needs an
existing account. Run "tusk <command> --help" for details.
`

// app carries the streams and per-invocation state shared by commands.
type app struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
	logger  *log.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tusk",
		Short: "TUSK - tasks organized by account",
		Long:  welcome,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(a.out, welcome)
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = log.New(io.Discard, "", 0)
			if a.verbose {
				a.logger = log.New(a.errOut, "tusk: ", 0)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.String("data", "", "path of the data file (default ~/.tusk/tasks.<ext>)")
	flags.String("backend", "", "storage backend: json, yaml or sqlite (default json)")
	flags.Duration("lock-timeout", 0, "how long to wait for another tusk process (default 5s)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(
		newAddCmd(a),
		newDeleteCmd(a),
		newCompleteCmd(a),
		newUncompleteCmd(a),
		newListCmd(a),
		newClearCmd(a),
		newConfigCmd(a),
	)

	return root
}

// Execute runs tusk with the process arguments and returns the exit code.
func Execute(version string) int {
	return run(context.Background(), version, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, version string, args []string, out, errOut io.Writer) int {
	a := &app{out: out, errOut: errOut}
	root := newRootCmd(a)
	root.Version = version
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		reportError(errOut, err, a.verbose)
		return ExitCode(err)
	}
	return ExitOK
}
