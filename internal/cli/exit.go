package cli

import (
	"errors"
	"fmt"
	"io"

	"tusk/internal/store"
	"tusk/internal/tracker"
)

// Exit codes, one per error kind.
const (
	ExitOK              = 0
	ExitUsage           = 1
	ExitInvalidInput    = 2
	ExitAccountNotFound = 3
	ExitTaskNotFound    = 4
	ExitCorruptState    = 5
	ExitPersistence     = 6
	ExitLocked          = 7
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, tracker.ErrInvalidInput):
		return ExitInvalidInput
	case errors.Is(err, tracker.ErrAccountNotFound):
		return ExitAccountNotFound
	case errors.Is(err, tracker.ErrTaskNotFound):
		return ExitTaskNotFound
	case errors.Is(err, store.ErrCorruptState):
		return ExitCorruptState
	case errors.Is(err, store.ErrLocked):
		return ExitLocked
	case errors.Is(err, store.ErrPersistence):
		return ExitPersistence
	default:
		return ExitUsage
	}
}

// reportError prints err with a hint for the user. Verbose mode adds the
// stack trace recorded for storage errors.
func reportError(w io.Writer, err error, verbose bool) {
	if verbose {
		fmt.Fprintf(w, "Error: %+v\n", err)
	} else {
		fmt.Fprintf(w, "Error: %v\n", err)
	}

	var path string
	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		path = storeErr.Path
	}

	switch ExitCode(err) {
	case ExitAccountNotFound:
		fmt.Fprintln(w, "Accounts are created by adding a task to them; check the account name.")
	case ExitCorruptState:
		fmt.Fprintf(w, "The data in %s is not valid task data. Inspect or restore the file; it has not been modified.\n", path)
	case ExitPersistence:
		fmt.Fprintln(w, "The change was not saved.")
	case ExitLocked:
		fmt.Fprintln(w, "Another tusk process is using the data file. Try again in a moment.")
	}
}
