package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tusk/internal/config"
	"tusk/internal/handlers"
	"tusk/internal/store"
	"tusk/internal/tracker"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <account> <description...>",
		Short: "Add a new task to an account",
		Long:  "Add a new task to an account. The account is created if it does not exist.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, handlers.Add{
				Account:     args[0],
				Description: strings.Join(args[1:], " "),
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account> <id>",
		Short: "Delete a task from an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return a.execute(cmd, handlers.Delete{Account: args[0], ID: id})
		},
	}
}

func newCompleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <account> <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return a.execute(cmd, handlers.Complete{Account: args[0], ID: id})
		},
	}
}

func newUncompleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "uncomplete <account> <id>",
		Aliases: []string{"incomplete"},
		Short:   "Mark a completed task as not completed",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return a.execute(cmd, handlers.Uncomplete{Account: args[0], ID: id})
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <account>",
		Short: "List all tasks of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, handlers.List{Account: args[0]})
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <account>",
		Short: "Remove all tasks from an account",
		Long:  "Remove all tasks from an account. The account is kept and new tasks continue the id sequence.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, handlers.Clear{Account: args[0]})
		},
	}
}

// parseID accepts positive decimal task ids only.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: task id must be a positive integer, got %q", tracker.ErrInvalidInput, s)
	}
	return id, nil
}

// execute runs one command under the data file lock and prints the result.
func (a *app) execute(cmd *cobra.Command, command handlers.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	a.logger.Printf("using %s backend at %s", cfg.Backend, cfg.DataPath)

	ctx := cmd.Context()

	lock, err := store.AcquireLock(ctx, cfg.DataPath, cfg.LockTimeout)
	if err != nil {
		return err
	}
	defer a.logFailure("release lock", lock.Release)

	s, err := store.Open(cfg.Backend, cfg.DataPath)
	if err != nil {
		return err
	}
	defer a.logFailure("close store", s.Close)

	result, err := handlers.New(s, a.logger).Handle(ctx, command)
	if err != nil {
		return err
	}

	newPrinter(a.out).result(result)
	return nil
}

// logFailure runs a cleanup step whose error cannot change the outcome of
// the command and reports it on the verbose log.
func (a *app) logFailure(what string, fn func() error) {
	if err := fn(); err != nil {
		a.logger.Printf("failed to %s: %v", what, err)
	}
}
