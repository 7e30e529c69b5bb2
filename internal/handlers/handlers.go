package handlers

import (
	"context"
	"fmt"
	"io"
	"log"

	"tusk/internal/models"
	"tusk/internal/store"
	"tusk/internal/tracker"
)

// Handlers runs commands against persisted state and its dependencies.
type Handlers struct {
	store  store.Store
	logger *log.Logger
}

// Result is what a command produced, for the caller to render.
type Result struct {
	Command Command

	// Task is the created task (add).
	Task *models.Task

	// Tasks is the account listing (list, complete, uncomplete).
	Tasks []models.Task

	// Changed reports whether the state was modified and saved.
	Changed bool
}

// New creates a new Handlers instance. A nil logger discards output.
func New(s store.Store, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Handlers{
		store:  s,
		logger: logger,
	}
}

// Handle loads the state, applies cmd, and saves the state if cmd changed
// it. When Save fails the command is reported as failed.
func (h *Handlers) Handle(ctx context.Context, cmd Command) (*Result, error) {
	accounts, err := h.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	h.logger.Printf("loaded %d accounts", len(accounts))

	tr := tracker.New(accounts...)

	result, err := dispatch(tr, cmd)
	if err != nil {
		return nil, err
	}
	result.Command = cmd

	if !tr.Dirty() {
		h.logger.Printf("%s: nothing changed, skipping save", cmd)
		return result, nil
	}

	snapshot := tr.Accounts()
	if err := h.store.Save(ctx, snapshot); err != nil {
		return nil, err
	}
	h.logger.Printf("%s: saved %d accounts", cmd, len(snapshot))

	result.Changed = true
	return result, nil
}

func dispatch(tr *tracker.Tracker, cmd Command) (*Result, error) {
	switch c := cmd.(type) {
	case Add:
		return addTask(tr, c)
	case Delete:
		return deleteTask(tr, c)
	case Complete:
		return completeTask(tr, c)
	case Uncomplete:
		return uncompleteTask(tr, c)
	case List:
		return listTasks(tr, c)
	case Clear:
		return clearAccount(tr, c)
	default:
		return nil, fmt.Errorf("unsupported command %T", cmd)
	}
}
