// Package tracker holds the in-memory task store for a single invocation.
//
// Only Add creates accounts. Every other operation requires the account to
// exist already, so a mistyped account name surfaces as ErrAccountNotFound
// instead of silently creating an empty bucket.
package tracker

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"tusk/internal/models"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrAccountNotFound = errors.New("account not found")
	ErrTaskNotFound    = errors.New("task not found")
)

// Tracker is the in-memory aggregate of all accounts and their tasks.
type Tracker struct {
	accounts map[string]*models.Account
	dirty    bool
}

// New builds a tracker from previously loaded accounts. The accounts are
// copied; later changes to the tracker do not leak into the caller's slice.
func New(accounts ...models.Account) *Tracker {
	t := &Tracker{accounts: make(map[string]*models.Account, len(accounts))}
	for i := range accounts {
		a := accounts[i].Clone()
		t.accounts[a.Name] = &a
	}
	return t
}

// Dirty reports whether any operation changed the state since New.
func (t *Tracker) Dirty() bool {
	return t.dirty
}

// Has reports whether the account exists.
func (t *Tracker) Has(account string) bool {
	_, ok := t.accounts[account]
	return ok
}

// Accounts returns a deep copy of every account, ordered by name.
func (t *Tracker) Accounts() []models.Account {
	names := make([]string, 0, len(t.accounts))
	for name := range t.accounts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]models.Account, 0, len(names))
	for _, name := range names {
		out = append(out, t.accounts[name].Clone())
	}
	return out
}

// Add appends a task to the account, creating the account on first use.
func (t *Tracker) Add(account, description string) (models.Task, error) {
	if err := validateAccountName(account); err != nil {
		return models.Task{}, err
	}
	if strings.TrimSpace(description) == "" {
		return models.Task{}, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	a, ok := t.accounts[account]
	if ok && a.NextID == math.MaxInt64 {
		return models.Task{}, fmt.Errorf("%w: account %q has no task ids left", ErrInvalidInput, account)
	}
	if !ok {
		a = models.NewAccount(account)
		t.accounts[account] = a
	}

	task := a.AddTask(description)
	t.dirty = true
	return task, nil
}

// Delete removes a task from the account.
func (t *Tracker) Delete(account string, id int64) error {
	a, err := t.lookup(account, id)
	if err != nil {
		return err
	}

	if !a.RemoveTask(id) {
		return taskNotFound(account, id)
	}
	t.dirty = true
	return nil
}

// Complete marks a task as done. Completing a done task is a no-op.
func (t *Tracker) Complete(account string, id int64) error {
	return t.setCompleted(account, id, true)
}

// Uncomplete marks a task as not done. Uncompleting an open task is a no-op.
func (t *Tracker) Uncomplete(account string, id int64) error {
	return t.setCompleted(account, id, false)
}

// List returns a copy of the account's tasks in insertion order.
func (t *Tracker) List(account string) ([]models.Task, error) {
	a, err := t.account(account)
	if err != nil {
		return nil, err
	}
	return a.Clone().Tasks, nil
}

// Clear removes every task from the account. The account itself and its
// id counter survive.
func (t *Tracker) Clear(account string) error {
	a, err := t.account(account)
	if err != nil {
		return err
	}

	if a.ClearTasks() > 0 {
		t.dirty = true
	}
	return nil
}

func (t *Tracker) setCompleted(account string, id int64, completed bool) error {
	a, err := t.lookup(account, id)
	if err != nil {
		return err
	}

	i := a.IndexOf(id)
	if i < 0 {
		return taskNotFound(account, id)
	}
	if a.Tasks[i].Completed != completed {
		a.Tasks[i].Completed = completed
		t.dirty = true
	}
	return nil
}

// lookup validates the id and resolves the account.
func (t *Tracker) lookup(account string, id int64) (*models.Account, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: task id must be a positive integer, got %d", ErrInvalidInput, id)
	}
	return t.account(account)
}

func (t *Tracker) account(name string) (*models.Account, error) {
	if err := validateAccountName(name); err != nil {
		return nil, err
	}

	a, ok := t.accounts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, name)
	}
	return a, nil
}

func validateAccountName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: account name is required", ErrInvalidInput)
	}
	return nil
}

func taskNotFound(account string, id int64) error {
	return fmt.Errorf("%w: %d in account %q", ErrTaskNotFound, id, account)
}
