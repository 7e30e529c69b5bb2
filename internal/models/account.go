package models

import (
	"errors"
	"fmt"
	"strings"
)

// Account is a named bucket of tasks. Tasks are kept in insertion order,
// which is also the display order.
type Account struct {
	Name   string `json:"name" yaml:"name"`
	NextID int64  `json:"next_id" yaml:"next_id"`
	Tasks  []Task `json:"tasks" yaml:"tasks"`
}

// NewAccount creates an empty account whose first task will get id 1.
func NewAccount(name string) *Account {
	return &Account{
		Name:   name,
		NextID: 1,
		Tasks:  []Task{},
	}
}

// Validate checks the account and every task in it. It is used to reject
// persisted state that could not have been produced by the tracker.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("name is required")
	}

	if a.NextID < 1 {
		return fmt.Errorf("account %q: next_id must be at least 1", a.Name)
	}

	seen := make(map[int64]struct{}, len(a.Tasks))
	for i := range a.Tasks {
		task := &a.Tasks[i]
		if err := task.Validate(); err != nil {
			return fmt.Errorf("account %q: task %d: %w", a.Name, task.ID, err)
		}
		if _, dup := seen[task.ID]; dup {
			return fmt.Errorf("account %q: duplicate task id %d", a.Name, task.ID)
		}
		seen[task.ID] = struct{}{}

		if task.ID >= a.NextID {
			return fmt.Errorf("account %q: task id %d is not below next_id %d", a.Name, task.ID, a.NextID)
		}
	}

	return nil
}

// AddTask appends a new incomplete task and advances NextID.
func (a *Account) AddTask(description string) Task {
	task := Task{ID: a.NextID, Description: description}
	a.Tasks = append(a.Tasks, task)
	a.NextID++
	return task
}

// IndexOf returns the position of the task with the given id, or -1.
func (a *Account) IndexOf(id int64) int {
	for i := range a.Tasks {
		if a.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// RemoveTask deletes the task with the given id, keeping the order of the
// remaining tasks. It reports whether a task was removed.
func (a *Account) RemoveTask(id int64) bool {
	i := a.IndexOf(id)
	if i < 0 {
		return false
	}
	a.Tasks = append(a.Tasks[:i], a.Tasks[i+1:]...)
	return true
}

// ClearTasks removes every task. NextID is left untouched so cleared ids
// are never handed out again.
func (a *Account) ClearTasks() int {
	n := len(a.Tasks)
	a.Tasks = []Task{}
	return n
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() Account {
	tasks := make([]Task, len(a.Tasks))
	copy(tasks, a.Tasks)
	return Account{Name: a.Name, NextID: a.NextID, Tasks: tasks}
}
