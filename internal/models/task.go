package models

import (
	"errors"
	"strings"
)

// Task represents a single task within an account.
type Task struct {
	ID          int64  `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if t.ID <= 0 {
		return errors.New("id must be positive")
	}

	if strings.TrimSpace(t.Description) == "" {
		return errors.New("description is required")
	}

	return nil
}

// Mark returns the checkbox shown next to the task in listings.
func (t *Task) Mark() string {
	if t.Completed {
		return "[X]"
	}
	return "[ ]"
}
