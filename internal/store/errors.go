package store

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrCorruptState means persisted data exists but is not a valid state.
	ErrCorruptState = errors.New("corrupt state")

	// ErrPersistence means reading or writing durable storage failed.
	ErrPersistence = errors.New("persistence failure")

	// ErrLocked means another process holds the data file lock.
	ErrLocked = errors.New("data file is locked by another process")
)

// Error records which operation on which path failed, and why.
// errors.Is matches both Kind and the underlying cause.
type Error struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Format prints the cause's stack trace for %+v.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') && e.Err != nil {
		fmt.Fprintf(s, "%s %s: %v: %+v", e.Op, e.Path, e.Kind, e.Err)
		return
	}
	io.WriteString(s, e.Error())
}

func persistenceErr(op, path string, err error, msg string) error {
	return &Error{Kind: ErrPersistence, Op: op, Path: path, Err: errors.Wrap(err, msg)}
}

func corruptErr(path string, err error) error {
	return &Error{Kind: ErrCorruptState, Op: "load", Path: path, Err: errors.WithStack(err)}
}
