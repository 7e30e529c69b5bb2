package store

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 50 * time.Millisecond

// Lock is an exclusive advisory lock on a data path, held for the whole
// load, mutate and save sequence of one invocation.
type Lock struct {
	path string
	fl   *flock.Flock
}

// LockPath returns the lock file used for dataPath.
func LockPath(dataPath string) string {
	return dataPath + ".lock"
}

// AcquireLock takes the lock for dataPath, retrying until timeout elapses.
// A zero timeout tries exactly once. ErrLocked is returned when another
// process keeps holding the lock.
func AcquireLock(ctx context.Context, dataPath string, timeout time.Duration) (*Lock, error) {
	path := LockPath(dataPath)
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, persistenceErr("lock", path, err, "failed to create lock directory")
	}

	fl := flock.New(path)

	var (
		locked bool
		err    error
	)
	if timeout <= 0 {
		locked, err = fl.TryLock()
	} else {
		lockCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		locked, err = fl.TryLockContext(lockCtx, lockRetryDelay)
		if err != nil && lockCtx.Err() != nil && ctx.Err() == nil {
			// Deadline hit while someone else held the lock.
			err = nil
		}
	}
	if err != nil {
		return nil, persistenceErr("lock", path, err, "failed to acquire lock")
	}
	if !locked {
		return nil, &Error{Kind: ErrLocked, Op: "lock", Path: path}
	}

	return &Lock{path: path, fl: fl}, nil
}

// Release drops the lock. The lock file is left in place so that a
// concurrent process never locks a file that is about to be unlinked.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	if err := l.fl.Unlock(); err != nil {
		return persistenceErr("unlock", l.path, err, "failed to release lock")
	}
	return nil
}
