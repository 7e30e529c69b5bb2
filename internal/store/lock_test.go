package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireLock_ExclusiveUntilReleased(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "tasks.json")
	ctx := context.Background()

	first, err := AcquireLock(ctx, dataPath, 0)
	if err != nil {
		t.Fatalf("first AcquireLock failed: %v", err)
	}

	if _, err := AcquireLock(ctx, dataPath, 0); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked while held, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	second, err := AcquireLock(ctx, dataPath, 0)
	if err != nil {
		t.Fatalf("AcquireLock after release failed: %v", err)
	}
	second.Release()

	if _, err := os.Stat(LockPath(dataPath)); err != nil {
		t.Errorf("expected lock file to remain after release: %v", err)
	}
}

func TestAcquireLock_TimesOut(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "tasks.json")
	ctx := context.Background()

	held, err := AcquireLock(ctx, dataPath, 0)
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	defer held.Release()

	start := time.Now()
	_, err = AcquireLock(ctx, dataPath, 120*time.Millisecond)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked after timeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("expected to wait for the timeout, returned after %v", elapsed)
	}
}

func TestAcquireLock_WaitsForRelease(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "tasks.json")
	ctx := context.Background()

	held, err := AcquireLock(ctx, dataPath, 0)
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}

	go func() {
		time.Sleep(60 * time.Millisecond)
		held.Release()
	}()

	lock, err := AcquireLock(ctx, dataPath, 2*time.Second)
	if err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
	lock.Release()
}

func TestLock_ReleaseNil(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Errorf("expected nil lock release to succeed, got %v", err)
	}
}
