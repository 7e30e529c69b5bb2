package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mattn/go-sqlite3"

	"tusk/internal/models"
)

func setupTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_MigrationsRecorded(t *testing.T) {
	store := setupTestDB(t)

	var count int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("failed to count migrations: %v", err)
	}

	migrations, err := loadMigrations()
	if err != nil {
		t.Fatalf("loadMigrations failed: %v", err)
	}
	if count != len(migrations) {
		t.Errorf("expected %d recorded migrations, got %d", len(migrations), count)
	}
}

func TestSQLiteStore_ReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if err := first.Save(ctx, sampleAccounts()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	first.Close()

	second, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopening failed: %v", err)
	}
	defer second.Close()

	got, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 accounts after reopen, got %d", len(got))
	}
}

func TestSQLiteStore_PreservesTaskOrder(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	accounts := []models.Account{{Name: "work", NextID: 6, Tasks: []models.Task{
		{ID: 5, Description: "fifth"},
		{ID: 2, Description: "second"},
		{ID: 4, Description: "fourth", Completed: true},
	}}}
	if err := store.Save(ctx, accounts); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expectedIDs := []int64{5, 2, 4}
	for i, id := range expectedIDs {
		if got[0].Tasks[i].ID != id {
			t.Errorf("position %d: expected id %d, got %d", i, id, got[0].Tasks[i].ID)
		}
	}
	if !got[0].Tasks[2].Completed {
		t.Error("expected completed flag to survive")
	}
}

func TestSQLiteStore_DuplicateIDsRejectedOnSave(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleAccounts()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	bad := []models.Account{{Name: "work", NextID: 3, Tasks: []models.Task{
		{ID: 1, Description: "a"},
		{ID: 1, Description: "b"},
	}}}
	if err := store.Save(ctx, bad); !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}

	// The failed transaction must not have touched the previous state.
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected previous 3 accounts to survive, got %d", len(got))
	}
}

func TestSQLiteStore_CorruptCounter(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleAccounts()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := store.db.Exec(`UPDATE accounts SET next_id = 1 WHERE name = 'work'`); err != nil {
		t.Fatalf("failed to corrupt counter: %v", err)
	}

	if _, err := store.Load(ctx); !errors.Is(err, ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
}

func TestSQLiteStore_GarbageFileIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	garbage := "these are my tasks, not a database\n"
	for i := 0; i < 6; i++ {
		garbage += garbage
	}
	if err := os.WriteFile(path, []byte(garbage), 0o644); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}

	_, err := Open(BackendSQLite, path)
	if !errors.Is(err, ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
	if errors.Is(err, ErrPersistence) {
		t.Errorf("expected damaged database not to be reported as a persistence failure: %v", err)
	}
}

func TestLoadErr_ClassifiesSQLiteCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "not a database", err: sqlite3.Error{Code: sqlite3.ErrNotADB}, want: ErrCorruptState},
		{name: "corrupt", err: sqlite3.Error{Code: sqlite3.ErrCorrupt}, want: ErrCorruptState},
		{name: "io error", err: sqlite3.Error{Code: sqlite3.ErrIoErr}, want: ErrPersistence},
		{name: "busy", err: sqlite3.Error{Code: sqlite3.ErrBusy}, want: ErrPersistence},
		{name: "other", err: errors.New("boom"), want: ErrPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := loadErr("tasks.db", tt.err, "failed to list accounts"); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSQLiteStore_NewerSchemaIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")

	first, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if _, err := first.db.Exec(`INSERT INTO schema_migrations (version, name) VALUES (999, 'future')`); err != nil {
		t.Fatalf("failed to insert future migration: %v", err)
	}
	first.Close()

	if _, err := NewSQLiteStore(path); !errors.Is(err, ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		filename    string
		wantVersion int
		wantName    string
		wantErr     bool
	}{
		{filename: "001_create_accounts.sql", wantVersion: 1, wantName: "create_accounts"},
		{filename: "12_add_index.sql", wantVersion: 12, wantName: "add_index"},
		{filename: "nounderscore.sql", wantErr: true},
		{filename: "abc_name.sql", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, name, err := parseMigrationFilename(tt.filename)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if version != tt.wantVersion || name != tt.wantName {
				t.Errorf("expected %d/%q, got %d/%q", tt.wantVersion, tt.wantName, version, name)
			}
		})
	}
}

func TestSQLiteStore_ForeignKeysEnabled(t *testing.T) {
	store := setupTestDB(t)

	var enabled int
	if err := store.db.QueryRow(`PRAGMA foreign_keys`).Scan(&enabled); err != nil && !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("failed to read pragma: %v", err)
	}
	if enabled != 1 {
		t.Error("expected foreign keys to be enabled")
	}
}
