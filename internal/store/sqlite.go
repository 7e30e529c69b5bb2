package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	"tusk/internal/models"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// brings its schema up to date.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), dirPerm); err != nil {
			return nil, persistenceErr("open", dbPath, err, "failed to create data directory")
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, persistenceErr("open", dbPath, err, "failed to open database")
	}
	// One connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		if errors.Is(err, errSchemaTooNew) || isDamagedDatabase(err) {
			return nil, corruptErr(dbPath, err)
		}
		return nil, persistenceErr("open", dbPath, err, "failed to migrate database")
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// isDamagedDatabase reports whether SQLite rejected the file contents
// rather than failing to reach them.
func isDamagedDatabase(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrNotADB || sqliteErr.Code == sqlite3.ErrCorrupt
}

func loadErr(path string, err error, msg string) error {
	if isDamagedDatabase(err) {
		return corruptErr(path, fmt.Errorf("%s: %w", msg, err))
	}
	return persistenceErr("load", path, err, msg)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads every account and its tasks in stored order.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.Account, error) {
	accounts, index, err := s.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.loadTasks(ctx, accounts, index); err != nil {
		return nil, err
	}

	checked, err := checkAccounts(accounts)
	if err != nil {
		return nil, corruptErr(s.path, err)
	}
	return checked, nil
}

func (s *SQLiteStore) loadAccounts(ctx context.Context) ([]models.Account, map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, next_id FROM accounts ORDER BY name ASC`)
	if err != nil {
		return nil, nil, loadErr(s.path, err, "failed to list accounts")
	}
	defer rows.Close()

	var accounts []models.Account
	index := make(map[string]int)
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(&account.Name, &account.NextID); err != nil {
			return nil, nil, corruptErr(s.path, fmt.Errorf("failed to scan account: %w", err))
		}
		account.Tasks = []models.Task{}
		index[account.Name] = len(accounts)
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, loadErr(s.path, err, "failed to list accounts")
	}

	return accounts, index, nil
}

func (s *SQLiteStore) loadTasks(ctx context.Context, accounts []models.Account, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT account_name, id, description, completed
		FROM tasks ORDER BY account_name ASC, position ASC
	`)
	if err != nil {
		return loadErr(s.path, err, "failed to list tasks")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			accountName string
			task        models.Task
		)
		if err := rows.Scan(&accountName, &task.ID, &task.Description, &task.Completed); err != nil {
			return corruptErr(s.path, fmt.Errorf("failed to scan task: %w", err))
		}

		i, ok := index[accountName]
		if !ok {
			return corruptErr(s.path, fmt.Errorf("task %d belongs to unknown account %q", task.ID, accountName))
		}
		accounts[i].Tasks = append(accounts[i].Tasks, task)
	}
	if err := rows.Err(); err != nil {
		return loadErr(s.path, err, "failed to list tasks")
	}

	return nil
}

// Save replaces the stored state in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, accounts []models.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistenceErr("save", s.path, err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return persistenceErr("save", s.path, err, "failed to clear tasks")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		return persistenceErr("save", s.path, err, "failed to clear accounts")
	}

	accountStmt, err := tx.PrepareContext(ctx, `INSERT INTO accounts (name, next_id) VALUES (?, ?)`)
	if err != nil {
		return persistenceErr("save", s.path, err, "failed to prepare statement")
	}
	defer accountStmt.Close()

	taskStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (account_name, id, description, completed, position)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return persistenceErr("save", s.path, err, "failed to prepare statement")
	}
	defer taskStmt.Close()

	for _, account := range accounts {
		if _, err := accountStmt.ExecContext(ctx, account.Name, account.NextID); err != nil {
			return persistenceErr("save", s.path, err, fmt.Sprintf("failed to insert account %q", account.Name))
		}
		for i, task := range account.Tasks {
			if _, err := taskStmt.ExecContext(ctx, account.Name, task.ID, task.Description, task.Completed, i+1); err != nil {
				return persistenceErr("save", s.path, err, fmt.Sprintf("failed to insert task %d", task.ID))
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return persistenceErr("save", s.path, err, "failed to commit")
	}
	return nil
}
