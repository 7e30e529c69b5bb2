package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"tusk/internal/models"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileStore keeps the whole state in one JSON or YAML document.
type FileStore struct {
	path  string
	codec codec
}

// NewFileStore creates a file store for path in the given format
// ("json" or "yaml"). The parent directory is created if needed.
func NewFileStore(path, format string) (*FileStore, error) {
	c, err := codecFor(format)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, persistenceErr("open", path, err, "failed to create data directory")
	}

	return &FileStore{path: path, codec: c}, nil
}

// Path returns the data file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the data file. A missing or empty file is an empty state.
func (s *FileStore) Load(ctx context.Context) ([]models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Account{}, nil
		}
		return nil, persistenceErr("load", s.path, err, "failed to read data file")
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Account{}, nil
	}

	accounts, err := decodeDocument(s.codec, data)
	if err != nil {
		return nil, corruptErr(s.path, err)
	}
	return accounts, nil
}

// Save writes the full state to a temporary file next to the data file and
// renames it into place.
func (s *FileStore) Save(ctx context.Context, accounts []models.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := s.codec.Marshal(newDocument(accounts))
	if err != nil {
		return persistenceErr("save", s.path, err, "failed to encode state")
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return &Error{Kind: ErrPersistence, Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *FileStore) Close() error {
	return nil
}

// writeFileAtomic never leaves a partially written file at path: readers see
// either the old content or the new content.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpPath := f.Name()

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return errors.Wrap(err, "failed to write temp file")
	}
	if err = f.Chmod(filePerm); err != nil {
		return errors.Wrap(err, "failed to set file mode")
	}
	if err = f.Sync(); err != nil {
		return errors.Wrap(err, "failed to sync temp file")
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp file")
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err, "failed to replace data file")
	}

	syncDir(dir)
	return nil
}

// syncDir flushes the rename to disk. Some filesystems reject fsync on
// directories; the rename has already happened, so errors are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
