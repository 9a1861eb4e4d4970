// Package lockfile persists the lock ledger as YAML.
package lockfile

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const indent = 2

// Repository implements ports.LockfileRepository on the local file system.
type Repository struct{}

var _ ports.LockfileRepository = (*Repository)(nil)

// New creates a new Repository.
func New() *Repository {
	return &Repository{}
}

// Load reads the lock file at path. A missing file yields an empty ledger.
func (r *Repository) Load(path string) (*domain.Lockfile, error) {
	//nolint:gosec // path is derived from the user's mod list
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewLockfile(), nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrLockfileReadFailed, err.Error()), "path", path)
	}

	lock := domain.NewLockfile()
	if len(bytes.TrimSpace(data)) == 0 {
		return lock, nil
	}

	if err := yaml.Unmarshal(data, lock); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockfileInvalid, err.Error()), "path", path)
	}

	lock.Normalize()
	if err := lock.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return lock, nil
}

// Save writes the whole ledger to path, replacing the previous file atomically.
func (r *Repository) Save(path string, lock *domain.Lockfile) error {
	data, err := Render(lock)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLockfileWriteFailed, err.Error()), "path", path)
	}

	if err := atomicWriteFile(path, data); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLockfileWriteFailed, err.Error()), "path", path)
	}

	return nil
}

// Render serializes the ledger. Map keys come out sorted.
func Render(lock *domain.Lockfile) ([]byte, error) {
	if lock == nil {
		lock = domain.NewLockfile()
	}
	lock.Normalize()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(lock); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// atomicWriteFile writes data to a temp file next to path and renames it into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
