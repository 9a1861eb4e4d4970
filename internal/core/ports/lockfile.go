package ports

import "go.trai.ch/modlock/internal/core/domain"

//go:generate mockgen -source=lockfile.go -destination=mocks/mock_lockfile.go -package=mocks

// LockfileRepository persists lock files.
type LockfileRepository interface {
	// Load reads the lock file at path. A missing file yields an empty lock file.
	Load(path string) (*domain.Lockfile, error)
	// Save replaces the lock file at path in one step.
	Save(path string, lock *domain.Lockfile) error
}
