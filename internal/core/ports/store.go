package ports

import (
	"context"

	"go.trai.ch/modlock/internal/core/domain"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// HashIndex answers which hash the lock file records for a file name.
type HashIndex interface {
	KnownHash(fileName string) (string, bool)
	// Claim binds fileName to sum before the file is moved into place.
	// It fails with domain.ErrHashMismatch when the recorded hash differs and with
	// domain.ErrFileNameConflict when another mod of the same run already claimed the name.
	Claim(fileName, sum string) error
}

// ContentStore owns the download directory.
type ContentStore interface {
	// FetchAndVerify makes sure the requested file is present and matches the hash index.
	// On a hash mismatch the returned result still carries the offending file name.
	FetchAndVerify(ctx context.Context, req domain.FetchRequest, index HashIndex) (domain.FetchResult, error)
	// List returns the names of the files in the download directory.
	List() ([]string, error)
	// Remove deletes a file from the download directory.
	Remove(name string) error
}
