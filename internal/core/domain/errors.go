package domain

import "go.trai.ch/zerr"

var (
	// ErrModListNotFound is returned when the mod list file does not exist.
	ErrModListNotFound = zerr.New("mod list not found")

	// ErrModListInvalid is returned when the mod list cannot be parsed or misses a required field.
	ErrModListInvalid = zerr.New("invalid mod list")

	// ErrLockfileReadFailed is returned when the lock file exists but cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lock file")

	// ErrLockfileInvalid is returned when the lock file cannot be parsed or is inconsistent.
	ErrLockfileInvalid = zerr.New("invalid lock file")

	// ErrLockfileWriteFailed is returned when the lock file cannot be written.
	ErrLockfileWriteFailed = zerr.New("failed to write lock file")

	// ErrSettingsInvalid is returned when the tool settings cannot be loaded.
	ErrSettingsInvalid = zerr.New("invalid settings")

	// ErrVersionNotFound is returned when no listed file matches the version constraint.
	ErrVersionNotFound = zerr.New("no file matches the requested versions")

	// ErrProjectPageFailed is returned when a mod project page cannot be fetched or parsed.
	ErrProjectPageFailed = zerr.New("failed to read project page")

	// ErrUnexpectedStatus is returned when a server answers with a non-2xx status.
	ErrUnexpectedStatus = zerr.New("unexpected response status")

	// ErrTransferFailed is returned when a request or body read fails for a reason other than truncation.
	ErrTransferFailed = zerr.New("transfer failed")

	// ErrDownloadIncomplete is returned when the received bytes do not match what the server announced.
	ErrDownloadIncomplete = zerr.New("download incomplete")

	// ErrHashMismatch is returned when a re-fetched file does not match the hash recorded in the lock file.
	// It wraps ErrDownloadIncomplete.
	ErrHashMismatch = zerr.Wrap(ErrDownloadIncomplete, "content hash does not match lock file")

	// ErrFileNameConflict is returned when two mods in one run resolve to the same file name with different contents.
	ErrFileNameConflict = zerr.New("file name already taken by different content")

	// ErrInvalidFileName is returned when a file name is empty or would escape the download directory.
	ErrInvalidFileName = zerr.New("invalid file name")

	// ErrStoreCreateFailed is returned when the download directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create download directory")

	// ErrStoreWriteFailed is returned when a downloaded file cannot be written to disk.
	ErrStoreWriteFailed = zerr.New("failed to write downloaded file")

	// ErrStoreReadFailed is returned when a stored file cannot be read or hashed.
	ErrStoreReadFailed = zerr.New("failed to read stored file")

	// ErrWatcherFailed is returned when the file watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to watch mod list")
)
