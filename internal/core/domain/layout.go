package domain

import "strings"

const (
	// DefaultDownloadDir is the directory downloaded mod files are stored in.
	DefaultDownloadDir = "mods"

	// LockSuffix is appended to a mod list file name to form its lock file name.
	LockSuffix = ".lock"

	// SettingsFileName is the optional settings file read from the working directory.
	SettingsFileName = "modlock.yaml"

	// EnvFileName is the optional dotenv file read from the working directory.
	EnvFileName = ".env"

	// EnvPrefix prefixes every settings environment variable.
	EnvPrefix = "MODLOCK"

	// PartialSuffix marks in-flight downloads inside the download directory.
	PartialSuffix = ".part"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// IsLockPath reports whether path names a lock file.
func IsLockPath(path string) bool {
	return strings.HasSuffix(path, LockSuffix)
}

// LockPathFor returns the lock file path belonging to a mod list.
// A path that already names a lock file is returned unchanged.
func LockPathFor(modListPath string) string {
	if IsLockPath(modListPath) {
		return modListPath
	}
	return modListPath + LockSuffix
}
