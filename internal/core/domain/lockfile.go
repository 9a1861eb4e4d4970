package domain

import (
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// LockedFile is a downloaded file as recorded in the lock file.
type LockedFile struct {
	// Name is the file name inside the download directory. It is the key of the files table.
	Name string `yaml:"-"`
	// URL is the address the file was downloaded from.
	URL string `yaml:"url"`
	// ModURL is the mod reference the file was first locked for.
	ModURL ModReference `yaml:"mod_url"`
	// SHA256 is the hex-encoded SHA-256 digest of the file contents.
	SHA256 string `yaml:"sha256sum"`
}

// Lockfile maps mod references to the exact files they resolved to.
type Lockfile struct {
	Files map[string]LockedFile   `yaml:"files"`
	Mods  map[ModReference]string `yaml:"mods"`
}

// LockEntry pairs a mod reference with the file it is locked to.
type LockEntry struct {
	Ref  ModReference
	File LockedFile
}

// NewLockfile returns an empty lock file.
func NewLockfile() *Lockfile {
	return &Lockfile{
		Files: make(map[string]LockedFile),
		Mods:  make(map[ModReference]string),
	}
}

// Normalize fills nil tables and copies each map key into the entry's Name.
func (l *Lockfile) Normalize() {
	if l.Files == nil {
		l.Files = make(map[string]LockedFile)
	}
	if l.Mods == nil {
		l.Mods = make(map[ModReference]string)
	}
	for name, f := range l.Files {
		f.Name = name
		l.Files[name] = f
	}
}

// Validate checks that every locked mod points at a known file.
func (l *Lockfile) Validate() error {
	for ref, name := range l.Mods {
		if name == "" {
			continue
		}
		if _, ok := l.Files[name]; !ok {
			err := zerr.Wrap(ErrLockfileInvalid, "mod references an unknown file")
			err = zerr.With(err, "mod", ref.String())
			return zerr.With(err, "file", name)
		}
	}
	return nil
}

// KnownHash returns the recorded hash for a file name.
func (l *Lockfile) KnownHash(name string) (string, bool) {
	f, ok := l.Files[name]
	if !ok {
		return "", false
	}
	return f.SHA256, true
}

// Claim accepts sum for name unless the files table records a different hash.
func (l *Lockfile) Claim(name, sum string) error {
	recorded, ok := l.KnownHash(name)
	if !ok || recorded == sum {
		return nil
	}
	err := zerr.With(zerr.Wrap(ErrHashMismatch, "refusing "+name), "expected", recorded)
	return zerr.With(err, "actual", sum)
}

// Lookup returns the file a mod reference is locked to.
func (l *Lockfile) Lookup(ref ModReference) (LockedFile, bool) {
	name, ok := l.Mods[ref]
	if !ok || name == "" {
		return LockedFile{}, false
	}
	f, ok := l.Files[name]
	if !ok {
		return LockedFile{}, false
	}
	f.Name = name
	return f, true
}

// Entries returns every resolvable mod/file pair, ordered by reference.
func (l *Lockfile) Entries() []LockEntry {
	refs := slices.Sorted(maps.Keys(l.Mods))
	entries := make([]LockEntry, 0, len(refs))
	for _, ref := range refs {
		if f, ok := l.Lookup(ref); ok {
			entries = append(entries, LockEntry{Ref: ref, File: f})
		}
	}
	return entries
}

// Next returns the starting point of a reconcile run: the same files table and no locked mods.
func (l *Lockfile) Next() *Lockfile {
	next := NewLockfile()
	maps.Copy(next.Files, l.Files)
	return next
}
