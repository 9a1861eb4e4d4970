package reconciler

import (
	"sync"

	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/zerr"
)

// ledger is the lock file being built by a run. All access goes through mu.
type ledger struct {
	mu   sync.Mutex
	next *domain.Lockfile
	// claims holds the hash each file name was bound to during this run.
	claims map[string]string
}

var _ ports.HashIndex = (*ledger)(nil)

func newLedger(next *domain.Lockfile) *ledger {
	return &ledger{next: next, claims: make(map[string]string)}
}

// KnownHash implements ports.HashIndex over the files table being built.
func (l *ledger) KnownHash(name string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next.KnownHash(name)
}

// Claim implements ports.HashIndex. The first claim of a name in a run wins;
// a later claim with other content is a conflict and leaves the winner untouched.
func (l *ledger) Claim(name, sum string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if claimed, ok := l.claims[name]; ok {
		if claimed == sum {
			return nil
		}
		err := zerr.With(zerr.Wrap(domain.ErrFileNameConflict, "refusing "+name), "claimed", claimed)
		return zerr.With(err, "actual", sum)
	}

	if err := l.next.Claim(name, sum); err != nil {
		return err
	}
	l.claims[name] = sum
	return nil
}

// record locks ref to file. An existing files entry of the same name is kept.
func (l *ledger) record(ref domain.ModReference, file domain.LockedFile) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.next.Mods[ref] = file.Name
	if _, ok := l.next.Files[file.Name]; !ok {
		l.next.Files[file.Name] = file
	}
}

// forget drops a files entry whose content no longer matches.
func (l *ledger) forget(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.next.Files, name)
	delete(l.claims, name)
	for ref, n := range l.next.Mods {
		if n == name {
			delete(l.next.Mods, ref)
		}
	}
}
