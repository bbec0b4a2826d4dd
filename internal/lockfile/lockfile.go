// Package lockfile guards the cache directory so only one dashboard
// instance mutates the local SQLite snapshot at a time.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning means another dashboard instance holds the lock.
var ErrAlreadyRunning = errors.New("another foiadesk instance is already running")

// Lock is a filesystem lock on the cache directory.
type Lock struct {
	path  string
	flock *flock.Flock
}

// Acquire takes the instance lock under dir, creating the directory if
// needed. It fails fast instead of blocking when the lock is held.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	path := filepath.Join(dir, "foiadesk.lock")
	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring instance lock %s: %w", path, err)
	}
	if !ok {
		return nil, ErrAlreadyRunning
	}

	return &Lock{path: path, flock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string { return l.path }

// Release drops the lock. Safe to call more than once.
func (l *Lock) Release() error {
	if l.flock == nil {
		return nil
	}
	err := l.flock.Unlock()
	l.flock = nil
	return err
}
