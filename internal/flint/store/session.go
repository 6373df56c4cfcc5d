package store

import (
	"os"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
)

// Session bundles the locked cache databases with their in-memory view.
//
// Open acquires the cache lock, opens both database files and loads their
// contents; Close persists (when asked), closes the databases and releases
// the lock. Exactly one Close call per Session.
type Session struct {
	DBs   *DBs
	Store *Store

	release func() error
}

// Open locks the cache directory and loads the persisted state.
func Open(cacheDir string) (*Session, error) {
	if cacheDir == "" {
		return nil, helpers.ErrCacheDirEmpty
	}
	if err := os.MkdirAll(cacheDir, helpers.DirMod); err != nil {
		return nil, err
	}
	release, err := AcquireLock(cacheDir)
	if err != nil {
		return nil, err
	}
	dbs, err := OpenDBs(cacheDir)
	if err != nil {
		_ = release()
		return nil, err
	}
	st, err := Load(dbs)
	if err != nil {
		_ = dbs.Close()
		_ = release()
		return nil, err
	}
	return &Session{DBs: dbs, Store: st, release: release}, nil
}

// Close optionally saves the state, then closes databases and the lock.
func (s *Session) Close(save bool) error {
	if s == nil {
		return nil
	}
	var firstErr error
	if save {
		if err := Save(s.DBs, s.Store); err != nil {
			firstErr = err
		}
	}
	if err := s.DBs.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if s.release != nil {
		if err := s.release(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.release = nil
	return firstErr
}
