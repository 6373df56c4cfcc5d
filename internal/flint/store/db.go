package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
	bolt "go.etcd.io/bbolt"
)

const openTimeout = 5 * time.Second

// DBs holds BoltDB handles for the persisted cache files.
type DBs struct {
	urls      *bolt.DB
	checksums *bolt.DB
}

// OpenDBs opens both cache database files under cacheDir.
//
// A missing database file is created empty; a file Bolt cannot open is a
// fatal configuration error, never silently replaced.
func OpenDBs(cacheDir string) (*DBs, error) {
	if cacheDir == "" {
		return nil, helpers.ErrCacheDirEmpty
	}
	if err := os.MkdirAll(cacheDir, helpers.DirMod); err != nil {
		return nil, err
	}

	dbs := &DBs{}
	var err error
	dbs.urls, err = openBolt(filepath.Join(cacheDir, helpers.StoreDBArtifactURLs))
	if err != nil {
		return nil, err
	}
	dbs.checksums, err = openBolt(filepath.Join(cacheDir, helpers.StoreDBChecksums))
	if err != nil {
		_ = dbs.Close()
		return nil, err
	}
	return dbs, nil
}

// Close closes all open BoltDB handles.
func (d *DBs) Close() error {
	if d == nil {
		return nil
	}
	var firstErr error
	for _, db := range []*bolt.DB{d.urls, d.checksums} {
		if db == nil {
			continue
		}
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	d.urls = nil
	d.checksums = nil
	return firstErr
}

// RequireCacheFiles verifies both cache database files exist on disk.
//
// Manifest synthesis depends on both caches being populated by earlier steps;
// absence means those steps were skipped and is fatal, not "recompute".
func RequireCacheFiles(cacheDir string) error {
	for _, name := range []string{helpers.StoreDBArtifactURLs, helpers.StoreDBChecksums} {
		if _, err := os.Stat(filepath.Join(cacheDir, name)); err != nil {
			return fmt.Errorf("%w: %s", helpers.ErrMissingCacheFile, filepath.Join(cacheDir, name))
		}
	}
	return nil
}

// Load reads cached state from the databases into a new Store.
func Load(dbs *DBs) (*Store, error) {
	st := New()
	if dbs == nil {
		return st, nil
	}
	for _, db := range []*bolt.DB{dbs.urls, dbs.checksums} {
		if err := validateSchema(db); err != nil {
			return nil, err
		}
	}
	if err := loadBucket(dbs.urls, helpers.StoreBucketArtifactURLs, func(k, v []byte) error {
		st.resolvedURLs[string(k)] = string(v)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", helpers.ErrCorruptCacheFile, err)
	}
	if err := loadBucket(dbs.checksums, helpers.StoreBucketChecksums, func(k, v []byte) error {
		var sum Checksum
		if err := json.Unmarshal(v, &sum); err != nil {
			return err
		}
		st.checksums[string(k)] = sum
		return nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", helpers.ErrCorruptCacheFile, err)
	}
	return st, nil
}

// Save writes cached state back to the databases.
func Save(dbs *DBs, st *Store) error {
	if dbs == nil {
		return helpers.ErrDbNil
	}
	if st == nil {
		return helpers.ErrStoreNil
	}

	if err := saveBucket(dbs.urls, helpers.StoreBucketArtifactURLs, st.ResolvedURLsSnapshot(), func(url string) ([]byte, error) {
		return []byte(url), nil
	}); err != nil {
		return err
	}
	if err := saveBucket(dbs.checksums, helpers.StoreBucketChecksums, st.ChecksumsSnapshot(), func(sum Checksum) ([]byte, error) {
		return json.Marshal(&sum)
	}); err != nil {
		return err
	}
	for _, db := range []*bolt.DB{dbs.urls, dbs.checksums} {
		if err := saveMeta(db); err != nil {
			return err
		}
	}
	return nil
}

// openBolt opens one database file with a bounded lock wait.
func openBolt(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, helpers.FileMod, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", helpers.ErrCorruptCacheFile, path, err)
	}
	return db, nil
}

// validateSchema checks the stored schema version against the supported one.
func validateSchema(db *bolt.DB) error {
	if db == nil {
		return nil
	}
	return db.View(func(tx *bolt.Tx) error {
		metaBucket := tx.Bucket([]byte(helpers.StoreBucketMeta))
		if metaBucket == nil {
			return nil
		}
		raw := metaBucket.Get([]byte(helpers.StoreMetaSchemaVersion))
		if raw == nil {
			return nil
		}
		version, err := strconv.Atoi(string(raw))
		if err != nil {
			return fmt.Errorf("%w: invalid schema version: %w", helpers.ErrCorruptCacheFile, err)
		}
		if version > helpers.StoreSchemaVersion {
			return fmt.Errorf("%w: %d", helpers.ErrUnsupportedSchemaVersion, version)
		}
		return nil
	})
}

func saveMeta(db *bolt.DB) error {
	if db == nil {
		return nil
	}
	return db.Update(func(tx *bolt.Tx) error {
		metaBucket, err := ensureEmptyBucket(tx, helpers.StoreBucketMeta)
		if err != nil {
			return err
		}
		if err := metaBucket.Put([]byte(helpers.StoreMetaSchemaVersion), []byte(strconv.Itoa(helpers.StoreSchemaVersion))); err != nil {
			return err
		}
		return metaBucket.Put([]byte(helpers.StoreMetaLastSave), []byte(time.Now().UTC().Format(time.RFC3339Nano)))
	})
}

// ensureEmptyBucket recreates a bucket to ensure it is empty.
func ensureEmptyBucket(tx *bolt.Tx, name string) (*bolt.Bucket, error) {
	bucket := tx.Bucket([]byte(name))
	if bucket != nil {
		if err := tx.DeleteBucket([]byte(name)); err != nil {
			return nil, err
		}
	}
	return tx.CreateBucket([]byte(name))
}

// loadBucket iterates over a bucket and calls fn for each entry.
func loadBucket(db *bolt.DB, name string, fn func(k, v []byte) error) error {
	if db == nil {
		return nil
	}
	return db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(name))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(fn)
	})
}

// saveBucket writes data to a bucket using the encode callback.
func saveBucket[T any](db *bolt.DB, name string, data map[string]T, encode func(T) ([]byte, error)) error {
	if db == nil {
		return nil
	}
	return db.Update(func(tx *bolt.Tx) error {
		bucket, err := ensureEmptyBucket(tx, name)
		if err != nil {
			return err
		}
		for key, entry := range data {
			encoded, err := encode(entry)
			if err != nil {
				return err
			}
			if err := bucket.Put([]byte(key), encoded); err != nil {
				return err
			}
		}
		return nil
	})
}

// ClearCacheFiles removes the persisted cache databases and lock file.
func ClearCacheFiles(cacheDir string) error {
	if cacheDir == "" {
		return helpers.ErrCacheDirEmpty
	}
	for _, name := range []string{helpers.StoreDBArtifactURLs, helpers.StoreDBChecksums, helpers.StoreDBLock} {
		if err := os.Remove(filepath.Join(cacheDir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
