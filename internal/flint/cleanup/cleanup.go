package cleanup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lukeha98/flint-gradle/internal/flint/config"
	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
	"github.com/lukeha98/flint-gradle/internal/flint/infra"
	"github.com/lukeha98/flint-gradle/internal/flint/store"
)

// Start removes the cache databases and downloaded artifact trees.
//
// The lock is taken first so a cleanup never races a concurrent install.
func Start(_ context.Context, cfg *config.Config, runtime *infra.Infra) error {
	if cfg.CacheDir == "" {
		return helpers.ErrCacheDirEmpty
	}
	if err := os.MkdirAll(cfg.CacheDir, helpers.DirMod); err != nil {
		return err
	}
	release, err := store.AcquireLock(cfg.CacheDir)
	if err != nil {
		return err
	}
	defer func() {
		_ = release()
	}()

	if err := store.ClearCacheFiles(cfg.CacheDir); err != nil {
		return err
	}
	for _, dir := range []string{
		helpers.MinecraftRepositoryDirName,
		helpers.InternalRepositoryDirName,
		helpers.EnvironmentDirName,
	} {
		path := filepath.Join(cfg.CacheDir, dir)
		if err := os.RemoveAll(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		runtime.Output.Debugf("removed %s", path)
	}
	runtime.Output.PersistentPrintf("Cleaned cache directory %s", cfg.CacheDir)
	return nil
}
