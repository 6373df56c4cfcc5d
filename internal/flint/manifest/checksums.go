package manifest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lukeha98/flint-gradle/internal/flint/maven"
	"github.com/lukeha98/flint-gradle/internal/flint/output"
	"github.com/lukeha98/flint-gradle/internal/flint/project"
	"github.com/lukeha98/flint-gradle/internal/flint/store"
)

// Verifier computes checksums for every static file ahead of synthesis.
//
// Cached checksums are treated as correct for the lifetime of the cache file
// and are not recomputed. Remote files are hashed while streaming, never
// buffered whole.
type Verifier struct {
	Project    *project.Project
	Store      *store.Store
	Downloader *maven.Downloader
	Output     output.Printer
}

// Verify fills the checksum cache for all declared static files.
func (v *Verifier) Verify(ctx context.Context) error {
	for _, file := range v.Project.StaticFiles {
		if v.Store.HasChecksum(file.Identity()) {
			v.Output.Debugf("checksum for %s already cached", file.Identity())
			continue
		}
		start := time.Now()
		sum, err := v.checksum(ctx, file)
		if err != nil {
			return err
		}
		v.Store.SetChecksum(file.Identity(), sum)
		v.Output.DebugSincef(start, "checksummed %s", file.Identity())
	}
	return nil
}

func (v *Verifier) checksum(ctx context.Context, file project.StaticFile) (store.Checksum, error) {
	if file.Remote() {
		return v.remoteChecksum(ctx, file.URL)
	}
	return v.localChecksum(filepath.Join(v.Project.Dir(), file.Source))
}

func (v *Verifier) localChecksum(path string) (store.Checksum, error) {
	//nolint:gosec // path comes from the validated project descriptor.
	f, err := os.Open(path)
	if err != nil {
		return store.Checksum{}, fmt.Errorf("failed to open static file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return hashStream(f)
}

func (v *Verifier) remoteChecksum(ctx context.Context, url string) (store.Checksum, error) {
	resp, err := v.Downloader.Fetch(ctx, url)
	if err != nil {
		return store.Checksum{}, fmt.Errorf("failed to fetch static file for checksumming: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	return hashStream(resp.Body)
}

func hashStream(r io.Reader) (store.Checksum, error) {
	hash := sha256.New()
	size, err := io.Copy(hash, r)
	if err != nil {
		return store.Checksum{}, fmt.Errorf("failed to hash static file: %w", err)
	}
	return store.Checksum{
		SHA256: hex.EncodeToString(hash.Sum(nil)),
		Size:   size,
	}, nil
}
