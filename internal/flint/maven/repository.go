package maven

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
)

// Repository is a deterministic, path-addressed on-disk artifact store.
//
// An artifact is installed if and only if a file exists at its deterministic
// path; no separate index is maintained.
type Repository struct {
	base string
}

// NewRepository creates a Repository rooted at base, creating it if needed.
func NewRepository(base string) (*Repository, error) {
	if base == "" {
		return nil, helpers.ErrCacheDirEmpty
	}
	if err := os.MkdirAll(base, helpers.DirMod); err != nil {
		return nil, fmt.Errorf("failed to create repository %s: %w", base, err)
	}
	return &Repository{base: base}, nil
}

// BaseDir returns the repository root directory.
func (r *Repository) BaseDir() string {
	return r.base
}

// PathFor returns the absolute on-disk path for an artifact.
func (r *Repository) PathFor(artifact Artifact) string {
	return filepath.Join(r.base, filepath.FromSlash(artifact.FilePath()))
}

// IsInstalled reports whether the artifact file exists at its deterministic path.
func (r *Repository) IsInstalled(artifact Artifact) bool {
	info, err := os.Stat(r.PathFor(artifact))
	return err == nil && !info.IsDir()
}

// AllInstalled reports whether every artifact in the set is installed.
func (r *Repository) AllInstalled(artifacts []Artifact) bool {
	for _, artifact := range artifacts {
		if !r.IsInstalled(artifact) {
			return false
		}
	}
	return true
}

// Install writes artifact bytes atomically to the deterministic path.
//
// The payload is staged as a temp file next to the final location and renamed
// into place, so concurrent IsInstalled checks never observe partial writes.
func (r *Repository) Install(artifact Artifact, payload io.Reader) (string, error) {
	target := r.PathFor(artifact)
	if err := os.MkdirAll(filepath.Dir(target), helpers.DirMod); err != nil {
		return "", fmt.Errorf("failed to create directories for %s: %w", artifact, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".install-")
	if err != nil {
		return "", fmt.Errorf("failed to stage %s: %w", artifact, err)
	}
	if _, err := io.Copy(tmp, payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", artifact, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close staged file for %s: %w", artifact, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to commit %s: %w", artifact, err)
	}
	return target, nil
}

// InstallFile moves an existing file into the repository atomically.
func (r *Repository) InstallFile(artifact Artifact, sourcePath string) (string, error) {
	//nolint:gosec // sourcePath is produced by the pipeline and trusted.
	file, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for %s: %w", sourcePath, artifact, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return r.Install(artifact, file)
}
