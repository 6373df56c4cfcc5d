package maven

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
)

func TestRepositoryRequiresBaseDir(t *testing.T) {
	t.Parallel()
	_, err := NewRepository("")
	if !errors.Is(err, helpers.ErrCacheDirEmpty) {
		t.Fatalf("expected ErrCacheDirEmpty, got %v", err)
	}
}

func TestInstallAndIsInstalled(t *testing.T) {
	t.Parallel()
	repo := newTestRepository(t)
	artifact := NewArtifact("g.h", "a", "1.0")

	if repo.IsInstalled(artifact) {
		t.Fatalf("artifact should not be installed yet")
	}
	path, err := repo.Install(artifact, strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Install error: %v", err)
	}
	if path != repo.PathFor(artifact) {
		t.Fatalf("Install path %q != PathFor %q", path, repo.PathFor(artifact))
	}
	if !repo.IsInstalled(artifact) {
		t.Fatalf("artifact should be installed")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected payload %q", data)
	}
}

func TestIsInstalledRejectsDirectory(t *testing.T) {
	t.Parallel()
	repo := newTestRepository(t)
	artifact := NewArtifact("g", "a", "1.0")
	if err := os.MkdirAll(repo.PathFor(artifact), 0o755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	if repo.IsInstalled(artifact) {
		t.Fatalf("a directory at the artifact path must not count as installed")
	}
}

func TestAllInstalled(t *testing.T) {
	t.Parallel()
	repo := newTestRepository(t)
	first := NewArtifact("g", "a", "1.0")
	second := NewArtifact("g", "b", "1.0")

	if _, err := repo.Install(first, strings.NewReader("x")); err != nil {
		t.Fatalf("Install error: %v", err)
	}
	if repo.AllInstalled([]Artifact{first, second}) {
		t.Fatalf("AllInstalled must be false with one missing artifact")
	}
	if _, err := repo.Install(second, strings.NewReader("y")); err != nil {
		t.Fatalf("Install error: %v", err)
	}
	if !repo.AllInstalled([]Artifact{first, second}) {
		t.Fatalf("AllInstalled must be true with everything present")
	}
}

func TestInstallFile(t *testing.T) {
	t.Parallel()
	repo := newTestRepository(t)
	artifact := NewArtifact("g", "a", "1.0")

	source := filepath.Join(t.TempDir(), "staged.jar")
	if err := os.WriteFile(source, []byte("staged"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if _, err := repo.InstallFile(artifact, source); err != nil {
		t.Fatalf("InstallFile error: %v", err)
	}
	data, err := os.ReadFile(repo.PathFor(artifact))
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "staged" {
		t.Fatalf("unexpected payload %q", data)
	}
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewRepository error: %v", err)
	}
	return repo
}
