package bundle

import (
	"archive/tar"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
)

func TestCreateAndExtractRoundTrip(t *testing.T) {
	t.Parallel()
	repoDir := t.TempDir()
	files := map[string]string{
		"net/minecraft/client/1.16.5/client-1.16.5.jar": "client-bytes",
		"net/minecraft/joined/1.16.5/joined-1.16.5-deobfuscated.jar": "joined-bytes",
	}
	for name, content := range files {
		path := filepath.Join(repoDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll error: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile error: %v", err)
		}
	}

	bundleFile := filepath.Join(t.TempDir(), "bundle.tar.gz")
	if err := Create(repoDir, bundleFile); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	outDir := t.TempDir()
	if err := Extract(bundleFile, outDir); err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	for name, content := range files {
		data, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(name)))
		if err != nil {
			t.Fatalf("ReadFile error: %v", err)
		}
		if string(data) != content {
			t.Fatalf("unexpected content for %s: %q", name, data)
		}
	}
}

func TestExtractRejectsEmptyFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "empty.tar.gz")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if err := Extract(path, t.TempDir()); !errors.Is(err, helpers.ErrFileIsEmpty) {
		t.Fatalf("expected ErrFileIsEmpty, got %v", err)
	}
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	t.Parallel()
	bundleFile := writeRawBundle(t, func(w *tar.Writer) {
		payload := []byte("evil")
		header := &tar.Header{Name: "../escape.jar", Mode: 0o644, Size: int64(len(payload)), Typeflag: tar.TypeReg}
		if err := w.WriteHeader(header); err != nil {
			t.Fatalf("WriteHeader error: %v", err)
		}
		if _, err := w.Write(payload); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	})
	if err := Extract(bundleFile, t.TempDir()); !errors.Is(err, helpers.ErrArchiveEntryEscapesDestination) {
		t.Fatalf("expected ErrArchiveEntryEscapesDestination, got %v", err)
	}
}

func TestExtractRejectsSymlinks(t *testing.T) {
	t.Parallel()
	bundleFile := writeRawBundle(t, func(w *tar.Writer) {
		header := &tar.Header{Name: "link.jar", Linkname: "target", Typeflag: tar.TypeSymlink}
		if err := w.WriteHeader(header); err != nil {
			t.Fatalf("WriteHeader error: %v", err)
		}
	})
	if err := Extract(bundleFile, t.TempDir()); err == nil {
		t.Fatalf("expected symlink entries to be rejected")
	}
}

func writeRawBundle(t *testing.T, build func(w *tar.Writer)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.tar.gz")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	gzWriter := pgzip.NewWriter(file)
	tarWriter := tar.NewWriter(gzWriter)
	build(tarWriter)
	if err := tarWriter.Close(); err != nil {
		t.Fatalf("Close tar error: %v", err)
	}
	if err := gzWriter.Close(); err != nil {
		t.Fatalf("Close gzip error: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("Close file error: %v", err)
	}
	return path
}
