package env

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

// nopPrinter silences pipeline output in tests.
type nopPrinter struct{}

func (nopPrinter) Printf(string, ...any)                 {}
func (nopPrinter) PersistentPrintf(string, ...any)       {}
func (nopPrinter) Warnf(string, ...any)                  {}
func (nopPrinter) Debugf(string, ...any)                 {}
func (nopPrinter) DebugSincef(time.Time, string, ...any) {}

func writeTestArchive(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	writer := zip.NewWriter(file)
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatalf("Create entry error: %v", err)
		}
		if _, err := entry.Write([]byte(entries[name])); err != nil {
			t.Fatalf("Write entry error: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close writer error: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("Close file error: %v", err)
	}
}

func readTestArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("OpenReader error: %v", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	entries := make(map[string]string)
	for _, entry := range reader.File {
		src, err := entry.Open()
		if err != nil {
			t.Fatalf("Open entry error: %v", err)
		}
		data, err := io.ReadAll(src)
		if err != nil {
			t.Fatalf("Read entry error: %v", err)
		}
		_ = src.Close()
		entries[entry.Name] = string(data)
	}
	return entries
}

func writeTestMappings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mappings.txt")
	writeTestMappingsAt(t, path, content)
	return path
}

func writeTestMappingsAt(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
}
