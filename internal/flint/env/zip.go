package env

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
)

// transformArchive streams input zip entries through keep/rename callbacks
// into a new archive written temp-then-rename at outputPath.
//
// Entries are copied one at a time; the archive is never buffered whole in
// memory. Directory entries are always dropped.
func transformArchive(
	inputPath, outputPath string,
	keep func(name string) bool,
	rename func(name string) string,
) error {
	reader, err := zip.OpenReader(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", inputPath, err)
	}
	defer func() {
		_ = reader.Close()
	}()

	writer, tmpPath, err := newArchiveWriter(outputPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if keep != nil && !keep(entry.Name) {
			continue
		}
		name := entry.Name
		if rename != nil {
			name = rename(name)
		}
		if err := copyArchiveEntry(writer.zip, entry, name); err != nil {
			_ = writer.close()
			return fmt.Errorf("failed to copy entry %s from %s: %w", entry.Name, inputPath, err)
		}
	}
	return writer.commit(outputPath)
}

// mergeArchives writes all primary entries, then every secondary entry whose
// name the primary archive did not already provide.
func mergeArchives(primaryPath, secondaryPath, outputPath string) error {
	writer, tmpPath, err := newArchiveWriter(outputPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	seen := make(map[string]struct{})
	appendEntries := func(inputPath string) error {
		reader, err := zip.OpenReader(inputPath)
		if err != nil {
			return fmt.Errorf("failed to open archive %s: %w", inputPath, err)
		}
		defer func() {
			_ = reader.Close()
		}()
		for _, entry := range reader.File {
			if entry.FileInfo().IsDir() {
				continue
			}
			if _, dup := seen[entry.Name]; dup {
				continue
			}
			seen[entry.Name] = struct{}{}
			if err := copyArchiveEntry(writer.zip, entry, entry.Name); err != nil {
				return fmt.Errorf("failed to copy entry %s from %s: %w", entry.Name, inputPath, err)
			}
		}
		return nil
	}

	if err := appendEntries(primaryPath); err != nil {
		_ = writer.close()
		return err
	}
	if err := appendEntries(secondaryPath); err != nil {
		_ = writer.close()
		return err
	}
	return writer.commit(outputPath)
}

// archiveWriter wraps a zip writer staged at a temporary path.
type archiveWriter struct {
	file *os.File
	zip  *zip.Writer
}

func newArchiveWriter(outputPath string) (*archiveWriter, string, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), helpers.DirMod); err != nil {
		return nil, "", fmt.Errorf("failed to create directories for %s: %w", outputPath, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".archive-")
	if err != nil {
		return nil, "", fmt.Errorf("failed to stage archive %s: %w", outputPath, err)
	}
	return &archiveWriter{file: tmp, zip: zip.NewWriter(tmp)}, tmp.Name(), nil
}

func (w *archiveWriter) close() error {
	err := w.zip.Close()
	if closeErr := w.file.Close(); err == nil {
		err = closeErr
	}
	return err
}

// commit finalizes the staged archive and renames it into place.
func (w *archiveWriter) commit(outputPath string) error {
	if err := w.close(); err != nil {
		return fmt.Errorf("failed to finalize archive %s: %w", outputPath, err)
	}
	if err := os.Rename(w.file.Name(), outputPath); err != nil {
		return fmt.Errorf("failed to commit archive %s: %w", outputPath, err)
	}
	return nil
}

// copyArchiveEntry streams one entry into the writer under the given name.
func copyArchiveEntry(writer *zip.Writer, entry *zip.File, name string) error {
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer func() {
		_ = src.Close()
	}()

	header := entry.FileHeader
	header.Name = name
	dst, err := writer.CreateHeader(&header)
	if err != nil {
		return err
	}
	//nolint:gosec // archive entries are bounded by the jar files this tool produces.
	_, err = io.Copy(dst, src)
	return err
}
