package bundle

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lukeha98/flint-gradle/internal/flint/helpers"
	"github.com/klauspost/pgzip"
)

// Create packs a repository directory into a tar.gz bundle at dstFile.
//
// Only regular files are packed; a repository holds nothing else. Entry names
// are stored slash-separated and relative to the repository root, so a bundle
// created on one platform extracts on any other.
func Create(repoDir, dstFile string) error {
	if err := os.MkdirAll(filepath.Dir(dstFile), helpers.DirMod); err != nil {
		return fmt.Errorf("failed to create bundle directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dstFile), ".bundle-")
	if err != nil {
		return fmt.Errorf("failed to stage bundle: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	gzWriter := pgzip.NewWriter(tmp)
	tarWriter := tar.NewWriter(gzWriter)

	if err := packTree(tarWriter, repoDir); err != nil {
		_ = tarWriter.Close()
		_ = gzWriter.Close()
		_ = tmp.Close()
		return err
	}
	if err := tarWriter.Close(); err != nil {
		_ = gzWriter.Close()
		_ = tmp.Close()
		return fmt.Errorf("failed to finalize bundle: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to finalize bundle compression: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), dstFile); err != nil {
		return fmt.Errorf("failed to commit bundle %s: %w", dstFile, err)
	}
	return nil
}

func packTree(tarWriter *tar.Writer, repoDir string) error {
	return filepath.WalkDir(repoDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(repoDir, path)
		if err != nil {
			return err
		}
		return packFile(tarWriter, path, filepath.ToSlash(rel))
	})
}

func packFile(tarWriter *tar.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("failed to build header for %s: %w", path, err)
	}
	header.Name = name
	if err := tarWriter.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", name, err)
	}

	//nolint:gosec // path was produced by walking the repository tree.
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := io.Copy(tarWriter, file); err != nil {
		return fmt.Errorf("failed to pack file %s: %w", name, err)
	}
	return nil
}

// Extract unpacks a bundle into dstDir with safety checks.
//
// Symlink and hardlink entries are rejected outright; a bundle created by
// Create never contains them, so their presence marks a tampered archive.
func Extract(bundleFile, dstDir string) error {
	info, err := os.Stat(bundleFile)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", bundleFile, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", helpers.ErrFileIsEmpty, bundleFile)
	}

	//nolint:gosec // bundleFile is a user-provided archive path expected by CLI.
	file, err := os.Open(bundleFile)
	if err != nil {
		return fmt.Errorf("failed to open bundle: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	uncompressedStream, err := pgzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer func() {
		_ = uncompressedStream.Close()
	}()

	return extractEntries(tar.NewReader(uncompressedStream), dstDir)
}

func extractEntries(tarReader *tar.Reader, dstDir string) error {
	var extracted int64
	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading bundle: %w", err)
		}
		if err := extractEntry(tarReader, header, dstDir, &extracted); err != nil {
			return err
		}
	}
}

func extractEntry(tarReader *tar.Reader, header *tar.Header, dstDir string, extracted *int64) error {
	relPath, err := sanitizeArchivePath(header.Name)
	if err != nil {
		return err
	}
	if relPath == "" {
		return nil
	}
	targetPath := filepath.Join(dstDir, relPath)

	switch header.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(targetPath, helpers.DirMod); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", targetPath, err)
		}
		return nil
	case tar.TypeReg:
		return extractRegularFile(tarReader, header, targetPath, extracted)
	default:
		return fmt.Errorf("%w: unsupported entry type for %s", helpers.ErrArchiveEntryEscapesDestination, header.Name)
	}
}

func extractRegularFile(tarReader *tar.Reader, header *tar.Header, targetPath string, extracted *int64) error {
	if header.Size < 0 {
		return fmt.Errorf("%w: %s", helpers.ErrArchiveEntryHasNegativeSize, header.Name)
	}
	if header.Size > helpers.ArchiveMaxEntrySize {
		return fmt.Errorf("%w %s: %d bytes", helpers.ErrArchiveEntryIsTooLarge, header.Name, header.Size)
	}
	if *extracted+header.Size > helpers.ArchiveMaxTotalSize {
		return fmt.Errorf("%w: %d bytes", helpers.ErrArchiveExceedsMaxSize, helpers.ArchiveMaxTotalSize)
	}
	if err := os.MkdirAll(filepath.Dir(targetPath), helpers.DirMod); err != nil {
		return fmt.Errorf("failed to create directories for %s: %w", targetPath, err)
	}

	//nolint:gosec // targetPath is a sanitized archive entry under dstDir.
	file, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, helpers.FileMod)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", targetPath, err)
	}
	written, err := io.CopyN(file, tarReader, header.Size)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write file %s: %w", targetPath, err)
	}
	*extracted += written
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", targetPath, err)
	}
	return nil
}

// sanitizeArchivePath validates and normalizes a tar entry path.
func sanitizeArchivePath(name string) (string, error) {
	if name == "" {
		return "", helpers.ErrArchiveEntryHasEmptyName
	}
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if cleaned == "." {
		return "", nil
	}
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%w: %s", helpers.ErrArchiveEntryIsAbsolutePath, name)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", helpers.ErrArchiveEntryEscapesDestination, name)
	}
	return cleaned, nil
}
