package filemanager

import (
	"fmt"
	"os"

	"filegate/pkg/fileops"
)

// CreateDirectory creates the directory at path along with any missing
// parents. Creating a directory that already exists succeeds without
// change.
func (fm *FileManager) CreateDirectory(path string) error {
	resolved, err := fm.resolver.Validate(path)
	if err != nil {
		return err
	}

	if err := fileops.EnsureDirectoryExists(resolved); err != nil {
		return err
	}

	fm.logger.Debug("Created directory", "path", resolved)
	return nil
}

// ListDirectory returns the immediate entries of the directory at
// path, in the order the OS reports them.
func (fm *FileManager) ListDirectory(path string) ([]Entry, error) {
	resolved, err := fm.resolver.Validate(path)
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entries = append(entries, Entry{Name: de.Name(), IsDir: de.IsDir()})
	}

	return entries, nil
}

// MoveFile renames source to destination. Both ends must resolve
// inside the sandbox. The rename is a single OS operation, so it also
// serves as an in-place rename or a directory move.
func (fm *FileManager) MoveFile(source, destination string) error {
	src, err := fm.resolver.Validate(source)
	if err != nil {
		return err
	}

	dst, err := fm.resolver.Validate(destination)
	if err != nil {
		return err
	}

	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move file: %w", err)
	}

	fm.logger.Debug("Moved file", "source", src, "destination", dst)
	return nil
}
