// Package filemanager implements the file operations behind the MCP
// tools: sandboxed reads and writes, batch reads, search-and-replace
// edits with diff previews, directory management, recursive search and
// metadata inspection.
//
// Every operation validates its paths through the sandbox resolver
// before touching the filesystem. Methods return the resolver's access
// errors unchanged so callers can distinguish a denied path from an
// ordinary I/O failure with errors.Is.
package filemanager

import (
	"time"

	"filegate/internal/logging"
	"filegate/internal/sandbox"
	"filegate/pkg/fileops"
)

// FileManager executes file operations confined to a set of allowed
// directories. It is safe for concurrent use; all state is immutable
// after construction.
type FileManager struct {
	resolver *sandbox.Resolver
	logger   *logging.AppLogger
}

// NewFileManager creates a FileManager confined to the given roots.
func NewFileManager(roots sandbox.Roots, logger *logging.AppLogger) *FileManager {
	return &FileManager{
		resolver: sandbox.NewResolver(roots, logger),
		logger:   logger,
	}
}

// ReadFile returns the UTF-8 text content of the file at path.
func (fm *FileManager) ReadFile(path string) (string, error) {
	resolved, err := fm.resolver.Validate(path)
	if err != nil {
		return "", err
	}

	content, err := fileops.ReadTextFile(resolved)
	if err != nil {
		return "", err
	}

	fm.logger.Debug("Read file", "path", resolved, "bytes", len(content))
	return content, nil
}

// WriteFile writes content to path, creating the file if needed and
// truncating it otherwise. Parent directories are not created
// implicitly; writing into a missing directory fails.
func (fm *FileManager) WriteFile(path, content string) error {
	resolved, err := fm.resolver.Validate(path)
	if err != nil {
		return err
	}

	if err := fileops.WriteTextFile(resolved, content); err != nil {
		return err
	}

	fm.logger.Debug("Wrote file", "path", resolved, "bytes", len(content))
	return nil
}

// ReadMultipleFiles reads every path independently and reports one
// outcome per requested path. A failure on one path never aborts the
// batch; the failing entry carries the error text instead of content.
// Duplicate paths collapse to a single entry.
func (fm *FileManager) ReadMultipleFiles(paths []string) map[string]ReadOutcome {
	start := time.Now()

	results := make(map[string]ReadOutcome, len(paths))
	for _, p := range paths {
		content, err := fm.ReadFile(p)
		if err != nil {
			results[p] = ReadOutcome{Err: err.Error()}
			continue
		}
		results[p] = ReadOutcome{Content: content}
	}

	fm.logger.LogPerformance("read_multiple_files", start)
	return results
}
