package filemanager

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SearchFiles walks the tree under base and returns the full paths of
// every entry whose name contains pattern, compared case-insensitively.
// Entries matching one of the excludePatterns globs are pruned, as are
// entries the sandbox refuses to resolve (a symlink pointing outside
// the allowed directories, for example). Unreadable subtrees are
// skipped rather than failing the whole search.
func (fm *FileManager) SearchFiles(base, pattern string, excludePatterns []string) ([]string, error) {
	resolvedBase, err := fm.resolver.Validate(base)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	lowered := strings.ToLower(pattern)
	matches := []string{}

	err = filepath.WalkDir(resolvedBase, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == resolvedBase {
			return nil
		}

		// Every visited entry gets the same vetting as a direct request.
		if _, err := fm.resolver.Validate(path); err != nil {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(resolvedBase, path)
		if err != nil {
			return nil
		}
		if excluded(rel, excludePatterns) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.Contains(strings.ToLower(d.Name()), lowered) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", resolvedBase, err)
	}

	fm.logger.LogPerformance("search_files", start)
	fm.logger.Debug("Search finished", "base", resolvedBase, "pattern", pattern, "matches", len(matches))
	return matches, nil
}

// excluded reports whether the base-relative path rel matches any of
// the glob patterns. Patterns are tried against the relative path and
// against the entry name alone, so "*.log" excludes logs at any depth.
func excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if ok, err := filepath.Match(p, rel); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(p, filepath.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

// DirectoryTree builds the recursive tree rooted at path. Directories
// carry a children list, files do not. Symlinks are reported as file
// entries and never followed; entries the sandbox refuses to resolve
// are pruned.
func (fm *FileManager) DirectoryTree(path string) (*TreeNode, error) {
	resolved, err := fm.resolver.Validate(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", resolved, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", resolved)
	}

	root := &TreeNode{Name: filepath.Base(resolved), Type: nodeTypeDirectory}
	if err := fm.fillTree(root, resolved); err != nil {
		return nil, err
	}
	return root, nil
}

func (fm *FileManager) fillTree(node *TreeNode, dir string) error {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list directory %s: %w", dir, err)
	}

	for _, entry := range dirEntries {
		childPath := filepath.Join(dir, entry.Name())
		if _, err := fm.resolver.Validate(childPath); err != nil {
			continue
		}

		child := &TreeNode{Name: entry.Name(), Type: nodeTypeFile}
		if entry.IsDir() {
			child.Type = nodeTypeDirectory
			if err := fm.fillTree(child, childPath); err != nil {
				return err
			}
		}
		node.Children = append(node.Children, child)
	}
	return nil
}
