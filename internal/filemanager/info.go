package filemanager

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"filegate/pkg/fileops"
)

// FileInfo returns the metadata attributes of the entry at path. The
// map preserves a stable attribute order for rendering.
func (fm *FileManager) FileInfo(path string) (*orderedmap.OrderedMap[string, string], error) {
	resolved, err := fm.resolver.Validate(path)
	if err != nil {
		return nil, err
	}

	attrs, err := fileops.FileAttributes(resolved)
	if err != nil {
		return nil, err
	}

	fm.logger.Debug("Inspected file", "path", resolved)
	return attrs, nil
}

// ListAllowedDirectories returns the sandbox roots in their configured
// order.
func (fm *FileManager) ListAllowedDirectories() []string {
	return fm.resolver.Roots().List()
}
