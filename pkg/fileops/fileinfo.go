package fileops

import (
	"fmt"
	"os"
	"time"

	"github.com/djherbis/times"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// FileAttributes stats path and returns its metadata as an ordered
// attribute map, so callers can render the entries in a stable order.
//
// Attributes, in order: size, created, modified, accessed, isDirectory,
// isFile, permissions. Timestamps are RFC 3339. On platforms without a
// birth time the change time stands in for created, falling back to the
// modification time where even that is missing. Permissions are the
// 3-digit octal form.
//
// Parameters:
//   - path: File or directory to inspect
//
// Returns:
//   - *orderedmap.OrderedMap[string, string]: Attribute name to rendered value
//   - error: Stat errors, including non-existent paths
func FileAttributes(path string) (*orderedmap.OrderedMap[string, string], error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	ts := times.Get(info)

	created := info.ModTime()
	switch {
	case ts.HasBirthTime():
		created = ts.BirthTime()
	case ts.HasChangeTime():
		created = ts.ChangeTime()
	}

	attrs := orderedmap.New[string, string]()
	attrs.Set("size", fmt.Sprintf("%d", info.Size()))
	attrs.Set("created", created.Format(time.RFC3339))
	attrs.Set("modified", info.ModTime().Format(time.RFC3339))
	attrs.Set("accessed", ts.AccessTime().Format(time.RFC3339))
	attrs.Set("isDirectory", fmt.Sprintf("%t", info.IsDir()))
	attrs.Set("isFile", fmt.Sprintf("%t", info.Mode().IsRegular()))
	attrs.Set("permissions", fmt.Sprintf("%03o", info.Mode().Perm()))

	return attrs, nil
}
