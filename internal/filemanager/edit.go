package filemanager

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"filegate/pkg/fileops"
)

// ErrEditNotFound indicates an edit whose search text is absent from
// the content it was applied to.
var ErrEditNotFound = errors.New("edit match not found")

// EditOperation is a single search-and-replace step. SearchText is
// matched literally, not as a pattern.
type EditOperation struct {
	SearchText      string `json:"searchText"`
	ReplacementText string `json:"replacementText"`
}

// EditNotFoundError identifies which edit in a sequence failed to
// match. It unwraps to ErrEditNotFound.
type EditNotFoundError struct {
	SearchText string
}

func (e *EditNotFoundError) Error() string {
	text := e.SearchText
	if len(text) > 80 {
		text = text[:80] + "..."
	}
	return fmt.Sprintf("edit match not found: %q does not occur in the file content", text)
}

func (e *EditNotFoundError) Unwrap() error {
	return ErrEditNotFound
}

// ApplyEdits runs the edits in order over original and returns the
// result. Each edit replaces all occurrences of its search text in the
// content as left by the previous edit, so later edits can match text
// produced by earlier ones. The first edit whose search text is absent
// aborts the whole sequence.
func ApplyEdits(original string, edits []EditOperation) (string, error) {
	current := original
	for _, edit := range edits {
		if !strings.Contains(current, edit.SearchText) {
			return "", &EditNotFoundError{SearchText: edit.SearchText}
		}
		current = strings.ReplaceAll(current, edit.SearchText, edit.ReplacementText)
	}
	return current, nil
}

const diffSeparatorWidth = 40

// Diff renders the line-level changes between original and modified as
// a plain-text report headed by label. Removed lines appear as
// "- <n>: <line>" with n a zero-based line offset into original,
// inserted lines as "+ <n>: <line>" with n an offset into modified.
// Unchanged lines are omitted. Identical inputs produce just the
// header.
func Diff(original, modified, label string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Diff for %s:\n", label)
	b.WriteString(strings.Repeat("=", diffSeparatorWidth))
	b.WriteString("\n")

	origLines := strings.Split(original, "\n")
	modLines := strings.Split(modified, "\n")

	matcher := difflib.NewMatcher(origLines, modLines)
	for _, op := range matcher.GetOpCodes() {
		if op.Tag == 'd' || op.Tag == 'r' {
			for i := op.I1; i < op.I2; i++ {
				fmt.Fprintf(&b, "- %d: %s\n", i, origLines[i])
			}
		}
		if op.Tag == 'i' || op.Tag == 'r' {
			for j := op.J1; j < op.J2; j++ {
				fmt.Fprintf(&b, "+ %d: %s\n", j, modLines[j])
			}
		}
	}

	return b.String()
}

// EditFile applies edits to the file at path and returns a diff of
// what changed. With dryRun set the diff is computed but the file is
// left untouched. Edits are applied in memory and written back in one
// step, so a failing edit never leaves a partially modified file.
func (fm *FileManager) EditFile(path string, edits []EditOperation, dryRun bool) (string, error) {
	resolved, err := fm.resolver.Validate(path)
	if err != nil {
		return "", err
	}

	original, err := fileops.ReadTextFile(resolved)
	if err != nil {
		return "", err
	}

	modified, err := ApplyEdits(original, edits)
	if err != nil {
		return "", err
	}

	diff := Diff(original, modified, resolved)

	if dryRun {
		fm.logger.Debug("Edit dry run", "path", resolved, "edits", len(edits))
		return diff, nil
	}

	if err := fileops.WriteTextFile(resolved, modified); err != nil {
		return "", err
	}

	fm.logger.Debug("Applied edits", "path", resolved, "edits", len(edits))
	return diff, nil
}
