package sandbox

import (
	"errors"
	"fmt"
)

// ErrAccessDenied is the sentinel behind every containment rejection.
// Callers match it with errors.Is without caring which validation step
// refused the path.
var ErrAccessDenied = errors.New("access denied")

// DenialReason identifies the validation step that rejected a path.
type DenialReason int

const (
	// ReasonOutsideRoots means the normalized path itself is not under any
	// allowed directory.
	ReasonOutsideRoots DenialReason = iota

	// ReasonSymlinkTarget means the path is a symlink whose target escapes
	// the allowed directories.
	ReasonSymlinkTarget
)

// AccessDeniedError reports a path that failed sandbox containment.
// Path holds the normalized form that was rejected (for symlinks, the
// resolved target).
type AccessDeniedError struct {
	Path   string
	Reason DenialReason
}

func (e *AccessDeniedError) Error() string {
	if e.Reason == ReasonSymlinkTarget {
		return fmt.Sprintf("access denied - symlink target outside allowed directories: %s", e.Path)
	}
	return fmt.Sprintf("access denied - path outside allowed directories: %s", e.Path)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}
