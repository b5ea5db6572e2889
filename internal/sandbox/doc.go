// Package sandbox confines every filesystem operation to a configured
// allow-list of directory trees.
//
// The package owns two pieces: the Roots set (the allowed directories,
// normalized once at startup and immutable afterwards) and the Resolver,
// which maps user-supplied path strings onto vetted absolute paths.
// Nothing else in the application is allowed to decide whether a path may
// be touched; callers hand every incoming path to Resolver.Validate and
// operate only on its result.
//
// # Resolution pipeline
//
// Validate runs a fixed sequence:
//
//  1. Tilde expansion (~ and ~/ against the user's home directory)
//  2. Normalization (absolutize against the working directory, collapse
//     . / .. / redundant separators)
//  3. Containment check against the allowed directories
//  4. A single Lstat probe: existing symlinks get their target read once,
//     resolved against the link's directory and containment-checked again
//
// Paths that do not exist yet (write targets) pass validation on the
// lexical checks alone, so files can be created inside the sandbox.
//
// # Security
//
// Containment is boundary-aware: a path is inside a root only when it
// equals the root or extends it at a path-separator boundary. A root of
// /tmp/allowed therefore never admits /tmp/allowed2. Symlink targets are
// resolved one level and re-checked, which blocks links that point out of
// the sandbox while keeping links between allowed directories usable.
//
// All failures are tagged: containment rejections unwrap to
// ErrAccessDenied, everything else keeps the underlying OS error in its
// chain.
package sandbox
