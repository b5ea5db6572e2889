// Package fileops provides the low-level file primitives the server is
// built on: symlink inspection, UTF-8 text reading and writing, atomic
// writes and file metadata collection.
//
// The package is deliberately free of sandbox knowledge. Callers are
// expected to validate paths before handing them in; every function here
// operates on exactly the path it is given and reports failures as
// wrapped errors instead of deciding policy.
//
// # Text Handling
//
// ReadTextFile and WriteTextFile enforce valid UTF-8 in both directions.
// Binary data is rejected with ErrInvalidEncoding rather than passed
// through mangled:
//
//	content, err := fileops.ReadTextFile(path)
//	if errors.Is(err, fileops.ErrInvalidEncoding) {
//	    // file holds non-text bytes
//	}
//
// # Symlink Handling
//
// IsSymlink and SymlinkTarget examine links without following them, which
// lets callers decide what a link may point at before touching the target:
//
//	if isLink, _ := fileops.IsSymlink(path); isLink {
//	    target, _ := fileops.SymlinkTarget(path)
//	    // vet target before use
//	}
//
// # Atomic Operations
//
// AtomicWrite stages content in a temporary file and renames it into
// place, so a crash mid-write never leaves a half-written file at the
// destination:
//
//	err := fileops.AtomicWrite(destPath, data, 0o600)
//	// Destination appears atomically or remains unchanged on failure
//
// # Directory Operations
//
// EnsureDirectoryExists() creates directories safely with proper permissions (0755).
package fileops
