package fileops

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// ErrInvalidEncoding reports content that is not valid UTF-8. It sits in
// the error chain of every text operation that rejects binary data, so
// callers can match it with errors.Is.
var ErrInvalidEncoding = errors.New("content is not valid UTF-8")

// ReadTextFile reads the complete file at path and returns it as text.
// The whole content must decode as UTF-8; files holding binary data fail
// with ErrInvalidEncoding in the error chain. The file handle is held
// only for the duration of the read.
//
// Parameters:
//   - path: File path to read
//
// Returns:
//   - string: Complete file content
//   - error: Open/read errors, or an ErrInvalidEncoding wrap for binary content
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("file %s: %w", path, ErrInvalidEncoding)
	}

	return string(data), nil
}

// WriteTextFile writes content to path, creating the file with mode 0644
// if it does not exist and truncating it if it does. The parent directory
// must already exist. Content must be valid UTF-8; binary data fails with
// ErrInvalidEncoding before anything touches the disk.
//
// Parameters:
//   - path: Destination file path
//   - content: Text to write
//
// Returns:
//   - error: Encoding or write errors
func WriteTextFile(path string, content string) error {
	if !utf8.ValidString(content) {
		return fmt.Errorf("content for %s: %w", path, ErrInvalidEncoding)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
