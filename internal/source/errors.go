package source

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching with errors.Is.
var (
	// ErrFileNotFound indicates an explicitly requested config file is missing.
	ErrFileNotFound = errors.New("file not found")

	// ErrParse indicates a config file or manifest could not be decoded.
	ErrParse = errors.New("parse error")
)

// FileNotFoundError reports a missing explicit config file.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return "File not found: " + e.Path
}

// Is matches ErrFileNotFound.
func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

// ParseError reports malformed config content.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
