package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Load errors
	ErrLoad      = errors.New("failed to load dataset")
	ErrEmptyFile = fmt.Errorf("%w: file is empty", ErrLoad)
	ErrMalformed = fmt.Errorf("%w: malformed input", ErrLoad)
	ErrEncoding  = fmt.Errorf("%w: invalid encoding", ErrLoad)
	ErrFileType  = fmt.Errorf("%w: unsupported file type", ErrLoad)

	// Analysis errors
	ErrEmptyColumn    = errors.New("column has no data")
	ErrColumnNotFound = errors.New("column not found")
	ErrNoSelection    = errors.New("no column selected")
	ErrRaggedTable    = errors.New("columns have unequal lengths")
)

// Error constructors with context
func NewLoadError(reason string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrLoad, reason)
	}
	return fmt.Errorf("%w: %s: %v", ErrLoad, reason, cause)
}

func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

func NewEmptyColumnError(name string) error {
	return fmt.Errorf("%w: %q has no non-null values", ErrEmptyColumn, name)
}

// Error checking helpers
func IsLoadError(err error) bool {
	return errors.Is(err, ErrLoad)
}

func IsEmptyColumnError(err error) bool {
	return errors.Is(err, ErrEmptyColumn)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrColumnNotFound)
}
