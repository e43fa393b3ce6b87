package memfs

import (
	"errors"
	"fmt"
)

// Code is one of the closed set of filesystem error conditions.
type Code string

const (
	ENOENT       Code = "ENOENT"       // path or required ancestor absent
	ENODIR       Code = "ENODIR"       // component that must be a directory is missing or a file
	ENOTEMPTY    Code = "ENOTEMPTY"    // removing a non-empty directory
	EEXISTS      Code = "EEXISTS"      // destination occupied
	EINVALIDPATH Code = "EINVALIDPATH" // empty basename where one is required
)

// codeError is the sentinel type behind the Err* values.
type codeError struct {
	code Code
	msg  string
}

func (e *codeError) Error() string { return string(e.code) + ": " + e.msg }

var (
	ErrNoEnt       error = &codeError{ENOENT, "no such file or directory"}
	ErrNoDir       error = &codeError{ENODIR, "not a directory"}
	ErrNotEmpty    error = &codeError{ENOTEMPTY, "directory not empty"}
	ErrExists      error = &codeError{EEXISTS, "file exists"}
	ErrInvalidPath error = &codeError{EINVALIDPATH, "invalid path"}
)

// PathError records a failed operation together with the path it was
// invoked with. Err is always one of the Err* sentinels.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Code returns the taxonomy code of the wrapped sentinel.
func (e *PathError) Code() Code {
	return CodeOf(e.Err)
}

// NewPathError wraps the sentinel for code into a PathError.
func NewPathError(op, path string, code Code) *PathError {
	return &PathError{Op: op, Path: path, Err: ErrForCode(code)}
}

// ErrForCode returns the sentinel error for code, or nil for unknown codes.
func ErrForCode(code Code) error {
	switch code {
	case ENOENT:
		return ErrNoEnt
	case ENODIR:
		return ErrNoDir
	case ENOTEMPTY:
		return ErrNotEmpty
	case EEXISTS:
		return ErrExists
	case EINVALIDPATH:
		return ErrInvalidPath
	}
	return nil
}

// CodeOf extracts the taxonomy code from err or anything it wraps.
// Returns "" when err carries no code.
func CodeOf(err error) Code {
	var ce *codeError
	if errors.As(err, &ce) {
		return ce.code
	}
	return ""
}
