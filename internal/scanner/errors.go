package scanner

import (
	"errors"
	"fmt"
)

// ErrKind classifies scan-level failures. Both kinds are fatal to the
// invocation: a scan either covers the whole tree or returns no report.
type ErrKind int

const (
	// KindNotFound means the scan root does not exist or is not a directory
	KindNotFound ErrKind = iota

	// KindAccessDenied means a subtree could not be listed
	KindAccessDenied
)

func (k ErrKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAccessDenied:
		return "access_denied"
	default:
		return "unknown"
	}
}

// ScanError wraps a scan-level failure with its kind and the path that
// triggered it
type ScanError struct {
	Kind ErrKind
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan failed (%s) at %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a scan failure of kind NotFound
func IsNotFound(err error) bool {
	var se *ScanError
	return errors.As(err, &se) && se.Kind == KindNotFound
}

// IsAccessDenied reports whether err is a scan failure of kind AccessDenied
func IsAccessDenied(err error) bool {
	var se *ScanError
	return errors.As(err, &se) && se.Kind == KindAccessDenied
}
