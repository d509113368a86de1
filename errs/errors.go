// Package errs defines the error values returned by profio packages.
//
// Every failure is fatal to the current read or write. Callers classify errors with
// errors.Is against the sentinels below; read-side container violations are additionally
// reported as *FormatError, which carries the expected and actual values.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrPathNotFound is returned when a container or catalog path does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrUnsupportedFormat is returned for an unrecognized container, catalog or destination extension.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrNoCatalog is returned when neither a catalog nor a catalog source was supplied.
	ErrNoCatalog = errors.New("no feature catalog supplied")
	// ErrInvalidCatalog is returned when a catalog source cannot be decoded.
	ErrInvalidCatalog = errors.New("invalid feature catalog")
	// ErrDuplicateFeature is returned when a catalog names the same feature twice.
	ErrDuplicateFeature = errors.New("duplicate feature name")
	// ErrProfileNotFound is returned when the catalog references a feature absent from the profile set.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrReadOnly is returned when a mutable view is requested from a read-only profile set.
	ErrReadOnly = errors.New("profile set is read-only")

	// ErrFormat matches every *FormatError.
	ErrFormat = errors.New("invalid profile container")
	// ErrInvalidHeaderSize is returned when fewer than HeaderSize bytes are available.
	ErrInvalidHeaderSize = errors.New("invalid header size")
	// ErrUnsupportedVersion is returned when the container version is not supported.
	ErrUnsupportedVersion = errors.New("unsupported container version")
	// ErrChecksumMismatch is returned when the catalog checksum differs from the container checksum.
	ErrChecksumMismatch = errors.New("feature catalog does not correspond to profile checksum")
	// ErrLengthMismatch is returned when a profile or payload length disagrees with the catalog.
	ErrLengthMismatch = errors.New("length mismatch")
)

// FormatError describes a container that cannot be read with the given catalog.
type FormatError struct {
	// Err is the specific sentinel, e.g. ErrChecksumMismatch.
	Err error
	// Field names the container field that failed validation.
	Field    string
	Expected uint64
	Actual   uint64
}

// NewFormatError creates a FormatError for the given sentinel and field.
func NewFormatError(err error, field string, expected, actual uint64) *FormatError {
	return &FormatError{Err: err, Field: field, Expected: expected, Actual: actual}
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: %s: expected %d, got %d", e.Err, e.Field, e.Expected, e.Actual)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFormat, so callers can match any container violation.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat //nolint:errorlint
}
