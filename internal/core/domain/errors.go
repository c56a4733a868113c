package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedHeader indicates a document header is missing a
	// required field or a field value failed validation. Fatal for the
	// build: later stages assume a complete valid document set.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrDuplicateField indicates a header declares the same field
	// twice. Fatal, same stage as ErrMalformedHeader.
	ErrDuplicateField = errors.New("duplicate header field")

	// ErrDuplicateID indicates two documents declare the same
	// identifier. Fatal: identifiers must be unique across the corpus.
	ErrDuplicateID = errors.New("duplicate document identifier")

	// ErrBuildInProgress indicates a build is already running.
	ErrBuildInProgress = errors.New("build in progress")

	// ErrCacheUnavailable indicates the build cache is not configured.
	// Builds run non-incrementally without it.
	ErrCacheUnavailable = errors.New("build cache unavailable")
)

// HeaderError describes a header-level failure in one document. It
// wraps ErrMalformedHeader or ErrDuplicateField so callers can branch
// with errors.Is while the message names the document and field.
type HeaderError struct {
	// Source is the corpus-relative path of the offending file.
	Source string

	// Field is the header field at fault (lowercase key).
	Field string

	// Detail explains what was wrong with the field.
	Detail string

	// Err is the sentinel this error wraps.
	Err error
}

// Error implements the error interface.
func (e *HeaderError) Error() string {
	return fmt.Sprintf("%s: field %q: %s", e.Source, e.Field, e.Detail)
}

// Unwrap exposes the wrapped sentinel for errors.Is.
func (e *HeaderError) Unwrap() error {
	return e.Err
}

// ParseFailure pairs a source path with the errors found in it.
// A failed build reports every offending document, not just the first.
type ParseFailure struct {
	Source string
	Errs   []error
}

// BuildFailure is the fatal outcome of the parsing stage: one or more
// documents could not be parsed, so no later stage ran and nothing was
// published.
type BuildFailure struct {
	Failures []ParseFailure
}

// Error implements the error interface.
func (e *BuildFailure) Error() string {
	if len(e.Failures) == 1 {
		return fmt.Sprintf("build failed: 1 document with malformed header (%s)", e.Failures[0].Source)
	}
	return fmt.Sprintf("build failed: %d documents with malformed headers", len(e.Failures))
}

// Unwrap exposes every underlying header error for errors.Is.
func (e *BuildFailure) Unwrap() []error {
	var errs []error
	for _, f := range e.Failures {
		errs = append(errs, f.Errs...)
	}
	return errs
}
