package extract

import (
	"fmt"

	"github.com/jonathan/usermerge/internal/formats"
)

// MissingFieldError reports an expected column absent from a source, or a row
// that has no value for it. It aborts the whole run.
type MissingFieldError struct {
	Field string
	Path  string
	Line  int // 0 when the column is missing from the header
}

func (e *MissingFieldError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("error retrieving '%s' in file '%s' (line %d)", e.Field, e.Path, e.Line)
	}
	return fmt.Sprintf("error retrieving '%s' in file '%s'", e.Field, e.Path)
}

// NameFormatError reports a full name that cannot be split into first and last name.
type NameFormatError struct {
	Path  string
	Line  int
	Value string
}

func (e *NameFormatError) Error() string {
	return fmt.Sprintf("cannot split full name %q into first and last name in file '%s' (line %d)", e.Value, e.Path, e.Line)
}

// UnsupportedFormatError reports a source whose format the extractor cannot read.
// Callers treat it as a warning and skip the source.
type UnsupportedFormatError struct {
	Path   string
	Format formats.Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("file input type not yet supported: '%s' (.%s)", e.Path, e.Format)
}

// ParseError represents an I/O or CSV syntax failure while reading a source.
type ParseError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error in '%s': %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error in '%s': %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
