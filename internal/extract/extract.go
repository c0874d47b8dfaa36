// Package extract reads user records out of tabular input sources.
package extract

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/usermerge/internal/formats"
	"github.com/jonathan/usermerge/internal/users"
)

const (
	// DefaultNameColumn holds "First Last".
	DefaultNameColumn = "full_name"
	// DefaultEmailColumn holds the email, copied verbatim.
	DefaultEmailColumn = "email"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source is an input path tagged with the format inferred from its extension.
type Source struct {
	Path   string
	Format formats.Format
}

// NewSource tags path with its format.
func NewSource(path string) Source {
	return Source{Path: path, Format: formats.FormatFromPath(path)}
}

// Extractor turns a source into UserRecords.
type Extractor struct {
	NameColumn  string
	EmailColumn string
}

// New returns an Extractor reading the default full_name and email columns.
func New() *Extractor {
	return &Extractor{
		NameColumn:  DefaultNameColumn,
		EmailColumn: DefaultEmailColumn,
	}
}

// Extract reads every data row of src. Records are returned in file order,
// duplicates included.
//
// A non-csv source yields *UnsupportedFormatError. A missing column or empty
// cell yields *MissingFieldError, and a name without a clean first/last split
// *NameFormatError.
func (e *Extractor) Extract(src Source) ([]users.UserRecord, error) {
	if src.Format != formats.CSV {
		return nil, &UnsupportedFormatError{Path: src.Path, Format: src.Format}
	}

	f, err := os.Open(src.Path)
	if err != nil {
		return nil, &ParseError{Path: src.Path, Message: "failed to open file", Cause: err}
	}
	defer f.Close()

	return e.ExtractCSV(src.Path, f)
}

// ExtractCSV parses CSV content from r. path is used for error reporting only.
func (e *Extractor) ExtractCSV(path string, r io.Reader) ([]users.UserRecord, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &MissingFieldError{Field: e.NameColumn, Path: path}
	}
	if err != nil {
		return nil, &ParseError{Path: path, Message: "failed to read header row", Cause: err}
	}

	idx := makeHeaderIndex(header)
	namePos, ok := idx[e.NameColumn]
	if !ok {
		return nil, &MissingFieldError{Field: e.NameColumn, Path: path}
	}
	emailPos, ok := idx[e.EmailColumn]
	if !ok {
		return nil, &MissingFieldError{Field: e.EmailColumn, Path: path}
	}

	var records []users.UserRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Path: path, Message: "failed to read row", Cause: err}
		}
		line, _ := reader.FieldPos(0)

		fullName, ok := cell(row, namePos)
		if !ok {
			return nil, &MissingFieldError{Field: e.NameColumn, Path: path, Line: line}
		}
		email, ok := cell(row, emailPos)
		if !ok {
			return nil, &MissingFieldError{Field: e.EmailColumn, Path: path, Line: line}
		}

		first, last, ok := SplitFullName(fullName)
		if !ok {
			return nil, &NameFormatError{Path: path, Line: line, Value: fullName}
		}

		rec := users.UserRecord{FirstName: first, LastName: last, Email: email}
		if err := rec.Validate(); err != nil {
			return nil, e.recordError(err, path, line, fullName)
		}
		records = append(records, rec)
	}

	return records, nil
}

// recordError maps a failed UserRecord validation onto the extractor's field
// errors: an empty name cell or email is a missing field, an empty last name
// is a name that could not be split.
func (e *Extractor) recordError(err error, path string, line int, fullName string) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return fmt.Errorf("invalid record in file '%s' (line %d): %w", path, line, err)
	}

	switch vErrs[0].Field() {
	case "FirstName":
		return &MissingFieldError{Field: e.NameColumn, Path: path, Line: line}
	case "LastName":
		return &NameFormatError{Path: path, Line: line, Value: fullName}
	case "Email":
		return &MissingFieldError{Field: e.EmailColumn, Path: path, Line: line}
	default:
		return fmt.Errorf("invalid record in file '%s' (line %d): %w", path, line, err)
	}
}

// SplitFullName splits on single spaces. The first token is the first name and
// the remaining tokens, rejoined, the last name: "Mary Jane Smith" -> ("Mary",
// "Jane Smith"). A one-token name yields an empty last name.
//
// ok is false when a separator is doubled, leading or trailing ("Jane  Doe",
// " Doe", "Jane "), since no clean split exists.
func SplitFullName(fullName string) (first, last string, ok bool) {
	tokens := strings.Split(fullName, " ")
	if len(tokens) == 1 {
		return tokens[0], "", true
	}
	for _, tok := range tokens {
		if tok == "" {
			return "", "", false
		}
	}
	return tokens[0], strings.Join(tokens[1:], " "), true
}

// makeHeaderIndex maps column names to their position. Names are matched
// exactly; the first occurrence of a repeated column wins.
func makeHeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if _, exists := idx[h]; !exists {
			idx[h] = i
		}
	}
	return idx
}

// cell returns row[pos] when the row is long enough to hold the column.
// Empty values are left to record validation.
func cell(row []string, pos int) (string, bool) {
	if pos >= len(row) {
		return "", false
	}
	return row[pos], true
}
