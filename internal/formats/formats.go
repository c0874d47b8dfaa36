// Package formats infers file formats from path extensions and checks
// input/output paths against the formats the tool can read and write.
package formats

import (
	"path/filepath"
	"strings"
)

// Format is a lowercased file extension without the leading dot.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// Role distinguishes input paths from the output path in validation errors.
type Role string

const (
	RoleInput  Role = "input"
	RoleOutput Role = "output"
)

var (
	supportedInputs  = []Format{CSV}
	supportedOutputs = []Format{JSON}
)

// FormatFromPath returns the lowercased extension of path, e.g. "Users.CSV" -> csv.
// A path without an extension yields the empty format.
func FormatFromPath(path string) Format {
	ext := filepath.Ext(path)
	return Format(strings.ToLower(strings.TrimPrefix(ext, ".")))
}

// SupportedInputs returns the formats accepted as input sources.
func SupportedInputs() []Format {
	return append([]Format(nil), supportedInputs...)
}

// SupportedOutputs returns the formats the serializer can write.
func SupportedOutputs() []Format {
	return append([]Format(nil), supportedOutputs...)
}

// IsSupportedInput reports whether f can be read as an input source.
func IsSupportedInput(f Format) bool {
	return contains(supportedInputs, f)
}

// IsSupportedOutput reports whether f can be written as the output document.
func IsSupportedOutput(f Format) bool {
	return contains(supportedOutputs, f)
}

func contains(set []Format, f Format) bool {
	if f == "" {
		return false
	}
	for _, s := range set {
		if s == f {
			return true
		}
	}
	return false
}

// ValidatePaths checks every input path and the output path before any file
// is touched. It returns the first *ValidationError found.
func ValidatePaths(inputs []string, output string) error {
	if len(inputs) == 0 {
		return &ValidationError{Role: RoleInput, Message: "at least one input path is required"}
	}
	for _, path := range inputs {
		if err := ValidateInput(path); err != nil {
			return err
		}
	}
	return ValidateOutput(output)
}

// ValidateInput checks a single input path's format tag.
func ValidateInput(path string) error {
	f := FormatFromPath(path)
	if !IsSupportedInput(f) {
		return &ValidationError{
			Role:    RoleInput,
			Path:    path,
			Format:  f,
			Message: "unsupported input file type",
		}
	}
	return nil
}

// ValidateOutput checks the output path's format tag.
func ValidateOutput(path string) error {
	if path == "" {
		return &ValidationError{Role: RoleOutput, Message: "output path is required"}
	}
	f := FormatFromPath(path)
	if !IsSupportedOutput(f) {
		return &ValidationError{
			Role:    RoleOutput,
			Path:    path,
			Format:  f,
			Message: "unsupported output file type",
		}
	}
	return nil
}
