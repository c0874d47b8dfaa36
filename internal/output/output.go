// Package output builds the merged user-list document and writes it to disk.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/usermerge/internal/formats"
	"github.com/jonathan/usermerge/internal/schemas"
	"github.com/jonathan/usermerge/internal/users"
)

// Document is the single artifact produced by a run.
type Document struct {
	UserListSize int                `json:"user_list_size"`
	UserList     []users.UserRecord `json:"user_list"`
}

// WriteOptions controls serialization.
type WriteOptions struct {
	// Pretty indents the document with two spaces.
	Pretty bool
}

// Build converts the collection into a Document. UserListSize always equals len(UserList).
func Build(c *users.Collection) Document {
	records := c.Records()
	return Document{
		UserListSize: len(records),
		UserList:     records,
	}
}

// Marshal encodes doc for the given format after checking its invariants and
// validating it against the output schema.
func Marshal(doc Document, format formats.Format, opts WriteOptions) ([]byte, error) {
	if format != formats.JSON {
		return nil, &formats.ValidationError{
			Role:    formats.RoleOutput,
			Format:  format,
			Message: "unsupported output file type",
		}
	}
	if doc.UserListSize != len(doc.UserList) {
		return nil, fmt.Errorf("user_list_size %d does not match %d records", doc.UserListSize, len(doc.UserList))
	}
	if doc.UserList == nil {
		doc.UserList = []users.UserRecord{}
	}

	var (
		data []byte
		err  error
	)
	if opts.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := schemas.ValidateUserList(data); err != nil {
		return nil, fmt.Errorf("output document does not validate against schema: %w", err)
	}

	return data, nil
}

// Write serializes doc and writes it to path in a single write, replacing any
// existing file. The output format is re-checked against the path.
func Write(path string, doc Document, opts WriteOptions) error {
	if err := formats.ValidateOutput(path); err != nil {
		return err
	}

	data, err := Marshal(doc, formats.FormatFromPath(path), opts)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// Verify checks an existing output document: it must satisfy the schema and
// its user_list_size must match the number of entries.
func Verify(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read output file: %w", err)
	}
	if err := schemas.ValidateUserList(data); err != nil {
		return Document{}, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse output file: %w", err)
	}
	if doc.UserListSize != len(doc.UserList) {
		return Document{}, fmt.Errorf("user_list_size %d does not match %d records", doc.UserListSize, len(doc.UserList))
	}
	return doc, nil
}
