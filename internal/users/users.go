// Package users defines the merged user record and the duplicate-free
// collection that accumulates records across every input source.
package users

import (
	"sort"

	"github.com/go-playground/validator/v10"
)

// UserRecord is one normalized (first name, last name, email) tuple.
// Equality is structural across all three fields.
type UserRecord struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required"`
}

var validate = validator.New()

// Validate checks that every field is non-empty. Email is not checked as an address.
func (r UserRecord) Validate() error {
	return validate.Struct(r)
}

// Collection is a set of UserRecord keyed on the full tuple.
// No case or whitespace folding is applied.
type Collection struct {
	records map[UserRecord]struct{}
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{records: make(map[UserRecord]struct{})}
}

// Add inserts r and reports whether it was not already present.
func (c *Collection) Add(r UserRecord) bool {
	if _, ok := c.records[r]; ok {
		return false
	}
	c.records[r] = struct{}{}
	return true
}

// AddAll inserts every record and returns how many were new.
func (c *Collection) AddAll(records []UserRecord) int {
	added := 0
	for _, r := range records {
		if c.Add(r) {
			added++
		}
	}
	return added
}

// Contains reports whether r is in the collection.
func (c *Collection) Contains(r UserRecord) bool {
	_, ok := c.records[r]
	return ok
}

// Len returns the number of distinct records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Records returns the collection as a new slice ordered by last name,
// first name, then email. Callers should not treat the order as meaningful.
func (c *Collection) Records() []UserRecord {
	out := make([]UserRecord, 0, len(c.records))
	for r := range c.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].Email < out[j].Email
	})
	return out
}
