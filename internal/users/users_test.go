package users

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_DeduplicatesExactTuples(t *testing.T) {
	c := NewCollection()

	jane := UserRecord{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"}
	bob := UserRecord{FirstName: "Bob", LastName: "Lee", Email: "bob@y.com"}

	assert.True(t, c.Add(jane))
	assert.False(t, c.Add(jane))
	assert.True(t, c.Add(bob))

	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Contains(jane))
	assert.True(t, c.Contains(bob))
}

func TestCollection_NoNormalization(t *testing.T) {
	c := NewCollection()

	added := c.AddAll([]UserRecord{
		{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"},
		{FirstName: "jane", LastName: "Doe", Email: "jane@x.com"},
		{FirstName: "Jane", LastName: "Doe", Email: "JANE@x.com"},
		{FirstName: "Jane", LastName: "Doe", Email: " jane@x.com"},
	})

	assert.Equal(t, 4, added)
	assert.Equal(t, 4, c.Len())
}

func TestCollection_AddAllCountsOnlyNew(t *testing.T) {
	c := NewCollection()
	r := UserRecord{FirstName: "A", LastName: "B", Email: "a@b"}

	assert.Equal(t, 1, c.AddAll([]UserRecord{r, r, r}))
	assert.Equal(t, 0, c.AddAll([]UserRecord{r}))
	assert.Equal(t, 1, c.Len())
}

func TestCollection_RecordsSortedCopy(t *testing.T) {
	c := NewCollection()
	c.AddAll([]UserRecord{
		{FirstName: "Zed", LastName: "Lee", Email: "z@y.com"},
		{FirstName: "Bob", LastName: "Lee", Email: "bob@y.com"},
		{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"},
		{FirstName: "Bob", LastName: "Lee", Email: "a@y.com"},
	})

	got := c.Records()
	require.Len(t, got, 4)
	assert.Equal(t, "Doe", got[0].LastName)
	assert.Equal(t, "a@y.com", got[1].Email)
	assert.Equal(t, "bob@y.com", got[2].Email)
	assert.Equal(t, "Zed", got[3].FirstName)

	got[0].FirstName = "Mutated"
	assert.False(t, c.Contains(got[0]))
}

func TestCollection_EmptyRecords(t *testing.T) {
	c := NewCollection()
	assert.Equal(t, 0, c.Len())
	assert.NotNil(t, c.Records())
	assert.Empty(t, c.Records())
}

func TestUserRecord_Validate(t *testing.T) {
	tests := []struct {
		name      string
		record    UserRecord
		wantField string
	}{
		{
			name:   "valid",
			record: UserRecord{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"},
		},
		{
			name:   "email is free text",
			record: UserRecord{FirstName: "Jane", LastName: "Doe", Email: "not-an-email"},
		},
		{
			name:      "missing first name",
			record:    UserRecord{LastName: "Doe", Email: "jane@x.com"},
			wantField: "FirstName",
		},
		{
			name:      "missing email",
			record:    UserRecord{FirstName: "Jane", LastName: "Doe"},
			wantField: "Email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var vErrs validator.ValidationErrors
			require.ErrorAs(t, err, &vErrs)
			assert.Equal(t, tt.wantField, vErrs[0].Field())
		})
	}
}
