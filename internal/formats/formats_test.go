package formats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"users.csv", CSV},
		{"USERS.CSV", CSV},
		{"dir.v2/users.Csv", CSV},
		{"out.json", JSON},
		{"out.JSON", JSON},
		{"notes.txt", "txt"},
		{"noext", ""},
		{"archive.tar.gz", "gz"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestValidatePaths(t *testing.T) {
	tests := []struct {
		name     string
		inputs   []string
		output   string
		wantErr  bool
		wantRole Role
		wantPath string
	}{
		{
			name:   "single csv to json",
			inputs: []string{"users1.csv"},
			output: "out.json",
		},
		{
			name:   "mixed case extensions",
			inputs: []string{"a.CSV", "b.csv"},
			output: "OUT.Json",
		},
		{
			name:     "txt input rejected",
			inputs:   []string{"users1.csv", "users.txt"},
			output:   "out.json",
			wantErr:  true,
			wantRole: RoleInput,
			wantPath: "users.txt",
		},
		{
			name:     "xml output rejected",
			inputs:   []string{"users1.csv"},
			output:   "out.xml",
			wantErr:  true,
			wantRole: RoleOutput,
			wantPath: "out.xml",
		},
		{
			name:     "no inputs",
			output:   "out.json",
			wantErr:  true,
			wantRole: RoleInput,
		},
		{
			name:     "missing output",
			inputs:   []string{"users1.csv"},
			wantErr:  true,
			wantRole: RoleOutput,
		},
		{
			name:     "input without extension",
			inputs:   []string{"userscsv"},
			output:   "out.json",
			wantErr:  true,
			wantRole: RoleInput,
			wantPath: "userscsv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaths(tt.inputs, tt.output)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantRole, vErr.Role)
			assert.Equal(t, tt.wantPath, vErr.Path)
		})
	}
}

func TestValidatePaths_DoesNotTouchFilesystem(t *testing.T) {
	// Neither path exists; validation only looks at the extension.
	err := ValidatePaths([]string{"/does/not/exist/users.csv"}, "/does/not/exist/out.json")
	assert.NoError(t, err)
}

func TestValidationError_Message(t *testing.T) {
	err := ValidateOutput("report.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output file type")
	assert.Contains(t, err.Error(), "report.xml")
	assert.Contains(t, err.Error(), ".xml")
}

func TestSupportedSets(t *testing.T) {
	assert.Equal(t, []Format{CSV}, SupportedInputs())
	assert.Equal(t, []Format{JSON}, SupportedOutputs())
	assert.False(t, IsSupportedInput(JSON))
	assert.False(t, IsSupportedOutput(CSV))
	assert.False(t, IsSupportedInput(""))
}
