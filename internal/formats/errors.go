package formats

import "fmt"

// ValidationError reports a path whose format tag is not supported for its role.
type ValidationError struct {
	Role    Role
	Path    string
	Format  Format
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s validation error: %s", e.Role, e.Message)
	}
	if e.Format == "" {
		return fmt.Sprintf("%s validation error: %s: %s (no extension)", e.Role, e.Message, e.Path)
	}
	return fmt.Sprintf("%s validation error: %s: %s (.%s)", e.Role, e.Message, e.Path, e.Format)
}
