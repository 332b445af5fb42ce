package store

import "fmt"

// FormatError reports a stored value that cannot be parsed where a query
// needs it, e.g. a non-numeric duration during TotalMinutes.
type FormatError struct {
	EntryID string
	Field   string
	Value   string
	Err     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("entry %s: malformed %s %q: %v", e.EntryID, e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ValidationError reports input rejected before it reaches the log.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
