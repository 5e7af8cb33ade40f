// Package ledgererror defines the error taxonomy of the ledger core.
// No error here is fatal to the process: every failure means "operation did
// not apply, previous state intact".
package ledgererror

import "fmt"

// ValidationError represents a rejected user entry. Field names which rule
// failed and Reason carries the user-facing message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ImportRejectedError represents parsed backup data that failed the
// structural sanity check. The store is left untouched.
type ImportRejectedError struct {
	Reason string
}

func (e *ImportRejectedError) Error() string {
	return fmt.Sprintf("import rejected: %s", e.Reason)
}

// ImportParseError represents backup text that could not be parsed at all.
// It carries the underlying decode error.
type ImportParseError struct {
	Err error
}

func (e *ImportParseError) Error() string {
	return fmt.Sprintf("import parse failed: %v", e.Err)
}

func (e *ImportParseError) Unwrap() error {
	return e.Err
}

// StoreError represents a failure originating in the underlying record
// store. The core does not retry; the error propagates to the caller.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
