package ewl

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("ewl: row not found")

	// ErrNotSingular is returned when a retrieval that expects exactly one
	// row returns several.
	ErrNotSingular = errors.New("ewl: row not singular")

	// ErrNoModification is returned when a modification is executed without
	// any column set.
	ErrNoModification = errors.New("ewl: no columns set on modification")
)

// NotFoundError is returned by the generated Get<Table>RowMatchingPk
// functions when no row matches the key.
type NotFoundError struct {
	table string
	key   []any
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if len(e.key) > 0 {
		return fmt.Sprintf("ewl: %s row not found (key=%s)", e.table, formatKey(e.key))
	}
	return fmt.Sprintf("ewl: %s row not found", e.table)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Table returns the table name.
func (e *NotFoundError) Table() string {
	return e.table
}

// Key returns the primary key values that were searched for.
func (e *NotFoundError) Key() []any {
	return e.key
}

// NewNotFoundError returns a new NotFoundError for the given table and key.
func NewNotFoundError(table string, key ...any) *NotFoundError {
	return &NotFoundError{table: table, key: key}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// NotSingularError is returned when a primary key retrieval yields more than
// one row, which means the declared key is not unique in the database.
type NotSingularError struct {
	table string
	count int
}

// Error returns the error string.
func (e *NotSingularError) Error() string {
	return fmt.Sprintf("ewl: %s row not singular (got %d rows, expected 1)", e.table, e.count)
}

// Is reports whether the target error matches NotSingularError.
func (e *NotSingularError) Is(err error) bool {
	return err == ErrNotSingular
}

// Table returns the table name.
func (e *NotSingularError) Table() string {
	return e.table
}

// Count returns the number of rows returned.
func (e *NotSingularError) Count() int {
	return e.count
}

// NewNotSingularError returns a new NotSingularError with the row count.
func NewNotSingularError(table string, count int) *NotSingularError {
	return &NotSingularError{table: table, count: count}
}

// IsNotSingular returns true if the error is a NotSingularError.
func IsNotSingular(err error) bool {
	if err == nil {
		return false
	}
	var e *NotSingularError
	return errors.As(err, &e) || errors.Is(err, ErrNotSingular)
}

// QueryError wraps a failed statement with the SQL text that produced it.
type QueryError struct {
	Query string
	Err   error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	return fmt.Sprintf("ewl: executing %q: %v", e.Query, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}

// ModificationError wraps a failure of a generated modification.
type ModificationError struct {
	Table  string // Table being modified
	Action string // "insert", "update" or "delete"
	Err    error
}

// Error returns the error string.
func (e *ModificationError) Error() string {
	return fmt.Sprintf("ewl: %s on %s failed: %v", e.Action, e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *ModificationError) Unwrap() error {
	return e.Err
}

// IsModificationError returns true if the error is a ModificationError.
func IsModificationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ModificationError
	return errors.As(err, &e)
}

func formatKey(key []any) string {
	parts := make([]string, len(key))
	for i, k := range key {
		parts[i] = fmt.Sprint(k)
	}
	return strings.Join(parts, ",")
}
