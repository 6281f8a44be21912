package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates that the configuration does not match the
	// introspected schema.
	ErrInvalidSchema = errors.New("ewl: invalid schema")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("ewl: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("ewl: code generation failed")
	// ErrDatabaseFailed indicates that the generation of one database failed.
	ErrDatabaseFailed = errors.New("ewl: database generation failed")
	// ErrUserCorrectable indicates a failure the operator can fix and retry,
	// such as a permission problem or a failing external tool.
	ErrUserCorrectable = errors.New("ewl: user-correctable failure")
)

// SchemaError is a configuration-integrity error: the configuration names
// something the schema does not have, or asks for code the schema cannot
// support.
type SchemaError struct {
	Table   string
	Column  string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("ewl: schema error")
	if e.Table != "" {
		b.WriteString(" on table ")
		b.WriteString(e.Table)
	}
	if e.Column != "" {
		b.WriteString(" column ")
		b.WriteString(e.Column)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(table, column, message string, cause error) *SchemaError {
	return &SchemaError{
		Table:   table,
		Column:  column,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("ewl: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("ewl: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a failure while producing one artifact.
type GenerationError struct {
	Phase   string // "library", "web project", "service", "xml schema", ...
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("ewl: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// DatabaseError wraps a failure that happened while generating the code of
// one database. Database is "primary" or "<name> secondary".
type DatabaseError struct {
	Database string
	Cause    error
}

// Error implements the error interface.
func (e *DatabaseError) Error() string {
	return fmt.Sprintf("ewl: %s database: %v", e.Database, e.Cause)
}

// Unwrap returns the underlying error.
func (e *DatabaseError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for DatabaseError.
func (e *DatabaseError) Is(target error) bool {
	return target == ErrDatabaseFailed
}

// UserCorrectableError is a failure the operator can correct before
// running the operation again.
type UserCorrectableError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *UserCorrectableError) Error() string {
	if e.Cause == nil {
		return "ewl: " + e.Message
	}
	return fmt.Sprintf("ewl: %s: %v", e.Message, e.Cause)
}

// Unwrap returns the underlying error.
func (e *UserCorrectableError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for UserCorrectableError.
func (e *UserCorrectableError) Is(target error) bool {
	return target == ErrUserCorrectable
}

// CompilerError reports a failed XML schema compilation. It is always
// user-correctable.
type CompilerError struct {
	Schema string
	Tool   string
	Output string // combined tool output, if any
	Cause  error
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ewl: failed to compile XML schema %s with %s", e.Schema, e.Tool)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		b.WriteString("\n")
		b.WriteString(out)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *CompilerError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for CompilerError.
func (e *CompilerError) Is(target error) bool {
	return target == ErrUserCorrectable
}

// wrapIOError classifies a file system error: access problems and missing
// paths are user-correctable, anything else is wrapped as a generation
// error of the phase.
func wrapIOError(phase, file string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
		return &UserCorrectableError{
			Message: fmt.Sprintf("%s: cannot access %s", phase, file),
			Cause:   err,
		}
	}
	return NewGenerationError(phase, file, "", err)
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsDatabaseError reports whether the error is a DatabaseError.
func IsDatabaseError(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr)
}

// IsCompilerError reports whether the error is a CompilerError.
func IsCompilerError(err error) bool {
	var compErr *CompilerError
	return errors.As(err, &compErr)
}

// IsUserCorrectable reports whether the operator can fix the cause of the
// error and retry.
func IsUserCorrectable(err error) bool {
	return errors.Is(err, ErrUserCorrectable)
}
