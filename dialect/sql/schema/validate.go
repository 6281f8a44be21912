package schema

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ValidationError represents a schema problem found before generation.
type ValidationError struct {
	Table   string
	Column  string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the results of schema validation.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

// ValidateTable validates a single introspected table.
func ValidateTable(t *Table) *ValidationResult {
	result := &ValidationResult{}

	if !t.HasPrimaryKey() {
		result.Warnings = append(result.Warnings, &ValidationError{
			Table:   t.Name,
			Message: "table has no primary key",
		})
	}

	// Generated identifiers are derived from column names, so names that
	// differ only by case collide.
	fold := cases.Fold()
	colNames := make(map[string]bool)
	for _, c := range t.Columns {
		key := fold.String(c.Name)
		if colNames[key] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Column:  c.Name,
				Message: "duplicate column name",
			})
		}
		colNames[key] = true
		if c.Type == TypeAny {
			result.Warnings = append(result.Warnings, &ValidationError{
				Table:   t.Name,
				Column:  c.Name,
				Message: fmt.Sprintf("type %q has no Go mapping; generated as any", c.DatabaseType),
			})
		}
	}
	return result
}

// ValidateSchema validates all tables of a database. Table names are
// compared with Unicode case folding because configuration refers to
// tables case-insensitively.
func ValidateSchema(tables []*Table) *ValidationResult {
	result := &ValidationResult{}

	fold := cases.Fold()
	tableNames := make(map[string]bool)
	for _, t := range tables {
		key := fold.String(t.Name)
		if tableNames[key] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Message: "duplicate table name",
			})
		}
		tableNames[key] = true

		tableResult := ValidateTable(t)
		result.Errors = append(result.Errors, tableResult.Errors...)
		result.Warnings = append(result.Warnings, tableResult.Warnings...)
	}
	return result
}
