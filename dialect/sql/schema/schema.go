// Package schema introspects live databases for the ewl code generator.
//
// The Inspector reads tables, columns and keys through the atlas
// inspectors of each dialect and answers the additional questions the
// generator asks: the result columns of a configured query, the rows of a
// row-constant table, and the sequences and stored procedures of a
// Postgres database.
package schema

import "strings"

// GoType identifies the Go type a database column maps to.
// PkgPath is empty for predeclared types.
type GoType struct {
	PkgPath string
	Name    string
}

// Common Go types.
var (
	TypeInt64   = GoType{Name: "int64"}
	TypeFloat64 = GoType{Name: "float64"}
	TypeBool    = GoType{Name: "bool"}
	TypeString  = GoType{Name: "string"}
	TypeBytes   = GoType{Name: "[]byte"}
	TypeAny     = GoType{Name: "any"}
	TypeTime    = GoType{PkgPath: "time", Name: "Time"}
	TypeJSON    = GoType{PkgPath: "encoding/json", Name: "RawMessage"}
)

// String returns the qualified type name, e.g. "time.Time".
func (t GoType) String() string {
	if t.PkgPath == "" {
		return t.Name
	}
	return t.PkgPath[strings.LastIndex(t.PkgPath, "/")+1:] + "." + t.Name
}

// Constant reports whether values of the type can be Go constants.
func (t GoType) Constant() bool {
	switch t {
	case TypeInt64, TypeFloat64, TypeBool, TypeString:
		return true
	}
	return false
}

// Table is an introspected table.
type Table struct {
	Name    string
	Columns []*Column
}

// Column is an introspected column.
type Column struct {
	Name         string
	DatabaseType string // declared type as reported by the database
	Type         GoType
	Nullable     bool
	PrimaryKey   bool
	Identity     bool // auto-increment, serial or identity column
}

// PrimaryKey returns the key columns in column order.
func (t *Table) PrimaryKey() []*Column {
	var pk []*Column
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pk = append(pk, c)
		}
	}
	return pk
}

// HasPrimaryKey reports whether the table declares a primary key.
func (t *Table) HasPrimaryKey() bool {
	for _, c := range t.Columns {
		if c.PrimaryKey {
			return true
		}
	}
	return false
}

// Identity returns the identity column of the table, or nil.
func (t *Table) Identity() *Column {
	for _, c := range t.Columns {
		if c.Identity {
			return c
		}
	}
	return nil
}

// Column returns the column with the given name, matched
// case-insensitively, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// QueryColumn is a result column of a configured query.
type QueryColumn struct {
	Name     string
	Type     GoType
	Nullable bool
}

// RowConstantQuery selects the rows of a row-constant table.
type RowConstantQuery struct {
	Table         string
	NameColumn    string
	ValueColumn   string
	OrderByColumn string // defaults to NameColumn
	Descending    bool
}

// RowConstant is one row of a row-constant table.
type RowConstant struct {
	Name  string
	Value any
}

// Sequence is a database sequence.
type Sequence struct {
	Name string
}

// Procedure is a stored procedure with its parameters in declaration order.
type Procedure struct {
	Name   string
	Params []*ProcedureParam
}

// ProcedureParam is a stored procedure parameter.
type ProcedureParam struct {
	Name         string
	DatabaseType string
	Type         GoType
	Mode         string // IN, OUT or INOUT
}
