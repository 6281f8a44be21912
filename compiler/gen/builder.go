package gen

import "github.com/dave/jennifer/jen"

// =============================================================================
// Per-table code builders, split by emission step
// =============================================================================

// ConstantBuilder emits the declarations every database gets regardless of
// its key policy.
type ConstantBuilder interface {
	// TableConstants declares the table and column name constants.
	TableConstants(src *DatabaseSource) []jen.Code
	// RowConstants declares one constant per row of every row-constant
	// table, plus its fill list.
	RowConstants(src *DatabaseSource) []jen.Code
}

// StandardBuilder emits the key-based code of one table. It is only called
// for tables selected by the key policy of the database.
type StandardBuilder interface {
	// Conditions declares the command condition helpers of a table.
	Conditions(src *DatabaseSource, t *Table) []jen.Code
	// Retrieval declares the row type and retrieval functions of a table.
	Retrieval(src *DatabaseSource, t *Table) []jen.Code
	// Modification declares the insert, update and delete commands of a
	// table. Revision history tables carry versioning fields.
	Modification(src *DatabaseSource, t *Table) []jen.Code
}

// CustomBuilder emits the configured queries and modifications.
type CustomBuilder interface {
	// QueryRetrieval declares the row type and retrieval functions of every
	// configured query.
	QueryRetrieval(src *DatabaseSource) []jen.Code
	// CustomModifications declares one function per configured
	// modification.
	CustomModifications(src *DatabaseSource) []jen.Code
}

// ExtrasBuilder emits wrappers for database objects beyond tables.
// Builders may implement it; it is only called for dialects whose storage
// supports the objects.
type ExtrasBuilder interface {
	// Sequences declares one wrapper per sequence.
	Sequences(src *DatabaseSource) []jen.Code
	// Procedures declares one wrapper per stored procedure.
	Procedures(src *DatabaseSource) []jen.Code
}

// StubBuilder emits the companion files reserved for hand-written members
// of a standard table. Builders may implement it.
type StubBuilder interface {
	Stubs(src *DatabaseSource, t *Table) []*Stub
}

// Declarer lists the package-level identifiers a builder declares for a
// database. Builders may implement it; the generator then rejects a bundle
// whose databases would declare the same identifier twice before anything
// is written.
type Declarer interface {
	Declarations(src *DatabaseSource) []Declaration
}

// Declaration is a package-level identifier of a bundle and the schema or
// configuration object it is derived from.
type Declaration struct {
	Name   string // e.g. "OrdersOrderIDColumn"
	Origin string // e.g. `column "OrderID" of table "Orders"`
}

// Stub is a companion file created next to the library bundle only when
// it does not exist yet.
type Stub struct {
	// Name is the file name, e.g. "orders_modification.go".
	Name string
	// Code is the body of the file.
	Code []jen.Code
}

// DataAccessBuilder is the minimum a builder implements.
//
//	┌─────────────────────────────────────────────────┐
//	│               DataAccessGenerator               │
//	│   (order of databases, tables and fragments)    │
//	└────────────────────────┬────────────────────────┘
//	                         │ calls
//	                         ▼
//	┌─────────────────────────────────────────────────┐
//	│   DataAccessBuilder (+ ExtrasBuilder, Stubs)    │
//	│      (pure: table + configuration -> code)      │
//	└─────────────────────────────────────────────────┘
//
// Optional capabilities are detected with type assertions.
type DataAccessBuilder interface {
	// Name returns the builder name used in log messages.
	Name() string
	ConstantBuilder
	StandardBuilder
	CustomBuilder
}
