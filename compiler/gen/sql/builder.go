package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/ewl/compiler/gen"
)

// Builder implements the data access builders for SQL databases.
type Builder struct{}

// NewBuilder creates a new SQL builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Name returns the builder name.
func (*Builder) Name() string {
	return "sql"
}

// TableConstants declares the table and column name constants of every
// table, whatever its key policy.
func (*Builder) TableConstants(src *gen.DatabaseSource) []jen.Code {
	return genTableConstants(src)
}

// RowConstants declares the row constants and fill list of every
// row-constant table.
func (*Builder) RowConstants(src *gen.DatabaseSource) []jen.Code {
	return genRowConstants(src)
}

// Conditions declares the condition type and constructors of a table.
func (*Builder) Conditions(src *gen.DatabaseSource, t *gen.Table) []jen.Code {
	return genConditions(src, t)
}

// Retrieval declares the row type and retrieval functions of a table.
func (*Builder) Retrieval(src *gen.DatabaseSource, t *gen.Table) []jen.Code {
	return genRetrieval(src, t)
}

// Modification declares the modification type of a table.
func (*Builder) Modification(src *gen.DatabaseSource, t *gen.Table) []jen.Code {
	return genModification(src, t)
}

// QueryRetrieval declares the row types and retrieval functions of the
// configured queries.
func (*Builder) QueryRetrieval(src *gen.DatabaseSource) []jen.Code {
	return genQueries(src)
}

// CustomModifications declares the configured modifications.
func (*Builder) CustomModifications(src *gen.DatabaseSource) []jen.Code {
	return genCustomModifications(src)
}

// Sequences declares the sequence wrappers.
func (*Builder) Sequences(src *gen.DatabaseSource) []jen.Code {
	return genSequences(src)
}

// Procedures declares the stored procedure wrappers.
func (*Builder) Procedures(src *gen.DatabaseSource) []jen.Code {
	return genProcedures(src)
}

// Stubs returns the retrieval and modification stub files of a table.
func (*Builder) Stubs(src *gen.DatabaseSource, t *gen.Table) []*gen.Stub {
	return genStubs(src, t)
}

// Verify Builder implements the builder interfaces at compile time.
var (
	_ gen.DataAccessBuilder = (*Builder)(nil)
	_ gen.ExtrasBuilder     = (*Builder)(nil)
	_ gen.StubBuilder       = (*Builder)(nil)
	_ gen.Declarer          = (*Builder)(nil)
)
