package gen

import (
	"context"
	"log/slog"

	"github.com/syssam/ewl/compiler/load"
	"github.com/syssam/ewl/dialect/sql/schema"
)

// Introspector reads the schema of one live database.
// *schema.Inspector is the production implementation.
type Introspector interface {
	// Dialect returns the dialect of the connection.
	Dialect() string
	// Tables returns every table of the attached schema ordered by name.
	Tables(ctx context.Context) ([]*Table, error)
	// QueryColumns returns the result columns of a SELECT ... FROM clause.
	QueryColumns(ctx context.Context, selectFrom string) ([]*QueryColumn, error)
	// RowConstants returns the rows of a row-constant table in order.
	RowConstants(ctx context.Context, rq *RowConstantQuery) ([]*RowConstant, error)
	// Sequences returns the sequences of the schema, if the dialect has any.
	Sequences(ctx context.Context) ([]*Sequence, error)
	// Procedures returns the stored procedures of the schema, if the
	// dialect has any.
	Procedures(ctx context.Context) ([]*Procedure, error)
	// Close releases the connection.
	Close() error
}

// ScriptRunner is implemented by introspectors that can apply a SQL
// script to their database.
type ScriptRunner interface {
	ApplyScript(ctx context.Context, script string) error
}

// Opener connects to a configured database.
type Opener func(ctx context.Context, db *load.Database) (Introspector, error)

// DefaultOpener opens databases through database/sql with the driver named
// after the dialect. The drivers themselves are registered by the binary.
func DefaultOpener(logger *slog.Logger) Opener {
	return func(ctx context.Context, db *load.Database) (Introspector, error) {
		ix, err := schema.Open(ctx, db.DriverName(), db.DSN, schema.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return ix, nil
	}
}

var (
	_ Introspector = (*schema.Inspector)(nil)
	_ ScriptRunner = (*schema.Inspector)(nil)
)
