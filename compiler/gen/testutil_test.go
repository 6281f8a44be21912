package gen

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ewl/compiler/load"
	"github.com/syssam/ewl/dialect/sql/schema"
)

// traceBuilder emits one comment per fragment so tests can check which
// fragments were requested and in which order.
type traceBuilder struct{}

func trace(format string, args ...any) []jen.Code {
	return []jen.Code{jen.Commentf(format, args...)}
}

func (traceBuilder) Name() string { return "trace" }

func (traceBuilder) TableConstants(src *DatabaseSource) []jen.Code {
	return trace("table constants %s", src.Description())
}

func (traceBuilder) RowConstants(src *DatabaseSource) []jen.Code {
	return trace("row constants %s", src.Description())
}

func (traceBuilder) Conditions(src *DatabaseSource, t *Table) []jen.Code {
	return trace("conditions %s%s", src.Prefix(), t.Name)
}

func (traceBuilder) Retrieval(src *DatabaseSource, t *Table) []jen.Code {
	return trace("retrieval %s%s", src.Prefix(), t.Name)
}

func (traceBuilder) Modification(src *DatabaseSource, t *Table) []jen.Code {
	return trace("modification %s%s", src.Prefix(), t.Name)
}

func (traceBuilder) QueryRetrieval(src *DatabaseSource) []jen.Code {
	return trace("queries %s", src.Description())
}

func (traceBuilder) CustomModifications(src *DatabaseSource) []jen.Code {
	return trace("custom modifications %s", src.Description())
}

// extrasBuilder adds sequences, procedures and stubs.
type extrasBuilder struct{ traceBuilder }

func (extrasBuilder) Sequences(src *DatabaseSource) []jen.Code {
	return trace("sequences %s", src.Description())
}

func (extrasBuilder) Procedures(src *DatabaseSource) []jen.Code {
	return trace("procedures %s", src.Description())
}

func (extrasBuilder) Stubs(src *DatabaseSource, t *Table) []*Stub {
	return []*Stub{{
		Name: Camel(src.Prefix()+t.Name) + "_stub.go",
		Code: trace("stub %s%s", src.Prefix(), t.Name),
	}}
}

// fakeIntrospector serves a fixed schema.
type fakeIntrospector struct {
	dialect    string
	tables     []*Table
	rows       map[string][]*RowConstant
	columns    map[string][]*QueryColumn
	sequences  []*Sequence
	procedures []*Procedure
	err        error
	closed     bool
	// apply, when set, runs for every applied script.
	apply   func(f *fakeIntrospector, script string) error
	scripts []string
}

func (f *fakeIntrospector) ApplyScript(_ context.Context, script string) error {
	f.scripts = append(f.scripts, script)
	if f.apply == nil {
		return nil
	}
	return f.apply(f, script)
}

func (f *fakeIntrospector) Dialect() string { return f.dialect }

func (f *fakeIntrospector) Tables(context.Context) ([]*Table, error) {
	return f.tables, f.err
}

func (f *fakeIntrospector) QueryColumns(_ context.Context, selectFrom string) ([]*QueryColumn, error) {
	return f.columns[selectFrom], nil
}

func (f *fakeIntrospector) RowConstants(_ context.Context, rq *RowConstantQuery) ([]*RowConstant, error) {
	return f.rows[rq.Table], nil
}

func (f *fakeIntrospector) Sequences(context.Context) ([]*Sequence, error) {
	return f.sequences, nil
}

func (f *fakeIntrospector) Procedures(context.Context) ([]*Procedure, error) {
	return f.procedures, nil
}

func (f *fakeIntrospector) Close() error {
	f.closed = true
	return nil
}

func ordersTable() *Table {
	return &Table{
		Name: "Orders",
		Columns: []*Column{
			{Name: "OrderID", Type: schema.TypeInt64, PrimaryKey: true, Identity: true},
			{Name: "Total", Type: schema.TypeFloat64},
		},
	}
}

func auditLogTable() *Table {
	return &Table{
		Name:    "AuditLog",
		Columns: []*Column{{Name: "Message", Type: schema.TypeString}},
	}
}

func statusesTable() *Table {
	return &Table{
		Name: "OrderStatuses",
		Columns: []*Column{
			{Name: "StatusID", Type: schema.TypeInt64, PrimaryKey: true},
			{Name: "Name", Type: schema.TypeString},
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parseInstallation parses a YAML installation rooted at a new temporary
// directory.
func parseInstallation(t *testing.T, yaml string) *load.Installation {
	t.Helper()
	inst, err := load.Parse([]byte(yaml), t.TempDir())
	require.NoError(t, err)
	return inst
}

// newTestGenerator returns a generator whose databases are served by the
// introspectors keyed by database description.
func newTestGenerator(t *testing.T, inst *load.Installation, schemas map[string]*fakeIntrospector, opts ...Option) *Generator {
	t.Helper()
	opts = append([]Option{
		WithInstallation(inst),
		WithBuilder(extrasBuilder{}),
		WithLogger(discardLogger()),
		WithOpener(func(_ context.Context, db *load.Database) (Introspector, error) {
			ix, ok := schemas[db.Description()]
			require.True(t, ok, "unexpected database %s", db.Description())
			return ix, nil
		}),
	}, opts...)
	g, err := NewGenerator(opts...)
	require.NoError(t, err)
	return g
}
