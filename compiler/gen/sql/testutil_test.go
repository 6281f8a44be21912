package sql

import (
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ewl/compiler/gen"
	"github.com/syssam/ewl/compiler/load"
	"github.com/syssam/ewl/dialect/sql/schema"
)

// newSource returns an empty source for a database of the given dialect.
func newSource(t *testing.T, db *load.Database) *gen.DatabaseSource {
	t.Helper()
	if db.Dialect == "" {
		db.Dialect = "postgres"
	}
	src, err := gen.NewDatabaseSource(db)
	require.NoError(t, err)
	return src
}

func ordersTable() *gen.Table {
	return &gen.Table{
		Name: "Orders",
		Columns: []*gen.Column{
			{Name: "OrderID", Type: schema.TypeInt64, PrimaryKey: true, Identity: true},
			{Name: "CustomerName", Type: schema.TypeString},
			{Name: "Notes", Type: schema.TypeString, Nullable: true},
			{Name: "Placed", Type: schema.TypeTime},
		},
	}
}

func orderLinesTable() *gen.Table {
	return &gen.Table{
		Name: "OrderLines",
		Columns: []*gen.Column{
			{Name: "OrderID", Type: schema.TypeInt64, PrimaryKey: true},
			{Name: "LineNumber", Type: schema.TypeInt64, PrimaryKey: true},
			{Name: "Payload", Type: schema.TypeBytes, Nullable: true},
		},
	}
}

// render formats the declarations as a file and collapses whitespace so
// assertions do not depend on gofmt alignment.
func render(t *testing.T, codes []jen.Code) string {
	t.Helper()
	f := jen.NewFilePathName("example.com/app/Library/generated", "generated")
	for _, c := range codes {
		f.Add(c)
		f.Line()
	}
	return squash(f.GoString())
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
