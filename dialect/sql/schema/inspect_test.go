package schema

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/ewl/dialect"
)

const fixture = `
CREATE TABLE Orders (OrderID INTEGER PRIMARY KEY, Status TEXT NOT NULL, Notes TEXT, Total REAL NOT NULL);
CREATE TABLE OrderStatuses (StatusID INTEGER NOT NULL PRIMARY KEY, Name TEXT NOT NULL, SortOrder INTEGER NOT NULL);
CREATE TABLE Lines (OrderID INTEGER NOT NULL, LineNo INTEGER NOT NULL, Qty INTEGER NOT NULL, PRIMARY KEY (OrderID, LineNo));
CREATE TABLE Audit (Message TEXT);
INSERT INTO OrderStatuses (StatusID, Name, SortOrder) VALUES (1, 'Open', 2), (2, 'Shipped', 1);
`

func openFixture(t *testing.T) *Inspector {
	t.Helper()
	ctx := context.Background()
	in, err := Open(ctx, "sqlite", filepath.Join(t.TempDir(), "fixture.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = in.Close() })
	_, err = in.drv.ExecContext(ctx, fixture)
	require.NoError(t, err)
	return in
}

func TestInspectorTables(t *testing.T) {
	in := openFixture(t)
	assert.Equal(t, dialect.SQLite, in.Dialect())

	tables, err := in.Tables(context.Background())
	require.NoError(t, err)
	names := make([]string, len(tables))
	for i, tb := range tables {
		names[i] = tb.Name
	}
	assert.Equal(t, []string{"Audit", "Lines", "OrderStatuses", "Orders"}, names)

	t.Run("SingleIntegerKeyIsIdentity", func(t *testing.T) {
		orders := tables[3]
		require.Len(t, orders.Columns, 4)
		id := orders.Column("orderid")
		require.NotNil(t, id)
		assert.True(t, id.PrimaryKey)
		assert.True(t, id.Identity)
		assert.Equal(t, TypeInt64, id.Type)
		assert.Same(t, id, orders.Identity())

		status := orders.Column("Status")
		assert.False(t, status.Nullable)
		assert.Equal(t, TypeString, status.Type)
		assert.True(t, orders.Column("Notes").Nullable)
		assert.Equal(t, TypeFloat64, orders.Column("Total").Type)
	})

	t.Run("CompositeKey", func(t *testing.T) {
		lines := tables[1]
		pk := lines.PrimaryKey()
		require.Len(t, pk, 2)
		assert.Equal(t, "OrderID", pk[0].Name)
		assert.Equal(t, "LineNo", pk[1].Name)
		assert.Nil(t, lines.Identity())
	})

	t.Run("NoKey", func(t *testing.T) {
		assert.False(t, tables[0].HasPrimaryKey())
		assert.Empty(t, tables[0].PrimaryKey())
	})
}

func TestInspectorQueryColumns(t *testing.T) {
	in := openFixture(t)
	cols, err := in.QueryColumns(context.Background(), "SELECT o.OrderID, o.Status FROM Orders o WHERE o.Status = @status")
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "OrderID", cols[0].Name)
	assert.Equal(t, "Status", cols[1].Name)

	_, err = in.QueryColumns(context.Background(), "SELECT * FROM Missing")
	require.Error(t, err)
}

func TestInspectorRowConstants(t *testing.T) {
	in := openFixture(t)
	consts, err := in.RowConstants(context.Background(), &RowConstantQuery{
		Table:         "OrderStatuses",
		NameColumn:    "Name",
		ValueColumn:   "StatusID",
		OrderByColumn: "SortOrder",
	})
	require.NoError(t, err)
	require.Len(t, consts, 2)
	assert.Equal(t, "Shipped", consts[0].Name)
	assert.EqualValues(t, 2, consts[0].Value)
	assert.Equal(t, "Open", consts[1].Name)

	consts, err = in.RowConstants(context.Background(), &RowConstantQuery{
		Table:       "OrderStatuses",
		NameColumn:  "Name",
		ValueColumn: "StatusID",
		Descending:  true,
	})
	require.NoError(t, err)
	require.Len(t, consts, 2)
	assert.Equal(t, "Shipped", consts[0].Name)
	assert.Equal(t, "Open", consts[1].Name)
}

func TestInspectorPostgresOnly(t *testing.T) {
	in := openFixture(t)
	seqs, err := in.Sequences(context.Background())
	require.NoError(t, err)
	assert.Nil(t, seqs)
	procs, err := in.Procedures(context.Background())
	require.NoError(t, err)
	assert.Nil(t, procs)
}

func TestOpenUnsupported(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "")
	require.Error(t, err)
}
