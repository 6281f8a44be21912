package schema

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ewl/dialect"
	"github.com/syssam/ewl/dialect/sql"
)

func escape(query string) string {
	return regexp.QuoteMeta(query)
}

func TestSequences(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery(escape(sequencesQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"sequence_name"}).AddRow("invoice_numbers").AddRow("order_numbers"))

	seqs, err := sequences(context.Background(), sql.OpenDB(dialect.Postgres, db))
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	assert.Equal(t, "invoice_numbers", seqs[0].Name)
	assert.Equal(t, "order_numbers", seqs[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProcedures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery(escape(proceduresQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"specific_name", "routine_name"}).
			AddRow("archive_orders_16401", "archive_orders").
			AddRow("purge_16402", "purge"))
	mock.ExpectQuery(escape(parametersQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"specific_name", "parameter_name", "data_type", "parameter_mode"}).
			AddRow("archive_orders_16401", "before", "timestamp without time zone", "IN").
			AddRow("archive_orders_16401", "archived", "integer", "INOUT").
			AddRow("order_total_16500", "order_id", "integer", "IN"))

	procs, err := procedures(context.Background(), sql.OpenDB(dialect.Postgres, db))
	require.NoError(t, err)
	require.Len(t, procs, 2)

	archive := procs[0]
	assert.Equal(t, "archive_orders", archive.Name)
	require.Len(t, archive.Params, 2)
	assert.Equal(t, "before", archive.Params[0].Name)
	assert.Equal(t, TypeTime, archive.Params[0].Type)
	assert.Equal(t, "INOUT", archive.Params[1].Mode)
	assert.Equal(t, TypeInt64, archive.Params[1].Type)
	assert.Empty(t, procs[1].Params)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProceduresNone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery(escape(proceduresQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"specific_name", "routine_name"}))

	procs, err := procedures(context.Background(), sql.OpenDB(dialect.Postgres, db))
	require.NoError(t, err)
	assert.Empty(t, procs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryColumnsPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery(escape(`SELECT * FROM (SELECT id, name FROM customers WHERE region = $1) ewl_query WHERE 1 = 0`)).
		WithArgs(nil).
		WillReturnRows(sqlmock.NewRowsWithColumnDefinition(
			sqlmock.NewColumn("id").OfType("INT4", int64(0)).Nullable(false),
			sqlmock.NewColumn("name").OfType("VARCHAR", "").Nullable(true),
		))

	cols, err := queryColumns(context.Background(), sql.OpenDB(dialect.Postgres, db), "SELECT id, name FROM customers WHERE region = @region")
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, &QueryColumn{Name: "id", Type: TypeInt64, Nullable: false}, cols[0])
	assert.Equal(t, &QueryColumn{Name: "name", Type: TypeString, Nullable: true}, cols[1])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRowConstantsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery(escape("SELECT `Label`, `Code` FROM `Priorities` ORDER BY `Label` DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"Label", "Code"}).AddRow([]byte("Urgent"), []byte("U")))

	consts, err := rowConstants(context.Background(), sql.OpenDB(dialect.MySQL, db), &RowConstantQuery{
		Table:       "Priorities",
		NameColumn:  "Label",
		ValueColumn: "Code",
		Descending:  true,
	})
	require.NoError(t, err)
	require.Len(t, consts, 1)
	assert.Equal(t, &RowConstant{Name: "Urgent", Value: "U"}, consts[0])
	require.NoError(t, mock.ExpectationsWereMet())
}
