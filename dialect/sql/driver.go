package sql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/syssam/ewl"
	"github.com/syssam/ewl/dialect"
)

// ExecQuerier wraps the standard Exec and Query methods.
type ExecQuerier = dialect.ExecQuerier

// Executor is the handle generated data-access code runs against. It is
// implemented by *Driver and *Tx.
type Executor interface {
	ExecQuerier
	Dialect() string
}

// Driver wraps a *sql.DB with the name of its dialect.
type Driver struct {
	Conn
	db *sql.DB
}

// Open wraps the database/sql.Open method and returns a Driver whose
// dialect is derived from the driver name.
func Open(driverName, source string) (*Driver, error) {
	name, err := dialect.Normalize(driverName)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, source)
	if err != nil {
		return nil, err
	}
	return OpenDB(name, db), nil
}

// OpenDB wraps the given database/sql.DB method with a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return &Driver{Conn: Conn{db, dialect}, db: db}
}

// WithStats returns a Driver over the same database whose statements are
// counted in the returned QueryStats. Transactions started from it are not
// counted.
func (d *Driver) WithStats(opts ...StatsOption) (*Driver, *QueryStats) {
	sc := &statsConn{ExecQuerier: d.ExecQuerier, stats: &QueryStats{}, threshold: DefaultSlowThreshold}
	for _, opt := range opts {
		opt(sc)
	}
	return &Driver{Conn: Conn{sc, d.dialect}, db: d.db}, sc.stats
}

// DB returns the underlying *sql.DB instance.
func (d *Driver) DB() *sql.DB {
	return d.db
}

// BeginTx starts a transaction with options.
func (d *Driver) BeginTx(ctx context.Context, opts *TxOptions) (*Tx, error) {
	tx, err := d.DB().BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{
		Conn: Conn{tx, d.dialect},
		Tx:   tx,
	}, nil
}

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.DB().Close() }

// Tx is a transaction scoped Executor.
type Tx struct {
	Conn
	driver.Tx
}

// Conn pairs an ExecQuerier with its dialect.
type Conn struct {
	ExecQuerier
	dialect string
}

// Dialect returns the dialect name of the connection.
func (c Conn) Dialect() string {
	return c.dialect
}

// query runs a query and hands every row to scan. Rows are always closed.
func query(ctx context.Context, ex Executor, q string, args []any, scan func(ColumnScanner) error) (rerr error) {
	rows, err := ex.QueryContext(ctx, q, args...)
	if err != nil {
		return &ewl.QueryError{Query: q, Err: err}
	}
	defer func() { rerr = errors.Join(rerr, rows.Close()) }()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return &ewl.QueryError{Query: q, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return &ewl.QueryError{Query: q, Err: err}
	}
	return nil
}

var (
	_ Executor = (*Driver)(nil)
	_ Executor = (*Tx)(nil)
)

type (
	// Result is an alias to sql.Result.
	Result = sql.Result
	// NullBool is an alias to sql.NullBool.
	NullBool = sql.NullBool
	// NullInt64 is an alias to sql.NullInt64.
	NullInt64 = sql.NullInt64
	// NullString is an alias to sql.NullString.
	NullString = sql.NullString
	// NullFloat64 is an alias to sql.NullFloat64.
	NullFloat64 = sql.NullFloat64
	// NullTime represents a time.Time that may be null.
	NullTime = sql.NullTime
	// TxOptions holds the transaction options to be used in DB.BeginTx.
	TxOptions = sql.TxOptions
)

// ColumnScanner is the interface that wraps the standard
// sql.Rows methods used for scanning database rows.
type ColumnScanner interface {
	Close() error
	ColumnTypes() ([]*sql.ColumnType, error)
	Columns() ([]string, error)
	Err() error
	Next() bool
	NextResultSet() bool
	Scan(dest ...any) error
}
