package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/syssam/ewl"
	"github.com/syssam/ewl/dialect"
	"github.com/syssam/ewl/dialect/sql"
)

// QueryColumns returns the result columns of a configured query without
// fetching any row. Parameters in the clause are bound to NULL.
func (i *Inspector) QueryColumns(ctx context.Context, selectFrom string) ([]*QueryColumn, error) {
	return queryColumns(ctx, i.drv, selectFrom)
}

func queryColumns(ctx context.Context, ex sql.Executor, selectFrom string) (cols []*QueryColumn, rerr error) {
	text, names := sql.Rebind(ex.Dialect(), selectFrom)
	q := "SELECT * FROM (" + text + ") ewl_query WHERE 1 = 0"
	rows, err := ex.QueryContext(ctx, q, make([]any, len(names))...)
	if err != nil {
		return nil, &ewl.QueryError{Query: q, Err: err}
	}
	defer func() { rerr = errors.Join(rerr, rows.Close()) }()
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("schema: column types of %q: %w", selectFrom, err)
	}
	cols = make([]*QueryColumn, 0, len(types))
	for _, ct := range types {
		c := &QueryColumn{Name: ct.Name(), Type: typeFromName(ct.DatabaseTypeName())}
		if c.Type == TypeAny {
			c.Type = typeFromScanType(ct.ScanType())
		}
		nullable, ok := ct.Nullable()
		c.Nullable = nullable || !ok
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// RowConstants returns the rows of a row-constant table in the configured
// order. Names are returned as strings, values as scanned by the driver
// with byte slices converted to strings.
func (i *Inspector) RowConstants(ctx context.Context, rq *RowConstantQuery) ([]*RowConstant, error) {
	return rowConstants(ctx, i.drv, rq)
}

func rowConstants(ctx context.Context, ex sql.Executor, rq *RowConstantQuery) ([]*RowConstant, error) {
	d := ex.Dialect()
	order := rq.OrderByColumn
	if order == "" {
		order = rq.NameColumn
	}
	q := fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY %s",
		dialect.Quote(d, rq.NameColumn), dialect.Quote(d, rq.ValueColumn), dialect.Quote(d, rq.Table), dialect.Quote(d, order))
	if rq.Descending {
		q += " DESC"
	}
	var consts []*RowConstant
	err := sql.Query(ctx, ex, q, nil, func(s sql.ColumnScanner) error {
		var name, value any
		if err := s.Scan(&name, &value); err != nil {
			return err
		}
		if name == nil {
			return fmt.Errorf("schema: row constant table %s has a NULL name", rq.Table)
		}
		consts = append(consts, &RowConstant{Name: fmt.Sprint(normalize(name)), Value: normalize(value)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return consts, nil
}

func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
