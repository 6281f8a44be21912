package sql

import (
	"context"
	"fmt"

	"github.com/syssam/ewl"
	"github.com/syssam/ewl/dialect"
)

// Value is one column assignment of an insert or update.
type Value struct {
	Column string
	Value  any
}

// Selection describes an inline SELECT over one table.
type Selection struct {
	Table   string
	Columns []string
	Where   []*Predicate
	OrderBy []string
}

// Query returns the SQL text and arguments of the selection.
func (s *Selection) Query(d string) (string, []any) {
	b := &builder{dialect: d}
	b.WriteString("SELECT ")
	for i, c := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Ident(c)
	}
	b.WriteString(" FROM ").Ident(s.Table)
	b.where(s.Where)
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		for i, c := range s.OrderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.Ident(c)
		}
	}
	return b.String(), b.args
}

// Select executes the selection and calls scan once per row.
func Select(ctx context.Context, ex Executor, s *Selection, scan func(ColumnScanner) error) error {
	q, args := s.Query(ex.Dialect())
	return query(ctx, ex, q, args, scan)
}

// Insert describes an INSERT of one row. When Returning names an identity
// column, Exec returns the value the database assigned to it.
type Insert struct {
	Table     string
	Values    []Value
	Returning string
}

// Query returns the SQL text and arguments of the insert.
func (i *Insert) Query(d string) (string, []any) {
	b := &builder{dialect: d}
	b.WriteString("INSERT INTO ").Ident(i.Table)
	if len(i.Values) == 0 {
		if d == dialect.MySQL {
			b.WriteString(" () VALUES ()")
		} else {
			b.WriteString(" DEFAULT VALUES")
		}
	} else {
		b.WriteString(" (")
		for j, v := range i.Values {
			if j > 0 {
				b.WriteString(", ")
			}
			b.Ident(v.Column)
		}
		b.WriteString(") VALUES (")
		for j, v := range i.Values {
			if j > 0 {
				b.WriteString(", ")
			}
			b.Arg(v.Value)
		}
		b.WriteString(")")
	}
	if i.Returning != "" && d == dialect.Postgres {
		b.WriteString(" RETURNING ").Ident(i.Returning)
	}
	return b.String(), b.args
}

// Exec executes the insert.
func (i *Insert) Exec(ctx context.Context, ex Executor) (int64, error) {
	d := ex.Dialect()
	q, args := i.Query(d)
	if i.Returning != "" && d == dialect.Postgres {
		var id int64
		err := query(ctx, ex, q, args, func(s ColumnScanner) error {
			return s.Scan(&id)
		})
		return id, err
	}
	res, err := ex.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, &ewl.QueryError{Query: q, Err: err}
	}
	if i.Returning == "" {
		return 0, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("dialect/sql: last insert id: %w", err)
	}
	return id, nil
}

// Update describes an UPDATE of the rows matching Where.
type Update struct {
	Table  string
	Values []Value
	Where  []*Predicate
}

// Query returns the SQL text and arguments of the update.
func (u *Update) Query(d string) (string, []any) {
	b := &builder{dialect: d}
	b.WriteString("UPDATE ").Ident(u.Table).WriteString(" SET ")
	for i, v := range u.Values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Ident(v.Column).WriteString(" = ").Arg(v.Value)
	}
	b.where(u.Where)
	return b.String(), b.args
}

// Exec executes the update and returns the number of affected rows.
func (u *Update) Exec(ctx context.Context, ex Executor) (int64, error) {
	if len(u.Values) == 0 {
		return 0, ewl.ErrNoModification
	}
	q, args := u.Query(ex.Dialect())
	return execAffected(ctx, ex, q, args)
}

// Delete describes a DELETE of the rows matching Where.
type Delete struct {
	Table string
	Where []*Predicate
}

// Query returns the SQL text and arguments of the delete.
func (dl *Delete) Query(d string) (string, []any) {
	b := &builder{dialect: d}
	b.WriteString("DELETE FROM ").Ident(dl.Table)
	b.where(dl.Where)
	return b.String(), b.args
}

// Exec executes the delete and returns the number of affected rows.
func (dl *Delete) Exec(ctx context.Context, ex Executor) (int64, error) {
	q, args := dl.Query(ex.Dialect())
	return execAffected(ctx, ex, q, args)
}

// Query runs a literal query produced by the generator for a configured
// custom query and calls scan once per row.
func Query(ctx context.Context, ex Executor, q string, args []any, scan func(ColumnScanner) error) error {
	return query(ctx, ex, q, args, scan)
}

// Exec runs a literal statement produced by the generator for a custom
// modification, a sequence or a stored procedure.
func Exec(ctx context.Context, ex Executor, q string, args ...any) (int64, error) {
	return execAffected(ctx, ex, q, args)
}

func execAffected(ctx context.Context, ex Executor, q string, args []any) (int64, error) {
	res, err := ex.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, &ewl.QueryError{Query: q, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("dialect/sql: rows affected: %w", err)
	}
	return n, nil
}
