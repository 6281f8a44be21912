package sql

import (
	"strings"

	"github.com/syssam/ewl/dialect"
)

// Op is a comparison operator of a Predicate.
type Op int

// Predicate operators.
const (
	OpEQ Op = iota
	OpIn
	OpIsNull
)

// Predicate is a single inline condition on one column. Generated condition
// types wrap a Predicate so that conditions of different tables cannot be
// mixed.
type Predicate struct {
	column string
	op     Op
	args   []any
}

// EQ returns a predicate that checks if the column equals the given value.
func EQ(column string, v any) *Predicate {
	return &Predicate{column: column, op: OpEQ, args: []any{v}}
}

// In returns a predicate that checks if the column value is in the given list.
// An empty list matches no rows.
func In(column string, vs ...any) *Predicate {
	return &Predicate{column: column, op: OpIn, args: vs}
}

// InValues is the typed form of In used by generated code.
func InValues[T any](column string, vs ...T) *Predicate {
	args := make([]any, len(vs))
	for i := range vs {
		args[i] = vs[i]
	}
	return In(column, args...)
}

// IsNull returns a predicate that checks if the column is NULL.
func IsNull(column string) *Predicate {
	return &Predicate{column: column, op: OpIsNull}
}

// Column returns the column the predicate applies to.
func (p *Predicate) Column() string { return p.column }

// Op returns the predicate operator.
func (p *Predicate) Op() Op { return p.op }

// Args returns the bound values of the predicate.
func (p *Predicate) Args() []any { return p.args }

// builder accumulates a statement and its arguments for one dialect.
type builder struct {
	dialect string
	sb      strings.Builder
	args    []any
}

func (b *builder) WriteString(s string) *builder {
	b.sb.WriteString(s)
	return b
}

func (b *builder) Ident(name string) *builder {
	b.sb.WriteString(dialect.Quote(b.dialect, name))
	return b
}

func (b *builder) Arg(v any) *builder {
	b.args = append(b.args, v)
	b.sb.WriteString(dialect.Placeholder(b.dialect, len(b.args)))
	return b
}

func (b *builder) String() string { return b.sb.String() }

// where writes the conjunction of ps, if any.
func (b *builder) where(ps []*Predicate) {
	if len(ps) == 0 {
		return
	}
	b.WriteString(" WHERE ")
	for i, p := range ps {
		if i > 0 {
			b.WriteString(" AND ")
		}
		switch p.op {
		case OpEQ:
			b.Ident(p.column).WriteString(" = ").Arg(p.args[0])
		case OpIsNull:
			b.Ident(p.column).WriteString(" IS NULL")
		case OpIn:
			if len(p.args) == 0 {
				b.WriteString("1 = 0")
				continue
			}
			b.Ident(p.column).WriteString(" IN (")
			for j, a := range p.args {
				if j > 0 {
					b.WriteString(", ")
				}
				b.Arg(a)
			}
			b.WriteString(")")
		}
	}
}
