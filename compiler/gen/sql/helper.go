package sql

import (
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/ewl/compiler/gen"
	"github.com/syssam/ewl/dialect/sql/schema"
)

// Runtime packages imported by generated code.
const (
	ewlPkg = "github.com/syssam/ewl"
	sqlPkg = "github.com/syssam/ewl/dialect/sql"
)

// typeName returns the identifier of a table or query in its database.
func typeName(src *gen.DatabaseSource, name string) string {
	return src.Prefix() + gen.Pascal(name)
}

// tableConst returns the table name constant of a table.
func tableConst(src *gen.DatabaseSource, t *gen.Table) string {
	return typeName(src, t.Name) + "Table"
}

// columnConst returns the column name constant of a column.
func columnConst(src *gen.DatabaseSource, t *gen.Table, c *gen.Column) string {
	return typeName(src, t.Name) + gen.Pascal(c.Name) + "Column"
}

// columnsVar returns the column list variable of a table.
func columnsVar(src *gen.DatabaseSource, t *gen.Table) string {
	return typeName(src, t.Name) + "Columns"
}

// columnFunc returns a condition constructor of a column, e.g.
// "OrdersOrderIDEquals".
func columnFunc(src *gen.DatabaseSource, t *gen.Table, c *gen.Column, op string) string {
	return typeName(src, t.Name) + gen.Pascal(c.Name) + op
}

// rowConst returns the constant of a row of a row-constant table.
func rowConst(src *gen.DatabaseSource, t *gen.Table, r *gen.RowConstant) string {
	return typeName(src, t.Name) + gen.Pascal(r.Name)
}

// fillListVar returns the fill list variable of a row-constant table.
func fillListVar(src *gen.DatabaseSource, t *gen.Table) string {
	return typeName(src, t.Name) + "FillList"
}

// rowsFunc returns the retrieval function of a table, or of a query when
// suffixed with the name of a post-select-from clause.
func rowsFunc(src *gen.DatabaseSource, name, post string) string {
	return "Get" + typeName(src, name) + "Rows" + gen.Pascal(post)
}

// pkFunc returns the retrieval by primary key of a table.
func pkFunc(src *gen.DatabaseSource, t *gen.Table) string {
	return "Get" + typeName(src, t.Name) + "RowMatchingPk"
}

// constructorFunc returns the constructor of a modification, e.g.
// "NewOrdersInsert".
func constructorFunc(src *gen.DatabaseSource, t *gen.Table, action string) string {
	return "New" + typeName(src, t.Name) + action
}

// sequenceFunc returns the wrapper of a sequence.
func sequenceFunc(src *gen.DatabaseSource, s *gen.Sequence) string {
	return "GetNext" + typeName(src, s.Name) + "Value"
}

// procedureFunc returns the wrapper of a stored procedure.
func procedureFunc(src *gen.DatabaseSource, p *gen.Procedure) string {
	return "Execute" + typeName(src, p.Name)
}

// conditionType returns the condition type of a table.
func conditionType(src *gen.DatabaseSource, t *gen.Table) string {
	return typeName(src, t.Name) + "Condition"
}

// predicatesFunc returns the unexported helper converting conditions of a
// table to predicates.
func predicatesFunc(src *gen.DatabaseSource, t *gen.Table) string {
	return "predicatesOf" + typeName(src, t.Name)
}

// rowType returns the row type of a table or query.
func rowType(src *gen.DatabaseSource, name string) string {
	return typeName(src, name) + "Row"
}

// modificationType returns the modification type of a table.
func modificationType(src *gen.DatabaseSource, t *gen.Table) string {
	return typeName(src, t.Name) + "Modification"
}

// stubBase returns the base name of the stub files of a table.
func stubBase(src *gen.DatabaseSource, t *gen.Table) string {
	return strings.ToLower(typeName(src, t.Name))
}

// baseType returns the Go type of a value of the given type.
func baseType(t gen.GoType) jen.Code {
	switch {
	case t == schema.TypeBytes:
		return jen.Index().Byte()
	case t.PkgPath == "":
		return jen.Id(t.Name)
	default:
		return jen.Qual(t.PkgPath, t.Name)
	}
}

// nilable reports whether the zero value of the type already represents
// NULL.
func nilable(t gen.GoType) bool {
	return t == schema.TypeBytes || t == schema.TypeAny || t == schema.TypeJSON
}

// fieldType returns the Go type of a column or query result field:
// nullable values are pointers unless the type itself can be nil.
func fieldType(t gen.GoType, nullable bool) jen.Code {
	if nullable && !nilable(t) {
		return jen.Op("*").Add(baseType(t))
	}
	return baseType(t)
}

// ctxParam and dbParam are the leading parameters of every generated
// function touching the database.
func ctxParam() jen.Code { return jen.Id("ctx").Qual("context", "Context") }
func dbParam() jen.Code  { return jen.Id("db").Qual(sqlPkg, "Executor") }

// scanRows returns the scan callback appending one *row per result row.
func scanRows(row string, fields []string) jen.Code {
	return jen.Func().Params(jen.Id("s").Qual(sqlPkg, "ColumnScanner")).Error().Block(
		jen.Id("r").Op(":=").New(jen.Id(row)),
		jen.If(
			jen.Err().Op(":=").Id("s").Dot("Scan").CallFunc(func(g *jen.Group) {
				for _, f := range fields {
					g.Op("&").Id("r").Dot(f)
				}
			}),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Err())),
		jen.Id("rows").Op("=").Append(jen.Id("rows"), jen.Id("r")),
		jen.Return(jen.Nil()),
	)
}

// params returns unique parameter identifiers for named parameters,
// in first-appearance order.
func params(names []string) []string {
	var (
		ids  []string
		seen = make(map[string]bool)
	)
	for _, n := range names {
		id := gen.Camel(n)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// constLit renders a constant value without a type conversion, so that it
// can initialize a typed constant.
func constLit(v any) jen.Code {
	if n, ok := v.(int64); ok {
		return jen.Op(strconv.FormatInt(n, 10))
	}
	return jen.Lit(v)
}
