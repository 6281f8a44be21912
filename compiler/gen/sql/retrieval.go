package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/ewl/compiler/gen"
)

// genRetrieval declares the row type of a table, the retrieval of the rows
// matching a list of conditions ordered by primary key, and the retrieval
// of one row by primary key.
func genRetrieval(src *gen.DatabaseSource, t *gen.Table) []jen.Code {
	row := rowType(src, t.Name)
	rows := rowsFunc(src, t.Name, "")
	fields := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		fields = append(fields, gen.Pascal(c.Name))
	}
	pk := t.PrimaryKey()

	code := []jen.Code{
		jen.Commentf("%s is a row of %s.", row, t.Name).Line().
			Type().Id(row).StructFunc(func(g *jen.Group) {
			for i, c := range t.Columns {
				g.Id(fields[i]).Add(fieldType(c.Type, c.Nullable))
			}
		}),
		jen.Commentf("%s returns the rows of %s matching all conditions, ordered by primary key.", rows, t.Name).Line().
			Func().Id(rows).Params(
			ctxParam(), dbParam(), jen.Id("conds").Op("...").Id(conditionType(src, t)),
		).Params(jen.Index().Op("*").Id(row), jen.Error()).Block(
			jen.Var().Id("rows").Index().Op("*").Id(row),
			jen.Err().Op(":=").Qual(sqlPkg, "Select").Call(
				jen.Id("ctx"), jen.Id("db"),
				jen.Op("&").Qual(sqlPkg, "Selection").Values(jen.Dict{
					jen.Id("Table"):   jen.Id(tableConst(src, t)),
					jen.Id("Columns"): jen.Id(columnsVar(src, t)),
					jen.Id("Where"):   jen.Id(predicatesFunc(src, t)).Call(jen.Id("conds")),
					jen.Id("OrderBy"): jen.Index().String().ValuesFunc(func(g *jen.Group) {
						for _, c := range pk {
							g.Id(columnConst(src, t, c))
						}
					}),
				}),
				scanRows(row, fields),
			),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err())),
			jen.Return(jen.Id("rows"), jen.Nil()),
		),
	}

	args := make([]jen.Code, 0, len(pk))
	conds := make([]jen.Code, 0, len(pk)+2)
	keys := make([]jen.Code, 0, len(pk)+1)
	keys = append(keys, jen.Id(tableConst(src, t)))
	conds = append(conds, jen.Id("ctx"), jen.Id("db"))
	for _, c := range pk {
		p := gen.Camel(c.Name)
		args = append(args, jen.Id(p).Add(baseType(c.Type)))
		conds = append(conds, jen.Id(columnFunc(src, t, c, "Equals")).Call(jen.Id(p)))
		keys = append(keys, jen.Id(p))
	}
	code = append(code, jen.Commentf("%s returns the row of %s with the given primary key.", pkFunc(src, t), t.Name).Line().
		Func().Id(pkFunc(src, t)).Params(
		append([]jen.Code{ctxParam(), dbParam()}, args...)...,
	).Params(jen.Op("*").Id(row), jen.Error()).Block(
		jen.List(jen.Id("rows"), jen.Err()).Op(":=").Id(rows).Call(conds...),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err())),
		jen.Switch(jen.Len(jen.Id("rows"))).Block(
			jen.Case(jen.Lit(0)).Block(
				jen.Return(jen.Nil(), jen.Qual(ewlPkg, "NewNotFoundError").Call(keys...)),
			),
			jen.Case(jen.Lit(1)).Block(
				jen.Return(jen.Id("rows").Index(jen.Lit(0)), jen.Nil()),
			),
			jen.Default().Block(
				jen.Return(jen.Nil(), jen.Qual(ewlPkg, "NewNotSingularError").Call(jen.Id(tableConst(src, t)), jen.Len(jen.Id("rows")))),
			),
		),
	))
	return code
}
