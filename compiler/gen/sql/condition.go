package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/ewl/compiler/gen"
)

// genConditions declares the condition type of a table, one Equals and In
// constructor per column, IsNull for nullable columns, and the helper
// turning conditions into predicates.
func genConditions(src *gen.DatabaseSource, t *gen.Table) []jen.Code {
	cond := conditionType(src, t)
	code := []jen.Code{
		jen.Commentf("%s restricts the rows a command on %s applies to.", cond, t.Name).Line().
			Type().Id(cond).Struct(jen.Id("p").Op("*").Qual(sqlPkg, "Predicate")),
		jen.Comment("Predicate returns the predicate of the condition.").Line().
			Func().Params(jen.Id("c").Id(cond)).Id("Predicate").Params().Op("*").Qual(sqlPkg, "Predicate").Block(
			jen.Return(jen.Id("c").Dot("p")),
		),
	}
	for _, c := range t.Columns {
		col := columnConst(src, t, c)
		code = append(code,
			jen.Commentf("%s matches rows whose %s equals v.", columnFunc(src, t, c, "Equals"), c.Name).Line().
				Func().Id(columnFunc(src, t, c, "Equals")).Params(jen.Id("v").Add(baseType(c.Type))).Id(cond).Block(
				jen.Return(jen.Id(cond).Values(jen.Id("p").Op(":").Qual(sqlPkg, "EQ").Call(jen.Id(col), jen.Id("v")))),
			),
			jen.Commentf("%s matches rows whose %s is one of vs.", columnFunc(src, t, c, "In"), c.Name).Line().
				Func().Id(columnFunc(src, t, c, "In")).Params(jen.Id("vs").Op("...").Add(baseType(c.Type))).Id(cond).Block(
				jen.Return(jen.Id(cond).Values(jen.Id("p").Op(":").Qual(sqlPkg, "InValues").Call(jen.Id(col), jen.Id("vs").Op("...")))),
			),
		)
		if c.Nullable {
			code = append(code, jen.Commentf("%s matches rows whose %s is NULL.", columnFunc(src, t, c, "IsNull"), c.Name).Line().
				Func().Id(columnFunc(src, t, c, "IsNull")).Params().Id(cond).Block(
				jen.Return(jen.Id(cond).Values(jen.Id("p").Op(":").Qual(sqlPkg, "IsNull").Call(jen.Id(col)))),
			))
		}
	}
	code = append(code, jen.Func().Id(predicatesFunc(src, t)).Params(jen.Id("conds").Index().Id(cond)).Index().Op("*").Qual(sqlPkg, "Predicate").Block(
		jen.Id("ps").Op(":=").Make(jen.Index().Op("*").Qual(sqlPkg, "Predicate"), jen.Lit(0), jen.Len(jen.Id("conds"))),
		jen.For(jen.List(jen.Id("_"), jen.Id("c")).Op(":=").Range().Id("conds")).Block(
			jen.Id("ps").Op("=").Append(jen.Id("ps"), jen.Id("c").Dot("p")),
		),
		jen.Return(jen.Id("ps")),
	))
	return code
}
