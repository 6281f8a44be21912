package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/ewl/compiler/gen"
)

// genTableConstants declares one const block and one column list per table.
func genTableConstants(src *gen.DatabaseSource) []jen.Code {
	var code []jen.Code
	for _, t := range src.Tables {
		code = append(code, jen.Const().DefsFunc(func(defs *jen.Group) {
			defs.Commentf("%s holds the name of the %s table.", tableConst(src, t), t.Name)
			defs.Id(tableConst(src, t)).Op("=").Lit(t.Name)
			for _, c := range t.Columns {
				defs.Commentf("%s holds the name of the %s column.", columnConst(src, t, c), c.Name)
				defs.Id(columnConst(src, t, c)).Op("=").Lit(c.Name)
			}
		}))
		code = append(code, jen.Commentf("%s holds the columns of %s in table order.", columnsVar(src, t), t.Name).Line().
			Var().Id(columnsVar(src, t)).Op("=").Index().String().ValuesFunc(func(vals *jen.Group) {
			for _, c := range t.Columns {
				vals.Id(columnConst(src, t, c))
			}
		}))
	}
	return code
}

// genRowConstants declares the rows of every row-constant table as
// constants, followed by a fill list in configured order.
func genRowConstants(src *gen.DatabaseSource) []jen.Code {
	var code []jen.Code
	for _, rct := range src.Config.RowConstantTables {
		t := src.Table(rct.Table)
		if t == nil {
			continue
		}
		typ := t.Column(rct.ValueColumn).Type
		rows := src.RowConstants(rct)
		if len(rows) > 0 {
			code = append(code, jen.Commentf("Rows of %s.", t.Name).Line().Const().DefsFunc(func(defs *jen.Group) {
				for _, r := range rows {
					v, _ := gen.ConstantValue(r.Value, typ)
					defs.Id(rowConst(src, t, r)).Add(baseType(typ)).Op("=").Add(constLit(v))
				}
			}))
		}
		item := jen.Qual(sqlPkg, "ListItem").Types(baseType(typ))
		code = append(code, jen.Commentf("%s lists the rows of %s in configured order.", fillListVar(src, t), t.Name).Line().
			Var().Id(fillListVar(src, t)).Op("=").Index().Add(item).ValuesFunc(func(vals *jen.Group) {
			for _, r := range rows {
				vals.Values(jen.Dict{
					jen.Id("Label"): jen.Lit(r.Name),
					jen.Id("Value"): jen.Id(rowConst(src, t, r)),
				})
			}
		}))
	}
	return code
}
