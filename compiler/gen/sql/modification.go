package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/ewl/compiler/gen"
	"github.com/syssam/ewl/dialect/sql/schema"
)

// genModification declares the modification type of a table with its
// insert, update and delete constructors, one setter per column and the
// Execute method. Execute calls preExecute and postExecute, which live in
// the modification stub of the table.
func genModification(src *gen.DatabaseSource, t *gen.Table) []jen.Code {
	var (
		mod      = modificationType(src, t)
		cond     = conditionType(src, t)
		table    = tableConst(src, t)
		revision = src.IsRevisionHistory(t)
		identity = returnedIdentity(t)
	)
	code := []jen.Code{
		jen.Commentf("%s inserts, updates or deletes rows of %s.", mod, t.Name).Line().
			Type().Id(mod).StructFunc(func(g *jen.Group) {
			g.Id("action").Qual(sqlPkg, "Action")
			g.Id("conds").Index().Id(cond)
			if revision {
				g.Id("recorder").Qual(sqlPkg, "RevisionRecorder")
				g.Id("userTransactionID").Int64()
			}
			g.Id("values").StructFunc(func(g *jen.Group) {
				for _, c := range t.Columns {
					g.Id(gen.Pascal(c.Name)).Qual(sqlPkg, "Field").Types(fieldType(c.Type, c.Nullable))
				}
			})
		}),
	}

	var (
		lead   []jen.Code
		fields = jen.Dict{}
	)
	if revision {
		lead = []jen.Code{
			jen.Id("recorder").Qual(sqlPkg, "RevisionRecorder"),
			jen.Id("userTransactionID").Int64(),
		}
		fields[jen.Id("recorder")] = jen.Id("recorder")
		fields[jen.Id("userTransactionID")] = jen.Id("userTransactionID")
	}
	for _, ctor := range []struct {
		name   string
		action string
		conds  bool
		doc    string
	}{
		{"Insert", "ActionInsert", false, "inserts one row into"},
		{"Update", "ActionUpdate", true, "updates the rows matching all conditions in"},
		{"Delete", "ActionDelete", true, "deletes the rows matching all conditions from"},
	} {
		ps := append([]jen.Code(nil), lead...)
		vals := jen.Dict{jen.Id("action"): jen.Qual(sqlPkg, ctor.action)}
		for k, v := range fields {
			vals[k] = v
		}
		if ctor.conds {
			// At least one condition; an unconditional update or delete
			// is a custom modification.
			ps = append(ps, jen.Id("cond").Id(cond), jen.Id("more").Op("...").Id(cond))
			vals[jen.Id("conds")] = jen.Append(jen.Index().Id(cond).Values(jen.Id("cond")), jen.Id("more").Op("..."))
		}
		fn := constructorFunc(src, t, ctor.name)
		code = append(code, jen.Commentf("%s returns a modification that %s %s.", fn, ctor.doc, t.Name).Line().
			Func().Id(fn).Params(ps...).Op("*").Id(mod).Block(
			jen.Return(jen.Op("&").Id(mod).Values(vals)),
		))
	}

	for _, c := range t.Columns {
		f := gen.Pascal(c.Name)
		code = append(code, jen.Commentf("Set%s sets the %s column.", f, c.Name).Line().
			Func().Params(jen.Id("m").Op("*").Id(mod)).Id("Set"+f).Params(jen.Id("v").Add(fieldType(c.Type, c.Nullable))).Op("*").Id(mod).Block(
			jen.Id("m").Dot("values").Dot(f).Dot("Set").Call(jen.Id("v")),
			jen.Return(jen.Id("m")),
		))
	}

	code = append(code, jen.Func().Params(jen.Id("m").Op("*").Id(mod)).Id("columnValues").Params().Index().Qual(sqlPkg, "Value").BlockFunc(func(g *jen.Group) {
		g.Var().Id("vs").Index().Qual(sqlPkg, "Value")
		for _, c := range t.Columns {
			g.Id("vs").Op("=").Id("m").Dot("values").Dot(gen.Pascal(c.Name)).Dot("AppendTo").Call(jen.Id("vs"), jen.Id(columnConst(src, t, c)))
		}
		g.Return(jen.Id("vs"))
	}))

	where := jen.Id(predicatesFunc(src, t)).Call(jen.Id("m").Dot("conds"))
	modErr := func(err jen.Code) jen.Code {
		return jen.Op("&").Qual(ewlPkg, "ModificationError").Values(jen.Dict{
			jen.Id("Table"):  jen.Id(table),
			jen.Id("Action"): jen.String().Call(jen.Id("m").Dot("action")),
			jen.Id("Err"):    err,
		})
	}
	insert := jen.Op("&").Qual(sqlPkg, "Insert").Values(jen.DictFunc(func(d jen.Dict) {
		d[jen.Id("Table")] = jen.Id(table)
		d[jen.Id("Values")] = jen.Id("m").Dot("columnValues").Call()
		if identity != nil {
			d[jen.Id("Returning")] = jen.Id(columnConst(src, t, identity))
		}
	}))
	var insertCase []jen.Code
	if identity != nil {
		insertCase = []jen.Code{
			jen.Var().Id("id").Int64(),
			jen.If(
				jen.List(jen.Id("id"), jen.Err()).Op("=").Parens(insert).Dot("Exec").Call(jen.Id("ctx"), jen.Id("db")),
				jen.Err().Op("==").Nil(),
			).Block(
				jen.Id("m").Dot("values").Dot(gen.Pascal(identity.Name)).Dot("Set").Call(jen.Id("id")),
				jen.Id("n").Op("=").Lit(1),
			),
		}
	} else {
		insertCase = []jen.Code{
			jen.If(
				jen.List(jen.Id("_"), jen.Err()).Op("=").Parens(insert).Dot("Exec").Call(jen.Id("ctx"), jen.Id("db")),
				jen.Err().Op("==").Nil(),
			).Block(jen.Id("n").Op("=").Lit(1)),
		}
	}

	code = append(code, jen.Comment("Execute runs the modification and returns the number of affected rows.").Line().
		Func().Params(jen.Id("m").Op("*").Id(mod)).Id("Execute").Params(ctxParam(), dbParam()).Params(jen.Int64(), jen.Error()).BlockFunc(func(g *jen.Group) {
		g.If(jen.Err().Op(":=").Id("m").Dot("preExecute").Call(jen.Id("ctx"), jen.Id("db")), jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Lit(0), jen.Err()),
		)
		g.Var().Defs(
			jen.Id("n").Int64(),
			jen.Err().Error(),
		)
		g.Switch(jen.Id("m").Dot("action")).Block(
			jen.Case(jen.Qual(sqlPkg, "ActionInsert")).Block(insertCase...),
			jen.Case(jen.Qual(sqlPkg, "ActionUpdate")).Block(
				jen.List(jen.Id("n"), jen.Err()).Op("=").Parens(jen.Op("&").Qual(sqlPkg, "Update").Values(jen.Dict{
					jen.Id("Table"):  jen.Id(table),
					jen.Id("Values"): jen.Id("m").Dot("columnValues").Call(),
					jen.Id("Where"):  where,
				})).Dot("Exec").Call(jen.Id("ctx"), jen.Id("db")),
			),
			jen.Default().Block(
				jen.List(jen.Id("n"), jen.Err()).Op("=").Parens(jen.Op("&").Qual(sqlPkg, "Delete").Values(jen.Dict{
					jen.Id("Table"): jen.Id(table),
					jen.Id("Where"): where,
				})).Dot("Exec").Call(jen.Id("ctx"), jen.Id("db")),
			),
		)
		g.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Lit(0), modErr(jen.Err())))
		if revision {
			g.If(
				jen.Err().Op(":=").Id("m").Dot("recorder").Dot("RecordRevision").Call(jen.Id("ctx"), jen.Id("db"), jen.Op("&").Qual(sqlPkg, "Revision").Values(jen.Dict{
					jen.Id("Table"):             jen.Id(table),
					jen.Id("Action"):            jen.Id("m").Dot("action"),
					jen.Id("Key"):               jen.Id("m").Dot("key").Call(),
					jen.Id("UserTransactionID"): jen.Id("m").Dot("userTransactionID"),
				})),
				jen.Err().Op("!=").Nil(),
			).Block(jen.Return(jen.Lit(0), modErr(jen.Err())))
		}
		g.If(jen.Err().Op(":=").Id("m").Dot("postExecute").Call(jen.Id("ctx"), jen.Id("db")), jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Lit(0), jen.Err()),
		)
		g.Return(jen.Id("n"), jen.Nil())
	}))

	if revision {
		code = append(code, genKey(src, t, mod))
	}
	return code
}

// genKey declares the method returning the primary key recorded in a
// revision: the key values set on the modification, or else the values of
// the equality conditions on key columns.
func genKey(src *gen.DatabaseSource, t *gen.Table, mod string) jen.Code {
	pk := t.PrimaryKey()
	var set, vals, cols []jen.Code
	for i, c := range pk {
		f := jen.Id("m").Dot("values").Dot(gen.Pascal(c.Name))
		if i > 0 {
			set = append(set, jen.Op("&&"))
		}
		set = append(set, f.Clone().Dot("IsSet").Call())
		vals = append(vals, f.Clone().Dot("Value").Call())
		cols = append(cols, jen.Id(columnConst(src, t, c)))
	}
	return jen.Func().Params(jen.Id("m").Op("*").Id(mod)).Id("key").Params().Index().Any().Block(
		jen.If(jen.Add(set...)).Block(
			jen.Return(jen.Index().Any().Values(vals...)),
		),
		jen.Var().Id("key").Index().Any(),
		jen.For(jen.List(jen.Id("_"), jen.Id("c")).Op(":=").Range().Id("m").Dot("conds")).Block(
			jen.Id("p").Op(":=").Id("c").Dot("Predicate").Call(),
			jen.If(jen.Id("p").Dot("Op").Call().Op("!=").Qual(sqlPkg, "OpEQ")).Block(jen.Continue()),
			jen.Switch(jen.Id("p").Dot("Column").Call()).Block(
				jen.Case(cols...).Block(
					jen.Id("key").Op("=").Append(jen.Id("key"), jen.Id("p").Dot("Args").Call().Op("...")),
				),
			),
		),
		jen.Return(jen.Id("key")),
	)
}

// returnedIdentity returns the identity column whose assigned value is
// read back after an insert, or nil.
func returnedIdentity(t *gen.Table) *gen.Column {
	c := t.Identity()
	if c == nil || c.Nullable || c.Type != schema.TypeInt64 {
		return nil
	}
	return c
}
