package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/ewl/compiler/gen"
	"github.com/syssam/ewl/compiler/load"
	esql "github.com/syssam/ewl/dialect/sql"
)

// genQueries declares, for every configured query, a row type and one
// retrieval function per post-select-from clause. The SQL text is rebound
// to the dialect at generation time and embedded as a literal.
func genQueries(src *gen.DatabaseSource) []jen.Code {
	var code []jen.Code
	for _, q := range src.Config.Queries {
		cols := src.QueryColumns(q)
		row := rowType(src, q.Name)
		fields := make([]string, 0, len(cols))
		for _, c := range cols {
			fields = append(fields, gen.Pascal(c.Name))
		}
		code = append(code, jen.Commentf("%s is a result row of the %s query.", row, q.Name).Line().
			Type().Id(row).StructFunc(func(g *jen.Group) {
			for i, c := range cols {
				g.Id(fields[i]).Add(fieldType(c.Type, c.Nullable))
			}
		}))
		posts := q.PostSelectFromClauses
		if len(posts) == 0 {
			posts = []*load.PostSelectFromClause{{}}
		}
		for _, post := range posts {
			text := q.SelectFromClause
			if post.Value != "" {
				text += " " + post.Value
			}
			fn := rowsFunc(src, q.Name, post.Name)
			stmt, names := esql.Rebind(src.Dialect(), text)
			code = append(code, jen.Commentf("%s runs the %s query.", fn, q.Name).Line().
				Func().Id(fn).Params(queryParams(names)...).Params(jen.Index().Op("*").Id(row), jen.Error()).Block(
				jen.Var().Id("rows").Index().Op("*").Id(row),
				jen.Err().Op(":=").Qual(sqlPkg, "Query").Call(
					jen.Id("ctx"), jen.Id("db"),
					jen.Lit(stmt),
					jen.Index().Any().Values(queryArgs(names)...),
					scanRows(row, fields),
				),
				jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err())),
				jen.Return(jen.Id("rows"), jen.Nil()),
			))
		}
	}
	return code
}

// genCustomModifications declares one function per configured modification
// running its commands in order, stopping at the first failure.
func genCustomModifications(src *gen.DatabaseSource) []jen.Code {
	var code []jen.Code
	for _, m := range src.Config.CustomModifications {
		var (
			all   []string
			stmts []jen.Code
		)
		for _, cmd := range m.Commands {
			stmt, names := esql.Rebind(src.Dialect(), cmd)
			all = append(all, names...)
			stmts = append(stmts, jen.If(
				jen.List(jen.Id("_"), jen.Err()).Op(":=").Qual(sqlPkg, "Exec").Call(
					append([]jen.Code{jen.Id("ctx"), jen.Id("db"), jen.Lit(stmt)}, queryArgs(names)...)...,
				),
				jen.Err().Op("!=").Nil(),
			).Block(jen.Return(jen.Err())))
		}
		stmts = append(stmts, jen.Return(jen.Nil()))
		fn := typeName(src, m.Name)
		code = append(code, jen.Commentf("%s runs the %s modification.", fn, m.Name).Line().
			Func().Id(fn).Params(queryParams(all)...).Error().Block(stmts...))
	}
	return code
}

// queryParams returns the parameters of a generated query function: the
// context, the executor, then one value per distinct parameter name.
func queryParams(names []string) []jen.Code {
	ps := []jen.Code{ctxParam(), dbParam()}
	for _, id := range params(names) {
		ps = append(ps, jen.Id(id).Any())
	}
	return ps
}

// queryArgs returns the arguments bound to each placeholder in order.
func queryArgs(names []string) []jen.Code {
	args := make([]jen.Code, 0, len(names))
	for _, n := range names {
		args = append(args, jen.Id(gen.Camel(n)))
	}
	return args
}
