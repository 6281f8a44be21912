package sql

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/ewl/compiler/gen"
	"github.com/syssam/ewl/dialect"
)

// genSequences declares one function per sequence returning its next value.
func genSequences(src *gen.DatabaseSource) []jen.Code {
	var code []jen.Code
	for _, s := range src.Sequences {
		fn := sequenceFunc(src, s)
		q := fmt.Sprintf("SELECT nextval('%s')", strings.ReplaceAll(dialect.Quote(src.Dialect(), s.Name), "'", "''"))
		code = append(code, jen.Commentf("%s returns the next value of the %s sequence.", fn, s.Name).Line().
			Func().Id(fn).Params(ctxParam(), dbParam()).Params(jen.Int64(), jen.Error()).Block(
			jen.Var().Id("v").Int64(),
			jen.Err().Op(":=").Qual(sqlPkg, "Query").Call(
				jen.Id("ctx"), jen.Id("db"), jen.Lit(q), jen.Nil(),
				jen.Func().Params(jen.Id("s").Qual(sqlPkg, "ColumnScanner")).Error().Block(
					jen.Return(jen.Id("s").Dot("Scan").Call(jen.Op("&").Id("v"))),
				),
			),
			jen.Return(jen.Id("v"), jen.Err()),
		))
	}
	return code
}

// genProcedures declares one function per stored procedure. Input
// parameters become typed arguments in declaration order; output-only
// parameters are passed as NULL.
func genProcedures(src *gen.DatabaseSource) []jen.Code {
	var code []jen.Code
	for _, p := range src.Procedures {
		var (
			ps    = []jen.Code{ctxParam(), dbParam()}
			args  = []jen.Code{jen.Id("ctx"), jen.Id("db"), nil}
			marks []string
			seen  = make(map[string]bool)
		)
		for i, pp := range p.Params {
			if strings.EqualFold(pp.Mode, "OUT") {
				marks = append(marks, "NULL")
				continue
			}
			id := gen.Camel(pp.Name)
			if id == "" || seen[id] {
				id = fmt.Sprintf("p%d", i+1)
			}
			seen[id] = true
			ps = append(ps, jen.Id(id).Add(baseType(pp.Type)))
			args = append(args, jen.Id(id))
			marks = append(marks, dialect.Placeholder(src.Dialect(), len(args)-3))
		}
		args[2] = jen.Lit(fmt.Sprintf("CALL %s(%s)", dialect.Quote(src.Dialect(), p.Name), strings.Join(marks, ", ")))
		fn := procedureFunc(src, p)
		code = append(code, jen.Commentf("%s calls the %s stored procedure.", fn, p.Name).Line().
			Func().Id(fn).Params(ps...).Error().Block(
			jen.List(jen.Id("_"), jen.Err()).Op(":=").Qual(sqlPkg, "Exec").Call(args...),
			jen.Return(jen.Err()),
		))
	}
	return code
}
