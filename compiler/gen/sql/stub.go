package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/ewl/compiler/gen"
)

// genStubs returns the two companion files of a standard table. They are
// written once and then owned by the developer: the retrieval stub is a
// place for hand-written queries, the modification stub holds the hooks
// Execute calls around every statement.
func genStubs(src *gen.DatabaseSource, t *gen.Table) []*gen.Stub {
	base := stubBase(src, t)
	mod := modificationType(src, t)
	hook := func(name, doc string) jen.Code {
		return jen.Comment(doc).Line().
			Func().Params(jen.Id("m").Op("*").Id(mod)).Id(name).Params(ctxParam(), dbParam()).Error().Block(
			jen.Return(jen.Nil()),
		)
	}
	return []*gen.Stub{
		{
			Name: base + gen.RetrievalStubSuffix,
			Code: []jen.Code{
				jen.Commentf("Hand-written retrieval of %s rows belongs in this file.", t.Name),
			},
		},
		{
			Name: base + gen.ModificationStubSuffix,
			Code: []jen.Code{
				hook("preExecute", "preExecute runs before the statement of every modification."),
				hook("postExecute", "postExecute runs after the statement of every modification succeeds."),
			},
		},
	}
}
