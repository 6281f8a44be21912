package sql

import (
	"fmt"

	"github.com/syssam/ewl/compiler/gen"
)

// Declarations lists every package-level identifier the builders declare
// for the database, in emission order.
func (*Builder) Declarations(src *gen.DatabaseSource) []gen.Declaration {
	var ds []gen.Declaration
	add := func(origin string, names ...string) {
		for _, n := range names {
			ds = append(ds, gen.Declaration{Name: n, Origin: origin})
		}
	}
	for _, t := range src.Tables {
		table := fmt.Sprintf("table %q", t.Name)
		add(table, tableConst(src, t), columnsVar(src, t))
		for _, c := range t.Columns {
			add(fmt.Sprintf("column %q of table %q", c.Name, t.Name), columnConst(src, t, c))
		}
	}
	for _, rct := range src.Config.RowConstantTables {
		t := src.Table(rct.Table)
		if t == nil {
			continue
		}
		for _, r := range src.RowConstants(rct) {
			add(fmt.Sprintf("row %q of table %q", r.Name, t.Name), rowConst(src, t, r))
		}
		add(fmt.Sprintf("row constant table %q", t.Name), fillListVar(src, t))
	}
	for _, t := range src.StandardTables() {
		table := fmt.Sprintf("table %q", t.Name)
		add(table,
			conditionType(src, t), predicatesFunc(src, t),
			rowType(src, t.Name), rowsFunc(src, t.Name, ""), pkFunc(src, t),
			modificationType(src, t),
			constructorFunc(src, t, "Insert"), constructorFunc(src, t, "Update"), constructorFunc(src, t, "Delete"),
		)
		for _, c := range t.Columns {
			column := fmt.Sprintf("column %q of table %q", c.Name, t.Name)
			add(column, columnFunc(src, t, c, "Equals"), columnFunc(src, t, c, "In"))
			if c.Nullable {
				add(column, columnFunc(src, t, c, "IsNull"))
			}
		}
	}
	for _, q := range src.Config.Queries {
		query := fmt.Sprintf("query %q", q.Name)
		add(query, rowType(src, q.Name))
		if len(q.PostSelectFromClauses) == 0 {
			add(query, rowsFunc(src, q.Name, ""))
		}
		for _, post := range q.PostSelectFromClauses {
			add(fmt.Sprintf("clause %q of query %q", post.Name, q.Name), rowsFunc(src, q.Name, post.Name))
		}
	}
	for _, m := range src.Config.CustomModifications {
		add(fmt.Sprintf("custom modification %q", m.Name), typeName(src, m.Name))
	}
	if src.Storage.SchemaMode.Support(gen.Sequences) {
		for _, s := range src.Sequences {
			add(fmt.Sprintf("sequence %q", s.Name), sequenceFunc(src, s))
		}
	}
	if src.Storage.SchemaMode.Support(gen.Procedures) {
		for _, p := range src.Procedures {
			add(fmt.Sprintf("procedure %q", p.Name), procedureFunc(src, p))
		}
	}
	return ds
}
