package gen

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/text/cases"
)

// SecondaryDatabaseNamesComment introduces the secondary database name
// constants.
const SecondaryDatabaseNamesComment = "Secondary database names."

// DataAccessGenerator emits the data access code of a list of databases
// into one file. The order of everything it emits depends only on its
// inputs, so identical schemas and configurations render identical files.
type DataAccessGenerator struct {
	builder DataAccessBuilder

	// Optional capabilities detected at construction.
	extras   ExtrasBuilder
	stubs    StubBuilder
	declarer Declarer
}

// NewDataAccessGenerator returns a generator emitting the fragments of b.
func NewDataAccessGenerator(b DataAccessBuilder) *DataAccessGenerator {
	g := &DataAccessGenerator{builder: b}
	if eb, ok := b.(ExtrasBuilder); ok {
		g.extras = eb
	}
	if sb, ok := b.(StubBuilder); ok {
		g.stubs = sb
	}
	if d, ok := b.(Declarer); ok {
		g.declarer = d
	}
	return g
}

// Check validates every database, then verifies that no identifier of the
// bundle is declared twice, across databases included. Reserved holds the
// identifiers the bundle declares besides the databases.
func (g *DataAccessGenerator) Check(sources []*DatabaseSource, reserved ...Declaration) error {
	if err := checkDatabaseNames(sources); err != nil {
		return err
	}
	for _, src := range sources {
		if err := src.Validate(); err != nil {
			return &DatabaseError{Database: src.Description(), Cause: err}
		}
	}
	if g.declarer == nil {
		return nil
	}
	seen := make(map[string]string)
	declare := func(d Declaration) error {
		if prev, ok := seen[d.Name]; ok {
			return NewSchemaError("", "", fmt.Sprintf("%s and %s both declare %s", prev, d.Origin, d.Name), nil)
		}
		seen[d.Name] = d.Origin
		return nil
	}
	for _, d := range reserved {
		if err := declare(d); err != nil {
			return err
		}
	}
	for _, n := range secondaryNames(sources) {
		if err := declare(Declaration{Name: Pascal(n), Origin: fmt.Sprintf("secondary database name %q", n)}); err != nil {
			return err
		}
	}
	for _, src := range sources {
		for _, d := range g.declarer.Declarations(src) {
			d.Origin = src.Description() + " database " + d.Origin
			if err := declare(d); err != nil {
				return &DatabaseError{Database: src.Description(), Cause: err}
			}
		}
	}
	return nil
}

// Generate checks and emits every database in order. A failure is wrapped
// in a DatabaseError naming the database.
func (g *DataAccessGenerator) Generate(f *jen.File, sources []*DatabaseSource, reserved ...Declaration) error {
	if err := g.Check(sources, reserved...); err != nil {
		return err
	}
	for _, src := range sources {
		g.generate(f, src)
	}
	if names := secondaryNames(sources); len(names) > 0 {
		f.Comment(SecondaryDatabaseNamesComment)
		defs := make([]jen.Code, 0, len(names))
		for _, n := range names {
			defs = append(defs, jen.Id(Pascal(n)).Op("=").Lit(n))
		}
		f.Const().Defs(defs...)
		f.Line()
	}
	return nil
}

func (g *DataAccessGenerator) generate(f *jen.File, src *DatabaseSource) {
	emit := func(cs []jen.Code) {
		for _, c := range cs {
			f.Add(c)
			f.Line()
		}
	}
	f.Comment(capitalize(src.Description()) + " database.")
	f.Line()
	emit(g.builder.TableConstants(src))
	emit(g.builder.RowConstants(src))
	tables := src.StandardTables()
	for _, t := range tables {
		emit(g.builder.Conditions(src, t))
	}
	for _, t := range tables {
		emit(g.builder.Retrieval(src, t))
	}
	for _, t := range tables {
		emit(g.builder.Modification(src, t))
	}
	emit(g.builder.QueryRetrieval(src))
	emit(g.builder.CustomModifications(src))
	if g.extras != nil {
		if src.Storage.SchemaMode.Support(Sequences) {
			emit(g.extras.Sequences(src))
		}
		if src.Storage.SchemaMode.Support(Procedures) {
			emit(g.extras.Procedures(src))
		}
	}
}

// Stubs returns the companion files of every standard table, in database
// and table order.
func (g *DataAccessGenerator) Stubs(sources []*DatabaseSource) []*Stub {
	if g.stubs == nil {
		return nil
	}
	var stubs []*Stub
	for _, src := range sources {
		for _, t := range src.StandardTables() {
			stubs = append(stubs, g.stubs.Stubs(src, t)...)
		}
	}
	return stubs
}

// secondaryNames returns the secondary database names in configured order.
func secondaryNames(sources []*DatabaseSource) []string {
	var names []string
	for _, src := range sources {
		if n := src.Config.SecondaryName; n != "" {
			names = append(names, n)
		}
	}
	return names
}

// checkDatabaseNames rejects secondary names whose identifiers collide.
func checkDatabaseNames(sources []*DatabaseSource) error {
	fold := cases.Fold()
	seen := make(map[string]string)
	for _, n := range secondaryNames(sources) {
		id := fold.String(Pascal(n))
		if prev, ok := seen[id]; ok {
			return NewConfigError("SecondaryName", n, "collides with secondary database "+prev)
		}
		seen[id] = n
	}
	return nil
}

// capitalize upper-cases the first letter of a string.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
