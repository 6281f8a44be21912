package gen

import (
	"fmt"

	"github.com/syssam/ewl/dialect"
)

// A SchemaMode defines what database objects beyond tables a dialect
// exposes to the generator.
type SchemaMode uint

const (
	// Sequences defines sequence wrapper support.
	Sequences SchemaMode = 1 << iota

	// Procedures defines stored procedure wrapper support.
	Procedures
)

// Support reports whether m support the given mode.
func (m SchemaMode) Support(mode SchemaMode) bool { return m&mode != 0 }

// Storage describes one database dialect for code generation.
type Storage struct {
	Dialect    string     // dialect name, see package dialect.
	IdentName  string     // identifier name used in messages.
	SchemaMode SchemaMode // extra object support.
}

var drivers = []*Storage{
	{
		Dialect:   dialect.SQLite,
		IdentName: "SQLite",
	},
	{
		Dialect:   dialect.MySQL,
		IdentName: "MySQL",
	},
	{
		Dialect:    dialect.Postgres,
		IdentName:  "PostgreSQL",
		SchemaMode: Sequences | Procedures,
	},
}

// NewStorage returns the storage description of a dialect.
func NewStorage(name string) (*Storage, error) {
	d, err := dialect.Normalize(name)
	if err != nil {
		return nil, NewConfigError("Dialect", name, "unsupported dialect; use sqlite, mysql, or postgres")
	}
	for _, s := range drivers {
		if s.Dialect == d {
			return s, nil
		}
	}
	return nil, fmt.Errorf("ewl: no storage for dialect %q", d)
}
