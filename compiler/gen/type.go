package gen

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"golang.org/x/text/cases"

	"github.com/syssam/ewl/compiler/load"
	"github.com/syssam/ewl/dialect/sql/schema"
)

// Introspected schema objects.
type (
	Table            = schema.Table
	Column           = schema.Column
	QueryColumn      = schema.QueryColumn
	RowConstant      = schema.RowConstant
	RowConstantQuery = schema.RowConstantQuery
	Sequence         = schema.Sequence
	Procedure        = schema.Procedure
	ProcedureParam   = schema.ProcedureParam
	GoType           = schema.GoType
)

// DatabaseSource is one configured database together with everything
// introspected from it for the current run. It holds no connection.
type DatabaseSource struct {
	Config     *load.Database
	Storage    *Storage
	Tables     []*Table // ordered by name
	Sequences  []*Sequence
	Procedures []*Procedure

	rowConstants map[*load.RowConstantTable][]*RowConstant
	queryColumns map[*load.Query][]*QueryColumn
}

// NewDatabaseSource returns an empty source for the configured database.
func NewDatabaseSource(db *load.Database) (*DatabaseSource, error) {
	s, err := NewStorage(db.Dialect)
	if err != nil {
		return nil, err
	}
	return &DatabaseSource{
		Config:       db,
		Storage:      s,
		rowConstants: make(map[*load.RowConstantTable][]*RowConstant),
		queryColumns: make(map[*load.Query][]*QueryColumn),
	}, nil
}

// Introspect reads everything the builders need from the database behind
// ix. Any error aborts; partial results are never returned.
func Introspect(ctx context.Context, ix Introspector, db *load.Database) (*DatabaseSource, error) {
	src, err := NewDatabaseSource(db)
	if err != nil {
		return nil, err
	}
	if src.Tables, err = ix.Tables(ctx); err != nil {
		return nil, fmt.Errorf("introspect tables: %w", err)
	}
	slices.SortFunc(src.Tables, func(a, b *Table) int { return compareFold(a.Name, b.Name) })
	for _, rct := range db.RowConstantTables {
		rows, err := ix.RowConstants(ctx, &RowConstantQuery{
			Table:         rct.Table,
			NameColumn:    rct.NameColumn,
			ValueColumn:   rct.ValueColumn,
			OrderByColumn: rct.OrderByColumn,
			Descending:    rct.OrderDescending,
		})
		if err != nil {
			return nil, fmt.Errorf("read row constants of %s: %w", rct.Table, err)
		}
		src.rowConstants[rct] = rows
	}
	for _, q := range db.Queries {
		cols, err := ix.QueryColumns(ctx, q.SelectFromClause)
		if err != nil {
			return nil, fmt.Errorf("read columns of query %s: %w", q.Name, err)
		}
		src.queryColumns[q] = cols
	}
	if src.Storage.SchemaMode.Support(Sequences) {
		if src.Sequences, err = ix.Sequences(ctx); err != nil {
			return nil, fmt.Errorf("introspect sequences: %w", err)
		}
	}
	if src.Storage.SchemaMode.Support(Procedures) {
		if src.Procedures, err = ix.Procedures(ctx); err != nil {
			return nil, fmt.Errorf("introspect procedures: %w", err)
		}
	}
	return src, nil
}

// Prefix returns the identifier prefix of the database: the Pascal-cased
// secondary name, or empty for the primary database.
func (s *DatabaseSource) Prefix() string {
	return Pascal(s.Config.SecondaryName)
}

// Description returns "primary" or "<name> secondary".
func (s *DatabaseSource) Description() string {
	return s.Config.Description()
}

// Dialect returns the dialect of the database.
func (s *DatabaseSource) Dialect() string {
	return s.Storage.Dialect
}

// Table returns the introspected table with the given name, matched
// ignoring case, or nil.
func (s *DatabaseSource) Table(name string) *Table {
	fold := cases.Fold()
	key := fold.String(name)
	for _, t := range s.Tables {
		if fold.String(t.Name) == key {
			return t
		}
	}
	return nil
}

// StandardCode reports whether standard retrieval and modification code is
// emitted for the table. A per-table override wins over the database
// flag; when neither is set the code is emitted.
func (s *DatabaseSource) StandardCode(t *Table) bool {
	if o := s.Config.Override(t.Name); o != nil && o.HasKey != nil {
		return *o.HasKey
	}
	if s.Config.EveryTableHasKey != nil {
		return *s.Config.EveryTableHasKey
	}
	return true
}

// StandardTables returns the tables selected for standard code.
func (s *DatabaseSource) StandardTables() []*Table {
	var ts []*Table
	for _, t := range s.Tables {
		if s.StandardCode(t) {
			ts = append(ts, t)
		}
	}
	return ts
}

// IsRevisionHistory reports whether the table is in the revision history
// allow-list of the database.
func (s *DatabaseSource) IsRevisionHistory(t *Table) bool {
	fold := cases.Fold()
	key := fold.String(t.Name)
	for _, name := range s.Config.RevisionHistoryTables {
		if fold.String(name) == key {
			return true
		}
	}
	return false
}

// RowConstants returns the rows read for a row-constant table.
func (s *DatabaseSource) RowConstants(rct *load.RowConstantTable) []*RowConstant {
	return s.rowConstants[rct]
}

// SetRowConstants records the rows of a row-constant table.
func (s *DatabaseSource) SetRowConstants(rct *load.RowConstantTable, rows []*RowConstant) {
	s.rowConstants[rct] = rows
}

// QueryColumns returns the result columns of a configured query.
func (s *DatabaseSource) QueryColumns(q *load.Query) []*QueryColumn {
	return s.queryColumns[q]
}

// SetQueryColumns records the result columns of a configured query.
func (s *DatabaseSource) SetQueryColumns(q *load.Query, cols []*QueryColumn) {
	s.queryColumns[q] = cols
}

// Validate checks the configuration of the database against its schema.
// It runs before anything is emitted for the database.
func (s *DatabaseSource) Validate() error {
	for _, name := range s.Config.RevisionHistoryTables {
		t := s.Table(name)
		if t == nil {
			return NewSchemaError(name, "", fmt.Sprintf("revision history table %q does not exist", name), nil)
		}
		if !s.StandardCode(t) {
			return NewSchemaError(t.Name, "", "revision history table is excluded from standard code", nil)
		}
	}
	for _, o := range s.Config.Tables {
		if s.Table(o.Name) == nil {
			return NewSchemaError(o.Name, "", fmt.Sprintf("configured table %q does not exist", o.Name), nil)
		}
	}
	for _, t := range s.StandardTables() {
		if !t.HasPrimaryKey() {
			return NewSchemaError(t.Name, "", "table has no primary key; exclude it with has_key: false", nil)
		}
	}
	for _, rct := range s.Config.RowConstantTables {
		t := s.Table(rct.Table)
		if t == nil {
			return NewSchemaError(rct.Table, "", "row constant table does not exist", nil)
		}
		for _, c := range []string{rct.NameColumn, rct.ValueColumn} {
			if t.Column(c) == nil {
				return NewSchemaError(t.Name, c, "row constant column does not exist", nil)
			}
		}
		typ := t.Column(rct.ValueColumn).Type
		if !typ.Constant() {
			return NewSchemaError(t.Name, rct.ValueColumn, "row constant values must be numbers, booleans or strings", nil)
		}
		for _, r := range s.RowConstants(rct) {
			if _, err := ConstantValue(r.Value, typ); err != nil {
				return NewSchemaError(t.Name, rct.ValueColumn, fmt.Sprintf("row %q", r.Name), err)
			}
		}
	}
	return s.checkNames()
}

// checkNames reports identifier collisions among the declarations of the
// database.
func (s *DatabaseSource) checkNames() error {
	types := make(map[string]string)
	declare := func(kind, name string) error {
		id := Pascal(name)
		if id == "" {
			return NewSchemaError(name, "", fmt.Sprintf("%s name has no identifier characters", kind), nil)
		}
		if prev, ok := types[id]; ok {
			return NewSchemaError(name, "", fmt.Sprintf("%s name collides with %s (both generate %s%s)", kind, prev, s.Prefix(), id), nil)
		}
		types[id] = fmt.Sprintf("%s %q", kind, name)
		return nil
	}
	for _, t := range s.Tables {
		if err := declare("table", t.Name); err != nil {
			return err
		}
		cols := make(map[string]string)
		for _, c := range t.Columns {
			id := Pascal(c.Name)
			if prev, ok := cols[id]; ok || id == "" {
				return NewSchemaError(t.Name, c.Name, fmt.Sprintf("column identifier %q collides with column %q", id, prev), nil)
			}
			cols[id] = c.Name
		}
	}
	for _, q := range s.Config.Queries {
		if err := declare("query", q.Name); err != nil {
			return err
		}
	}
	for _, m := range s.Config.CustomModifications {
		if err := declare("custom modification", m.Name); err != nil {
			return err
		}
	}
	for _, rct := range s.Config.RowConstantTables {
		seen := make(map[string]bool)
		for _, r := range s.RowConstants(rct) {
			id := Pascal(r.Name)
			if seen[id] || id == "" {
				return NewSchemaError(rct.Table, rct.NameColumn, fmt.Sprintf("row constant %q is empty or not unique", r.Name), nil)
			}
			seen[id] = true
		}
	}
	return nil
}

func compareFold(a, b string) int {
	fold := cases.Fold()
	fa, fb := fold.String(a), fold.String(b)
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ConstantValue converts a row constant value read from the database to
// the Go type of its column.
func ConstantValue(v any, t GoType) (any, error) {
	if v == nil {
		return nil, errors.New("value is null")
	}
	switch t {
	case schema.TypeString:
		return fmt.Sprint(v), nil
	case schema.TypeInt64:
		switch v := v.(type) {
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		case int32:
			return int64(v), nil
		case float64:
			if v == math.Trunc(v) {
				return int64(v), nil
			}
		case string:
			return strconv.ParseInt(v, 10, 64)
		}
	case schema.TypeFloat64:
		switch v := v.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		case string:
			return strconv.ParseFloat(v, 64)
		}
	case schema.TypeBool:
		switch v := v.(type) {
		case bool:
			return v, nil
		case int64:
			return v != 0, nil
		case string:
			return strconv.ParseBool(v)
		}
	}
	return nil, fmt.Errorf("cannot use %v (%T) as %s", v, v, t)
}
