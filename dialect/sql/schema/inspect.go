package schema

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/ewl/dialect"
	"github.com/syssam/ewl/dialect/sql"
)

// Inspector reads schema metadata from one live database.
type Inspector struct {
	drv    *sql.Driver
	stats  *sql.QueryStats
	atlas  migrate.Driver
	logger *slog.Logger
}

// InspectorOption configures an Inspector.
type InspectorOption func(*Inspector)

// WithLogger sets the logger used for slow statements and the summary
// logged on Close.
func WithLogger(l *slog.Logger) InspectorOption {
	return func(i *Inspector) {
		if l != nil {
			i.logger = l
		}
	}
}

// Open opens a database with the registered database/sql driver of the
// given name and returns an Inspector over it.
func Open(ctx context.Context, driverName, dsn string, opts ...InspectorOption) (*Inspector, error) {
	drv, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	i, err := NewInspector(ctx, drv, opts...)
	if err != nil {
		_ = drv.Close()
		return nil, err
	}
	return i, nil
}

// NewInspector returns an Inspector over an open driver. The database is
// pinged before the atlas driver is opened.
func NewInspector(ctx context.Context, drv *sql.Driver, opts ...InspectorOption) (*Inspector, error) {
	i := &Inspector{logger: slog.Default()}
	for _, opt := range opts {
		opt(i)
	}
	if err := drv.DB().PingContext(ctx); err != nil {
		return nil, fmt.Errorf("schema: connect to %s database: %w", drv.Dialect(), err)
	}
	i.drv, i.stats = drv.WithStats(sql.WithSlowQueryLog(i.logger))
	var open func(schema.ExecQuerier) (migrate.Driver, error)
	switch drv.Dialect() {
	case dialect.SQLite:
		open = sqlite.Open
	case dialect.MySQL:
		open = mysql.Open
	case dialect.Postgres:
		open = postgres.Open
	default:
		return nil, fmt.Errorf("schema: unsupported dialect %q", drv.Dialect())
	}
	ad, err := open(i.drv)
	if err != nil {
		return nil, fmt.Errorf("schema: open %s inspector: %w", drv.Dialect(), err)
	}
	i.atlas = ad
	return i, nil
}

// Dialect returns the dialect of the inspected database.
func (i *Inspector) Dialect() string {
	return i.drv.Dialect()
}

// Tables returns every table of the connected schema ordered by name.
func (i *Inspector) Tables(ctx context.Context) ([]*Table, error) {
	s, err := i.atlas.InspectSchema(ctx, "", &schema.InspectOptions{Mode: schema.InspectTables})
	if err != nil {
		return nil, fmt.Errorf("schema: inspect tables: %w", err)
	}
	tables := make([]*Table, 0, len(s.Tables))
	for _, t := range s.Tables {
		tables = append(tables, convertTable(i.Dialect(), t))
	}
	slices.SortFunc(tables, func(a, b *Table) int {
		return strings.Compare(a.Name, b.Name)
	})
	return tables, nil
}

// Close logs the statement statistics of the inspector and closes the
// database.
func (i *Inspector) Close() error {
	i.logger.Debug("schema inspector closed", "dialect", i.Dialect(), "stats", i.stats.Stats())
	return i.drv.Close()
}

func convertTable(d string, t *schema.Table) *Table {
	pk := make(map[*schema.Column]bool)
	if t.PrimaryKey != nil {
		for _, p := range t.PrimaryKey.Parts {
			if p.C != nil {
				pk[p.C] = true
			}
		}
	}
	out := &Table{Name: t.Name, Columns: make([]*Column, 0, len(t.Columns))}
	for _, c := range t.Columns {
		col := &Column{
			Name:       c.Name,
			PrimaryKey: pk[c],
		}
		if c.Type != nil {
			col.DatabaseType = c.Type.Raw
			col.Nullable = c.Type.Null
			col.Type = goType(c.Type.Type)
		} else {
			col.Type = TypeAny
		}
		col.Identity = isIdentity(d, c, len(pk) == 1 && col.PrimaryKey)
		out.Columns = append(out.Columns, col)
	}
	return out
}

// isIdentity reports whether the database assigns the column value on
// insert. A single INTEGER primary key in SQLite aliases the rowid.
func isIdentity(d string, c *schema.Column, singlePK bool) bool {
	for _, a := range c.Attrs {
		switch a.(type) {
		case *sqlite.AutoIncrement, *mysql.AutoIncrement, *postgres.Identity:
			return true
		}
	}
	if c.Type == nil {
		return false
	}
	switch c.Type.Type.(type) {
	case *postgres.SerialType:
		return true
	}
	return d == dialect.SQLite && singlePK && strings.EqualFold(c.Type.Raw, "integer")
}
