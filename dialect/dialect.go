package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Dialect names for external usage.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Dialects lists the supported dialects in a stable order.
var Dialects = []string{SQLite, MySQL, Postgres}

// ExecQuerier wraps the two standard sql.DB methods used by generated code
// and by schema introspection. *sql.DB, *sql.Tx and *sql.Conn satisfy it.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Normalize maps a driver name (for example "sqlite3" or "pgx") to one of
// the dialect constants.
func Normalize(name string) (string, error) {
	switch n := strings.ToLower(name); {
	case strings.HasPrefix(n, SQLite):
		return SQLite, nil
	case strings.HasPrefix(n, MySQL):
		return MySQL, nil
	case strings.HasPrefix(n, Postgres), n == "pgx", n == "pq":
		return Postgres, nil
	default:
		return "", fmt.Errorf("dialect: unsupported dialect %q", name)
	}
}

// Placeholder returns the bind parameter marker for the n-th (1-based)
// argument of a statement in the given dialect.
func Placeholder(d string, n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Quote quotes an identifier for the given dialect.
func Quote(d, ident string) string {
	if d == MySQL {
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
