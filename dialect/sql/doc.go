// Package sql is the runtime linked by generated data-access code.
//
// Generated functions take an Executor, which is satisfied by *Driver and
// by the *Tx values it starts:
//
//	drv, err := sql.Open("postgres", dsn)
//	rows, err := generated.GetOrdersRows(ctx, drv, generated.OrdersStatusEquals("open"))
//
// # Statements
//
// Statements are described by small values and rendered per dialect:
//
//   - Selection: SELECT over one table with inline predicates and ordering
//   - Insert: INSERT of one row, optionally returning the identity value
//   - Update: UPDATE with SET and WHERE clauses
//   - Delete: DELETE with WHERE predicates
//
// # Predicates
//
//	sql.EQ("Status", "open")           // "Status" = $1
//	sql.InValues("OrderID", 1, 2, 3)   // "OrderID" IN ($1, $2, $3)
//	sql.IsNull("ShippedAt")            // "ShippedAt" IS NULL
//
// # Custom queries
//
// Configured queries use @name parameters. Rebind rewrites them to the
// positional placeholders of a dialect at generation time:
//
//	q, names := sql.Rebind(dialect.Postgres, "SELECT * FROM Orders WHERE CustomerID = @customer")
//	// q     == "SELECT * FROM Orders WHERE CustomerID = $1"
//	// names == []string{"customer"}
package sql
