// Package sql builds the data access code of SQL databases.
//
// Builder implements gen.DataAccessBuilder, gen.ExtrasBuilder and
// gen.StubBuilder. Every method is a pure function of one introspected
// table (or database) and its configuration, returning jennifer fragments
// the generator writes in a fixed order.
//
// Usage:
//
//	import (
//	    "github.com/syssam/ewl/compiler/gen"
//	    "github.com/syssam/ewl/compiler/gen/sql"
//	)
//
//	g, err := gen.NewGenerator(
//	    gen.WithInstallation(inst),
//	    gen.WithBuilder(sql.NewBuilder()),
//	)
//
// Generated declarations of a table Orders in the primary database:
//
//	OrdersTable, OrdersOrderIDColumn, OrdersColumns   names
//	OrdersCondition, OrdersOrderIDEquals, ...          command conditions
//	OrdersRow, GetOrdersRows, GetOrdersRowMatchingPk   retrieval
//	OrdersModification, NewOrdersInsert, ...           modification
//
// Declarations of a secondary database are prefixed with its name.
package sql
