// Package dialect names the database backends ewl can introspect and that
// generated data-access code can run against.
//
// # Supported Dialects
//
//   - Postgres: PostgreSQL database (also receives sequence and stored
//     procedure wrappers in generated code)
//   - MySQL: MySQL/MariaDB database
//   - SQLite: SQLite database
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Sub-packages
//
//   - dialect/sql: runtime used by generated code (driver wrapper,
//     inline command builders and conditions)
//   - dialect/sql/schema: schema introspection used by the generator
package dialect
