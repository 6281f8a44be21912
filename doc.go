// Package ewl holds the runtime errors returned by generated data-access
// code. The generator itself lives under compiler/ and the SQL runtime that
// generated code links against lives under dialect/sql.
package ewl
