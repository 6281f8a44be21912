// Package gen regenerates the dependent logic of an installation.
//
// A run reads the installation configuration and the live schema of every
// configured database, then rewrites one generated-code bundle per project
// together with the auxiliary artifacts that depend on the same inputs:
//
//	Library/generated/isu.go           data access for every database
//	<web>/generated/isu.go             web project bundle
//	<web>/web.config                   web project configuration
//	<service>/generated/isu.go         Windows service entry point
//	<project>/generated/<schema code>  XML schema types
//
// The stages run sequentially and each one aborts the run on error.
// Every generated file is deleted and recreated; only the per-table stub
// files next to the library bundle are created once and never touched
// again, so that hand-written members can live in them.
//
// Usage:
//
//	inst, err := load.File("installation.yaml")
//	if err != nil {
//		return err
//	}
//	g, err := gen.NewGenerator(
//		gen.WithInstallation(inst),
//		gen.WithBuilder(sql.NewBuilder()),
//	)
//	if err != nil {
//		return err
//	}
//	return g.Run(ctx)
//
// Per-table fragments are produced by a DataAccessBuilder (see package
// compiler/gen/sql); the generator only orders and writes them.
package gen
