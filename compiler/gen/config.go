package gen

import (
	"context"
	"log/slog"
	"time"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/ewl/compiler/load"
	"github.com/syssam/ewl/server"
)

// Default values of the configuration.
const (
	DefaultHeader               = "Code generated by ewl. DO NOT EDIT."
	DefaultIntrospectionTimeout = 2 * time.Minute
	DefaultCompilerTimeout      = 5 * time.Minute
)

// WebMetaLogic emits the page-wiring section of a web project bundle.
type WebMetaLogic func(ctx context.Context, p *load.WebProject, f *jen.File) error

// Config holds everything a run needs. It is built once with NewConfig
// and not modified afterwards.
type Config struct {
	// Installation is the configuration being regenerated.
	Installation *load.Installation

	// Header is the comment at the top of every generated Go file.
	Header string

	// Builder produces the per-table data access fragments.
	Builder DataAccessBuilder

	// Opener connects to the configured databases.
	Opener Opener

	// Server configures the web server before anything is generated.
	Server server.Configurator

	// Xgen and Xsdgen compile XML schemas; the per-schema UseXgen flag
	// selects one of them.
	Xgen, Xsdgen SchemaCompiler

	// WebMetaLogic emits the page-wiring section of web project bundles.
	WebMetaLogic WebMetaLogic

	// DistributionPath is the root of the framework distribution static
	// files are propagated from. It defaults to the standard library path
	// of the installation; propagation is skipped when both are empty.
	DistributionPath string

	// LicenseFile is copied into the library files folder when set.
	LicenseFile string

	// Logger receives stage progress.
	Logger *slog.Logger

	// IntrospectionTimeout bounds the introspection of each database.
	IntrospectionTimeout time.Duration

	// CompilerTimeout bounds each XML schema compiler invocation.
	CompilerTimeout time.Duration
}

// Check reports the first missing setting.
func (c *Config) Check() error {
	switch {
	case c.Installation == nil:
		return NewConfigError("Installation", nil, "missing installation configuration")
	case c.Builder == nil:
		return NewConfigError("Builder", nil, "no data access builder set: use WithBuilder")
	case c.Xgen == nil || c.Xsdgen == nil:
		return NewConfigError("SchemaCompilers", nil, "both schema compilers are required")
	}
	return nil
}
