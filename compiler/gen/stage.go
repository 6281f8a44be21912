package gen

import "context"

// Stage is one step of a run. Stages run in the order of Stages and every
// failure aborts the run.
type Stage struct {
	Name        string
	Description string
	// Skip reports whether the stage has nothing to do.
	Skip func(*Config) bool
	run  func(context.Context, *Generator, []*DatabaseSource) error
}

var (
	// StageServer configures the web server.
	StageServer = Stage{
		Name:        "server",
		Description: "Configure the web server the installation runs on",
		run: func(ctx context.Context, g *Generator, _ []*DatabaseSource) error {
			return g.config.Server.Configure(ctx)
		},
	}

	// StagePropagation copies the static framework files into the
	// installation.
	StagePropagation = Stage{
		Name:        "propagation",
		Description: "Copy the framework files of the distribution into the installation",
		Skip: func(c *Config) bool {
			return c.Installation.SystemIsEwl
		},
		run: func(_ context.Context, g *Generator, _ []*DatabaseSource) error {
			return g.propagate()
		},
	}

	// StageLibrary writes the library bundle and the missing table stubs.
	StageLibrary = Stage{
		Name:        "library",
		Description: "Generate the data access code of every database",
		run: func(_ context.Context, g *Generator, sources []*DatabaseSource) error {
			return g.generateLibrary(sources)
		},
	}

	// StageWebProjects writes the configuration and bundle of every web
	// project.
	StageWebProjects = Stage{
		Name:        "web projects",
		Description: "Generate the configuration and code of every web project",
		Skip: func(c *Config) bool {
			return len(c.Installation.WebProjects) == 0
		},
		run: func(ctx context.Context, g *Generator, _ []*DatabaseSource) error {
			return g.generateWebProjects(ctx)
		},
	}

	// StageServices writes the bundle of every Windows service.
	StageServices = Stage{
		Name:        "windows services",
		Description: "Generate the entry point of every Windows service",
		Skip: func(c *Config) bool {
			return len(c.Installation.WindowsServices) == 0
		},
		run: func(_ context.Context, g *Generator, _ []*DatabaseSource) error {
			return g.generateServices()
		},
	}

	// StageXMLSchemas compiles the XML schemas.
	StageXMLSchemas = Stage{
		Name:        "xml schemas",
		Description: "Compile the custom installation configuration schema and every configured schema",
		run: func(ctx context.Context, g *Generator, _ []*DatabaseSource) error {
			return g.compileSchemas(ctx)
		},
	}

	// Stages lists the stages in run order.
	Stages = []Stage{
		StageServer,
		StagePropagation,
		StageLibrary,
		StageWebProjects,
		StageServices,
		StageXMLSchemas,
	}
)
