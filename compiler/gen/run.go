package gen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/ewl/dialect/sql/schema"
)

// CustomConfigurationSchema is the path, relative to the library, of the
// optional schema of custom installation configuration.
var CustomConfigurationSchema = filepath.Join("configuration", "installation", "custom.xsd")

// DatabaseUpdateScript is the path, relative to the library, of the
// optional script applied to the primary database before introspection.
var DatabaseUpdateScript = filepath.Join("configuration", "database-update.sql")

// Generator regenerates the dependent logic of one installation.
type Generator struct {
	config *Config
	data   *DataAccessGenerator
}

// NewGenerator creates a generator with the given options.
func NewGenerator(opts ...Option) (*Generator, error) {
	c, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	if err := c.Check(); err != nil {
		return nil, err
	}
	if c.DistributionPath == "" {
		c.DistributionPath = c.Installation.StandardLibraryPath
	}
	return &Generator{config: c, data: NewDataAccessGenerator(c.Builder)}, nil
}

// Config returns the configuration of the generator.
func (g *Generator) Config() *Config {
	return g.config
}

// Run applies the database update script of the library, introspects
// every database, then runs the stages in order. Nothing is written when
// introspection or validation fails. A failure in a later
// stage leaves the files of earlier stages regenerated; running again
// regenerates everything.
func (g *Generator) Run(ctx context.Context) error {
	log := g.config.Logger
	if err := g.updateDatabase(ctx); err != nil {
		return err
	}
	sources, err := g.Introspect(ctx)
	if err != nil {
		return err
	}
	for _, s := range Stages {
		if s.Skip != nil && s.Skip(g.config) {
			log.Debug("stage skipped", "stage", s.Name)
			continue
		}
		start := time.Now()
		log.Info("stage started", "stage", s.Name)
		if err := s.run(ctx, g, sources); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		log.Info("stage completed", "stage", s.Name, "duration", time.Since(start))
	}
	return nil
}

// Introspect opens, reads and validates every configured database, primary
// first. Connections are closed before it returns.
func (g *Generator) Introspect(ctx context.Context) ([]*DatabaseSource, error) {
	var sources []*DatabaseSource
	for _, db := range g.config.Installation.Databases() {
		src, err := g.introspect(ctx, db.Description(), func(ctx context.Context) (*DatabaseSource, error) {
			ix, err := g.config.Opener(ctx, db)
			if err != nil {
				return nil, err
			}
			defer ix.Close()
			return Introspect(ctx, ix, db)
		})
		if err != nil {
			return nil, &DatabaseError{Database: db.Description(), Cause: err}
		}
		sources = append(sources, src)
	}
	if err := g.data.Check(sources, libraryDeclarations...); err != nil {
		return nil, err
	}
	return sources, nil
}

// libraryDeclarations are the identifiers the library bundle declares
// besides the data access code.
var libraryDeclarations = []Declaration{
	{Name: "SystemShortName", Origin: "the system short name constant"},
}

func (g *Generator) introspect(ctx context.Context, desc string, open func(context.Context) (*DatabaseSource, error)) (*DatabaseSource, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.IntrospectionTimeout)
	defer cancel()
	start := time.Now()
	src, err := open(ctx)
	if err != nil {
		return nil, err
	}
	res := schema.ValidateSchema(src.Tables)
	for _, w := range res.Warnings {
		g.config.Logger.Warn("schema warning", "database", desc, "table", w.Table, "column", w.Column, "message", w.Message)
	}
	if res.HasErrors() {
		e := res.Errors[0]
		return nil, NewSchemaError(e.Table, e.Column, e.Message, nil)
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	g.config.Logger.Info("database introspected",
		"database", desc,
		"dialect", src.Dialect(),
		"tables", len(src.Tables),
		"duration", time.Since(start),
	)
	return src, nil
}

// generateLibrary writes the library bundle, then the table stubs that do
// not exist yet.
func (g *Generator) generateLibrary(sources []*DatabaseSource) error {
	inst := g.config.Installation
	f := g.newFile(inst.LibraryNamespace + "/" + GeneratedDir)
	f.PackageComment(fmt.Sprintf("Package %s holds the data access code of %s.", GeneratedPkg, inst.SystemShortName))
	f.Comment("SystemShortName is the short name of the system.")
	f.Const().Id("SystemShortName").Op("=").Lit(inst.SystemShortName)
	f.Line()
	if err := g.data.Generate(f, sources, libraryDeclarations...); err != nil {
		return err
	}
	dir := filepath.Join(inst.LibraryPath(), GeneratedDir)
	stubs := g.data.Stubs(sources)
	if g.data.stubs != nil {
		stale, err := staleStubs(dir, stubs)
		if err != nil {
			return wrapIOError("library", dir, err)
		}
		if len(stale) > 0 {
			return &UserCorrectableError{Message: fmt.Sprintf(
				"library: %s in %s belong to tables without standard code; move their code and delete them",
				strings.Join(stale, ", "), dir)}
		}
	}
	if err := writeFile("library", BundlePath(inst.LibraryPath()), f); err != nil {
		return err
	}
	for _, st := range stubs {
		sf := jen.NewFilePathName(inst.LibraryNamespace+"/"+GeneratedDir, GeneratedPkg)
		for _, c := range st.Code {
			sf.Add(c)
			sf.Line()
		}
		path := filepath.Join(dir, st.Name)
		created, err := writeStub("library", path, sf)
		if err != nil {
			return err
		}
		if created {
			g.config.Logger.Info("stub created", "file", path)
		}
	}
	return nil
}

// generateWebProjects writes the configuration then the bundle of every
// web project.
func (g *Generator) generateWebProjects(ctx context.Context) error {
	inst := g.config.Installation
	for _, p := range inst.WebProjects {
		dir := inst.ProjectPath(p.Path)
		if err := g.writeWebConfig(p, dir); err != nil {
			return err
		}
		f := g.newFile(p.Namespace + "/" + GeneratedDir)
		f.PackageComment(fmt.Sprintf("Package %s holds the generated code of the %s web project.", GeneratedPkg, p.Name))
		f.Comment("WebProjectName is the name of the web project.")
		f.Const().Id("WebProjectName").Op("=").Lit(p.Name)
		f.Line()
		bundle := BundlePath(dir)
		if fn := g.config.WebMetaLogic; fn != nil {
			if err := fn(ctx, p, f); err != nil {
				return NewGenerationError("web project", bundle, p.Name, err)
			}
		}
		if err := writeFile("web project", bundle, f); err != nil {
			return err
		}
		g.config.Logger.Debug("web project generated", "project", p.Name)
	}
	return nil
}

// generateServices writes the bundle of every Windows service.
func (g *Generator) generateServices() error {
	inst := g.config.Installation
	for _, s := range inst.WindowsServices {
		if err := g.writeService(s, BundlePath(inst.ProjectPath(s.Name))); err != nil {
			return err
		}
		g.config.Logger.Debug("service generated", "project", s.Name)
	}
	return nil
}

// compileSchemas compiles the custom installation configuration schema,
// when the library has one, then every configured schema.
func (g *Generator) compileSchemas(ctx context.Context) error {
	inst := g.config.Installation
	custom := filepath.Join(inst.LibraryPath(), CustomConfigurationSchema)
	switch _, err := os.Stat(custom); {
	case err == nil:
		ns := inst.LibraryNamespace + "/" + GeneratedDir + "/configuration"
		err := g.compileSchema(ctx, g.config.Xsdgen, &SchemaCompilation{
			Input:      custom,
			OutputDir:  filepath.Join(inst.LibraryPath(), GeneratedDir, path.Base(ns)),
			OutputName: "custom.go",
			Namespace:  ns,
		})
		if err != nil {
			return err
		}
	case !errors.Is(err, fs.ErrNotExist):
		return wrapIOError("xml schema", custom, err)
	}
	for _, s := range inst.XMLSchemas {
		comp := g.config.Xsdgen
		if s.UseXgen {
			comp = g.config.Xgen
		}
		c := &SchemaCompilation{
			Input:      filepath.Join(inst.ProjectPath(s.Project), filepath.FromSlash(s.PathInProject)),
			Namespace:  s.Namespace,
			OutputName: s.CodeFileName,
		}
		c.OutputDir = filepath.Join(inst.ProjectPath(s.Project), GeneratedDir, c.Package())
		if err := g.compileSchema(ctx, comp, c); err != nil {
			return err
		}
		g.config.Logger.Debug("schema compiled", "project", s.Project, "schema", s.PathInProject, "tool", comp.Name())
	}
	return nil
}
