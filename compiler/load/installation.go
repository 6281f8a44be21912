// Package load reads the installation configuration that drives code
// generation.
//
// The configuration is a YAML document, conventionally named
// installation.yaml and stored at the root of the installation:
//
//	system_short_name: Shop
//	library_namespace: example.com/shop/library
//	database:
//	  dialect: postgres
//	  dsn: ${SHOP_DSN}
//	  revision_history_tables: [Orders]
//	web_projects:
//	  - name: Web
//	    namespace: example.com/shop/web
//
// An Installation is constructed once at process start and passed down
// explicitly; it is never modified during a run.
package load

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/syssam/ewl/dialect"
)

// FileName is the conventional name of the installation configuration.
const FileName = "installation.yaml"

// LibraryProject is the name of the library project folder.
const LibraryProject = "Library"

// Installation is the root configuration of one deployable system.
type Installation struct {
	// Path is the installation root. When empty, it is set to the
	// directory holding the configuration file.
	Path                string            `yaml:"path"`
	SystemShortName     string            `yaml:"system_short_name" validate:"required"`
	LibraryNamespace    string            `yaml:"library_namespace" validate:"required"`
	SystemIsEwl         bool              `yaml:"system_is_ewl"`
	Database            *Database         `yaml:"database"`
	SecondaryDatabases  []*Database       `yaml:"secondary_databases" validate:"dive,required"`
	WebProjects         []*WebProject     `yaml:"web_projects" validate:"dive,required"`
	WindowsServices     []*WindowsService `yaml:"windows_services" validate:"dive,required"`
	XMLSchemas          []*XMLSchema      `yaml:"xml_schemas" validate:"dive,required"`
	StandardLibraryPath string            `yaml:"standard_library_path"`
}

// Database configures one primary or secondary database.
type Database struct {
	// SecondaryName is empty for the primary database.
	SecondaryName         string                `yaml:"secondary_name" validate:"omitempty,ident"`
	Dialect               string                `yaml:"dialect" validate:"required,oneof=sqlite mysql postgres"`
	DSN                   string                `yaml:"dsn" validate:"required"`
	RevisionHistoryTables []string              `yaml:"revision_history_tables" validate:"dive,required"`
	EveryTableHasKey      *bool                 `yaml:"every_table_has_key"`
	Tables                []*TableOverride      `yaml:"tables" validate:"dive,required"`
	RowConstantTables     []*RowConstantTable   `yaml:"row_constant_tables" validate:"dive,required"`
	Queries               []*Query              `yaml:"queries" validate:"dive,required"`
	CustomModifications   []*CustomModification `yaml:"custom_modifications" validate:"dive,required"`
}

// TableOverride overrides the key policy for one table.
type TableOverride struct {
	Name   string `yaml:"name" validate:"required"`
	HasKey *bool  `yaml:"has_key"`
}

// RowConstantTable declares a table whose rows become named constants.
type RowConstantTable struct {
	Table           string `yaml:"table" validate:"required"`
	NameColumn      string `yaml:"name_column" validate:"required"`
	ValueColumn     string `yaml:"value_column" validate:"required"`
	OrderByColumn   string `yaml:"order_by_column"`
	OrderDescending bool   `yaml:"order_descending"`
}

// Query declares a custom retrieval. Each post-select-from clause yields
// one retrieval function.
type Query struct {
	Name                  string                  `yaml:"name" validate:"required,ident"`
	SelectFromClause      string                  `yaml:"select_from" validate:"required"`
	PostSelectFromClauses []*PostSelectFromClause `yaml:"post_select_from_clauses" validate:"dive,required"`
}

// PostSelectFromClause is a named WHERE/ORDER BY suffix of a custom query.
type PostSelectFromClause struct {
	Name  string `yaml:"name" validate:"omitempty,ident"`
	Value string `yaml:"value"`
}

// CustomModification declares a named list of commands executed in order.
type CustomModification struct {
	Name     string   `yaml:"name" validate:"required,ident"`
	Commands []string `yaml:"commands" validate:"required,min=1,dive,required"`
}

// WebProject is a web sub-project of the installation.
type WebProject struct {
	Name      string `yaml:"name" validate:"required"`
	Namespace string `yaml:"namespace" validate:"required"`
	// Path is relative to the installation root and defaults to Name.
	Path string `yaml:"path"`
}

// WindowsService is a Windows service sub-project of the installation.
type WindowsService struct {
	Name      string `yaml:"name" validate:"required,ident"`
	Namespace string `yaml:"namespace" validate:"required"`
}

// XMLSchema declares an XML schema compiled into a code file.
type XMLSchema struct {
	Project       string `yaml:"project" validate:"required"`
	PathInProject string `yaml:"path_in_project" validate:"required"`
	Namespace     string `yaml:"namespace" validate:"required"`
	CodeFileName  string `yaml:"code_file_name" validate:"required"`
	UseXgen       bool   `yaml:"use_xgen"`
}

var identRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_ ]*$`)

// newValidator returns a validator with the "ident" tag registered.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("ident", func(fl validator.FieldLevel) bool {
		return identRe.MatchString(fl.Field().String())
	})
	return v
}

// File reads and validates the installation configuration at path.
func File(path string) (*Installation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read installation configuration: %w", err)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("load: resolve installation path: %w", err)
	}
	return Parse(data, abs)
}

// Parse decodes an installation configuration. Unknown fields are
// rejected. dir is used as the installation path when the document does
// not set one.
func Parse(data []byte, dir string) (*Installation, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	inst := &Installation{}
	if err := dec.Decode(inst); err != nil {
		return nil, fmt.Errorf("load: parse installation configuration: %w", err)
	}
	inst.defaults(dir)
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (i *Installation) defaults(dir string) {
	if i.Path == "" {
		i.Path = dir
	} else if !filepath.IsAbs(i.Path) {
		i.Path = filepath.Join(dir, i.Path)
	}
	if i.StandardLibraryPath != "" && !filepath.IsAbs(i.StandardLibraryPath) {
		i.StandardLibraryPath = filepath.Join(dir, i.StandardLibraryPath)
	}
	for _, db := range i.Databases() {
		db.DSN = os.ExpandEnv(db.DSN)
		if name, err := dialect.Normalize(db.Dialect); err == nil {
			db.Dialect = name
		}
	}
	for _, w := range i.WebProjects {
		if w.Path == "" {
			w.Path = w.Name
		}
	}
}

// Validate checks the struct constraints and the cross-field rules: the
// primary database has no secondary name, every secondary database has
// one, and secondary names are unique ignoring case.
func (i *Installation) Validate() error {
	if err := newValidator().Struct(i); err != nil {
		return fmt.Errorf("load: invalid installation configuration: %w", err)
	}
	var errs []error
	if i.Database != nil && i.Database.SecondaryName != "" {
		errs = append(errs, errors.New("load: the primary database must not have a secondary name"))
	}
	fold := cases.Fold()
	seen := make(map[string]bool)
	for _, db := range i.SecondaryDatabases {
		if db.SecondaryName == "" {
			errs = append(errs, errors.New("load: every secondary database needs a secondary name"))
			continue
		}
		key := fold.String(db.SecondaryName)
		if seen[key] {
			errs = append(errs, fmt.Errorf("load: duplicate secondary database %q", db.SecondaryName))
		}
		seen[key] = true
	}
	projects := make(map[string]bool)
	for _, name := range i.projectNames() {
		key := fold.String(name)
		if projects[key] {
			errs = append(errs, fmt.Errorf("load: duplicate project %q", name))
		}
		projects[key] = true
	}
	return errors.Join(errs...)
}

func (i *Installation) projectNames() []string {
	names := []string{LibraryProject}
	for _, w := range i.WebProjects {
		names = append(names, w.Name)
	}
	for _, s := range i.WindowsServices {
		names = append(names, s.Name)
	}
	return names
}

// Databases returns the configured databases, primary first, then the
// secondary databases in configured order.
func (i *Installation) Databases() []*Database {
	var dbs []*Database
	if i.Database != nil {
		dbs = append(dbs, i.Database)
	}
	return append(dbs, i.SecondaryDatabases...)
}

// LibraryPath returns the path of the library project.
func (i *Installation) LibraryPath() string {
	return filepath.Join(i.Path, LibraryProject)
}

// ProjectPath returns the path of a project folder relative to the root.
func (i *Installation) ProjectPath(rel string) string {
	return filepath.Join(i.Path, filepath.FromSlash(rel))
}

// IsPrimary reports whether the database is the primary database.
func (d *Database) IsPrimary() bool {
	return d.SecondaryName == ""
}

// Description names the database in messages: "primary" or
// "<name> secondary".
func (d *Database) Description() string {
	if d.IsPrimary() {
		return "primary"
	}
	return d.SecondaryName + " secondary"
}

// DriverName returns the database/sql driver name for the dialect.
func (d *Database) DriverName() string {
	return d.Dialect
}

// Override returns the key override for a table, matched ignoring case.
func (d *Database) Override(table string) *TableOverride {
	fold := cases.Fold()
	key := fold.String(table)
	for _, t := range d.Tables {
		if fold.String(t.Name) == key {
			return t
		}
	}
	return nil
}
