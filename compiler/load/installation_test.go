package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile(t *testing.T) {
	t.Setenv("EWL_TEST_DSN", "postgres://shop@localhost/shop")
	inst, err := File(filepath.Join("testdata", FileName))
	require.NoError(t, err)

	abs, err := filepath.Abs("testdata")
	require.NoError(t, err)
	assert.Equal(t, abs, inst.Path)
	assert.Equal(t, "Shop", inst.SystemShortName)
	assert.Equal(t, "example.com/shop/library", inst.LibraryNamespace)
	assert.Equal(t, filepath.Join(abs, "Library"), inst.LibraryPath())

	require.NotNil(t, inst.Database)
	assert.Equal(t, "postgres://shop@localhost/shop", inst.Database.DSN)
	assert.Equal(t, []string{"Orders"}, inst.Database.RevisionHistoryTables)
	require.NotNil(t, inst.Database.EveryTableHasKey)
	assert.True(t, *inst.Database.EveryTableHasKey)
	require.Len(t, inst.Database.Queries, 1)
	assert.Equal(t, "WHERE CustomerId = @customer", inst.Database.Queries[0].PostSelectFromClauses[0].Value)

	dbs := inst.Databases()
	require.Len(t, dbs, 2)
	assert.True(t, dbs[0].IsPrimary())
	assert.Equal(t, "primary", dbs[0].Description())
	assert.Equal(t, "Reporting secondary", dbs[1].Description())
	assert.Equal(t, "sqlite", dbs[1].DriverName())

	require.Len(t, inst.WebProjects, 2)
	assert.Equal(t, "Web", inst.WebProjects[0].Path)
	assert.Equal(t, filepath.Join(abs, "Sites", "Admin"), inst.ProjectPath(inst.WebProjects[1].Path))
	require.Len(t, inst.XMLSchemas, 1)
	assert.False(t, inst.XMLSchemas[0].UseXgen)
}

func TestFileMissing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), FileName))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse(t *testing.T) {
	t.Run("Minimal", func(t *testing.T) {
		inst, err := Parse([]byte("system_short_name: S\nlibrary_namespace: example.com/s\n"), "/srv/s")
		require.NoError(t, err)
		assert.Equal(t, "/srv/s", inst.Path)
		assert.Nil(t, inst.Database)
		assert.Empty(t, inst.Databases())
		assert.Empty(t, inst.WebProjects)
	})
	t.Run("RelativePath", func(t *testing.T) {
		inst, err := Parse([]byte("path: inst\nsystem_short_name: S\nlibrary_namespace: example.com/s\n"), "/srv")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/srv", "inst"), inst.Path)
	})
	t.Run("RelativeStandardLibraryPath", func(t *testing.T) {
		inst, err := Parse([]byte("standard_library_path: ../ewl\nsystem_short_name: S\nlibrary_namespace: example.com/s\n"), "/srv/s")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/srv", "ewl"), inst.StandardLibraryPath)
	})
	t.Run("DialectAlias", func(t *testing.T) {
		inst, err := Parse([]byte(`
system_short_name: S
library_namespace: example.com/s
database: {dialect: sqlite3, dsn: "file:x.db"}
`), "/srv")
		require.NoError(t, err)
		assert.Equal(t, "sqlite", inst.Database.Dialect)
	})
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{"MissingNamespace", "system_short_name: S\n", "LibraryNamespace"},
		{"UnknownField", "system_short_name: S\nlibrary_namespace: x\nbogus: 1\n", "bogus"},
		{"BadDialect", "system_short_name: S\nlibrary_namespace: x\ndatabase: {dialect: oracle, dsn: x}\n", "Dialect"},
		{"PrimaryWithSecondaryName", "system_short_name: S\nlibrary_namespace: x\ndatabase: {secondary_name: Main, dialect: sqlite, dsn: x}\n", "primary database"},
		{"SecondaryWithoutName", "system_short_name: S\nlibrary_namespace: x\nsecondary_databases: [{dialect: sqlite, dsn: x}]\n", "secondary name"},
		{"DuplicateSecondary", "system_short_name: S\nlibrary_namespace: x\nsecondary_databases: [{secondary_name: A, dialect: sqlite, dsn: x}, {secondary_name: a, dialect: sqlite, dsn: y}]\n", `duplicate secondary database "a"`},
		{"BadQueryName", "system_short_name: S\nlibrary_namespace: x\ndatabase: {dialect: sqlite, dsn: x, queries: [{name: '1st', select_from: SELECT 1}]}\n", "ident"},
		{"EmptyModification", "system_short_name: S\nlibrary_namespace: x\ndatabase: {dialect: sqlite, dsn: x, custom_modifications: [{name: M}]}\n", "Commands"},
		{"DuplicateProject", "system_short_name: S\nlibrary_namespace: x\nweb_projects: [{name: library, namespace: x}]\n", `duplicate project "library"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "/srv")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestOverride(t *testing.T) {
	yes := true
	db := &Database{Tables: []*TableOverride{{Name: "AuditLog", HasKey: &yes}}}
	o := db.Override("auditlog")
	require.NotNil(t, o)
	assert.Equal(t, "AuditLog", o.Name)
	assert.Nil(t, db.Override("Orders"))
}
