package gen

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTool writes an executable shell script standing in for a schema
// compiler and returns its path.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "tool")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestSchemaCompilation_Package(t *testing.T) {
	c := &SchemaCompilation{Namespace: "example.com/shop/library/generated/orders"}
	assert.Equal(t, "orders", c.Package())
}

func TestXsdgen(t *testing.T) {
	// xsdgen -o <out> -pkg <pkg> <input>
	tool := fakeTool(t, `echo "package $4" > "$2"`)
	dir := t.TempDir()
	c := &SchemaCompilation{Input: "orders.xsd", OutputDir: dir, OutputName: "orders.go", Namespace: "example.com/x/orders"}

	out, err := (&Xsdgen{Path: tool}).Compile(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "orders.go"), out)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "package orders\n", string(data))
}

func TestXgen(t *testing.T) {
	// xgen -i <input> -o <dir> -l Go -p <pkg>
	tool := fakeTool(t, `echo "package $8" > "$4/$(basename "$2").go"`)
	dir := t.TempDir()
	c := &SchemaCompilation{Input: filepath.Join(dir, "menu.xsd"), OutputDir: dir, OutputName: "menu.go", Namespace: "example.com/x/menu"}

	out, err := (&Xgen{Path: tool}).Compile(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "menu.xsd.go"), out)
	assert.FileExists(t, out)
}

func TestCompileSchema(t *testing.T) {
	newGen := func(t *testing.T, opts ...Option) *Generator {
		opts = append([]Option{WithBuilder(traceBuilder{}), WithInstallation(parseInstallation(t, runYAML)), WithLogger(discardLogger())}, opts...)
		g, err := NewGenerator(opts...)
		require.NoError(t, err)
		return g
	}

	t.Run("RenamesOutput", func(t *testing.T) {
		tool := fakeTool(t, `echo "package $8" > "$4/$(basename "$2").go"`)
		dir := filepath.Join(t.TempDir(), "menu")
		c := &SchemaCompilation{Input: "menu.xsd", OutputDir: dir, OutputName: "menu.go", Namespace: "example.com/x/menu"}

		require.NoError(t, newGen(t).compileSchema(context.Background(), &Xgen{Path: tool}, c))
		assert.FileExists(t, filepath.Join(dir, "menu.go"))
		assert.NoFileExists(t, filepath.Join(dir, "menu.xsd.go"))
	})

	t.Run("RemovesStaleOutput", func(t *testing.T) {
		tool := fakeTool(t, `echo "invalid schema" >&2; exit 1`)
		dir := t.TempDir()
		stale := filepath.Join(dir, "orders.go")
		require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))
		c := &SchemaCompilation{Input: "orders.xsd", OutputDir: dir, OutputName: "orders.go", Namespace: "example.com/x/orders"}

		err := newGen(t).compileSchema(context.Background(), &Xsdgen{Path: tool}, c)
		require.Error(t, err)
		assert.True(t, IsUserCorrectable(err))
		var ce *CompilerError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "invalid schema\n", ce.Output)
		assert.NoFileExists(t, stale)
	})

	t.Run("MissingOutput", func(t *testing.T) {
		tool := fakeTool(t, `exit 0`)
		c := &SchemaCompilation{Input: "orders.xsd", OutputDir: t.TempDir(), OutputName: "orders.go", Namespace: "example.com/x/orders"}

		err := newGen(t).compileSchema(context.Background(), &Xsdgen{Path: tool}, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected output")
		assert.True(t, IsCompilerError(err))
	})

	t.Run("Timeout", func(t *testing.T) {
		tool := fakeTool(t, `exec sleep 5`)
		c := &SchemaCompilation{Input: "orders.xsd", OutputDir: t.TempDir(), OutputName: "orders.go", Namespace: "example.com/x/orders"}

		err := newGen(t, WithCompilerTimeout(50*time.Millisecond)).compileSchema(context.Background(), &Xsdgen{Path: tool}, c)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
