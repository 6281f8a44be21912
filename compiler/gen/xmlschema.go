package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path"
	"path/filepath"
)

// SchemaCompilation describes one XML schema to compile.
type SchemaCompilation struct {
	// Input is the path of the schema.
	Input string
	// OutputDir receives the generated file.
	OutputDir string
	// OutputName is the requested file name inside OutputDir.
	OutputName string
	// Namespace is the import path of the generated package.
	Namespace string
}

// Package returns the package name of the generated code.
func (c *SchemaCompilation) Package() string {
	return path.Base(c.Namespace)
}

// SchemaCompiler turns an XML schema into Go types.
type SchemaCompiler interface {
	// Name identifies the compiler in messages.
	Name() string
	// Compile compiles the schema and returns the path of the file it
	// wrote, which may differ from the requested output name.
	Compile(ctx context.Context, c *SchemaCompilation) (string, error)
}

// Xsdgen compiles schemas with aqwari.net/xml/cmd/xsdgen, which writes the
// requested file directly.
type Xsdgen struct {
	// Path of the executable; "xsdgen" when empty.
	Path string
}

// Name implements SchemaCompiler.
func (*Xsdgen) Name() string { return "xsdgen" }

// Compile implements SchemaCompiler.
func (x *Xsdgen) Compile(ctx context.Context, c *SchemaCompilation) (string, error) {
	out := filepath.Join(c.OutputDir, c.OutputName)
	err := run(ctx, orDefault(x.Path, "xsdgen"), "-o", out, "-pkg", c.Package(), c.Input)
	return out, err
}

// Xgen compiles schemas with github.com/xuri/xgen/cmd/xgen, which names
// its output after the schema file.
type Xgen struct {
	// Path of the executable; "xgen" when empty.
	Path string
}

// Name implements SchemaCompiler.
func (*Xgen) Name() string { return "xgen" }

// Compile implements SchemaCompiler.
func (x *Xgen) Compile(ctx context.Context, c *SchemaCompilation) (string, error) {
	out := filepath.Join(c.OutputDir, filepath.Base(c.Input)+".go")
	err := run(ctx, orDefault(x.Path, "xgen"), "-i", c.Input, "-o", c.OutputDir, "-l", "Go", "-p", c.Package())
	return out, err
}

// toolError carries the combined output of a failed tool.
type toolError struct {
	output string
	err    error
}

func (e *toolError) Error() string { return e.err.Error() }
func (e *toolError) Unwrap() error { return e.err }

func run(ctx context.Context, name string, args ...string) error {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", err, ctx.Err())
		}
		return &toolError{output: out.String(), err: err}
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// compileSchema runs the compiler with the configured timeout, then moves
// the output to the requested name when the tool chose another one.
func (g *Generator) compileSchema(ctx context.Context, comp SchemaCompiler, c *SchemaCompilation) error {
	ctx, cancel := context.WithTimeout(ctx, g.config.CompilerTimeout)
	defer cancel()
	fail := func(err error) error {
		ce := &CompilerError{Schema: c.Input, Tool: comp.Name(), Cause: err}
		var te *toolError
		if errors.As(err, &te) {
			ce.Output = te.output
		}
		return ce
	}
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fail(err)
	}
	want := filepath.Join(c.OutputDir, c.OutputName)
	// The tools may refuse to overwrite, and a stale file must not survive
	// a failed compilation.
	if err := os.Remove(want); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fail(err)
	}
	got, err := comp.Compile(ctx, c)
	if err != nil {
		return fail(err)
	}
	if _, err := os.Stat(got); err != nil {
		return fail(fmt.Errorf("expected output %s: %w", got, err))
	}
	if filepath.Clean(got) != filepath.Clean(want) {
		if err := os.Rename(got, want); err != nil {
			return fail(err)
		}
	}
	return nil
}
