package gen

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// Bundle locations.
const (
	// GeneratedDir is the folder of generated code inside a project.
	GeneratedDir = "generated"
	// GeneratedPkg is the package name of generated code.
	GeneratedPkg = "generated"
	// BundleName is the file name of a project bundle.
	BundleName = "isu.go"
	// RetrievalStubSuffix and ModificationStubSuffix end the names of the
	// table stubs next to the library bundle.
	RetrievalStubSuffix    = "_retrieval.go"
	ModificationStubSuffix = "_modification.go"
)

// BundlePath returns the bundle path of the project rooted at dir.
func BundlePath(dir string) string {
	return filepath.Join(dir, GeneratedDir, BundleName)
}

// newFile creates a new Jennifer file of the generated package at
// importPath with the header comment.
func (g *Generator) newFile(importPath string) *jen.File {
	f := jen.NewFilePathName(importPath, GeneratedPkg)
	if g.config.Header != "" {
		f.HeaderComment(g.config.Header)
	}
	return f
}

// writeFile renders f and replaces the file at path with it. Rendering
// happens first so that a jennifer error leaves the old file in place.
func writeFile(phase, path string, f *jen.File) error {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return NewGenerationError(phase, path, "render", err)
	}
	return replaceFile(phase, path, buf.Bytes())
}

// writeSource formats Go source with goimports (unused imports removed,
// missing standard imports added) and replaces the file at path with it.
func writeSource(phase, path string, src []byte) error {
	formatted, err := imports.Process(path, src, nil)
	if err != nil {
		return NewGenerationError(phase, path, "format", err)
	}
	return replaceFile(phase, path, formatted)
}

// replaceFile deletes the file at path and creates it again with data.
// Generated files are never patched in place.
func replaceFile(phase, path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return wrapIOError(phase, path, err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return wrapIOError(phase, path, err)
	}
	return wrapIOError(phase, path, os.WriteFile(path, data, 0o644))
}

// writeStub creates the file at path only if it does not exist. It
// reports whether the file was created.
func writeStub(phase, path string, f *jen.File) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, wrapIOError(phase, path, err)
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return false, NewGenerationError(phase, path, "render", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, wrapIOError(phase, path, err)
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, wrapIOError(phase, path, err)
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		out.Close()
		return false, wrapIOError(phase, path, err)
	}
	return true, wrapIOError(phase, path, out.Close())
}

// staleStubs returns the stub files in dir that none of stubs produces,
// sorted by name. Their code refers to declarations the bundle no longer
// has.
func staleStubs(dir string, stubs []*Stub) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	current := make(map[string]bool, len(stubs))
	for _, st := range stubs {
		current[st.Name] = true
	}
	var stale []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || current[name] {
			continue
		}
		if strings.HasSuffix(name, RetrievalStubSuffix) || strings.HasSuffix(name, ModificationStubSuffix) {
			stale = append(stale, name)
		}
	}
	return stale, nil
}
