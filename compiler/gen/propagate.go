package gen

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/syssam/ewl/compiler/load"
)

// Static file propagation.
const (
	// FrameworkDir is the folder of framework files inside the
	// distribution and inside every web project.
	FrameworkDir = "ewf"
	// NamespaceToken is replaced with the web project namespace in
	// propagated text files.
	NamespaceToken = "github.com/syssam/ewl/ewf"
	// StandardLibraryFiles is the manifest of standard library files.
	StandardLibraryFiles = "standard-library-files.txt"
	// LibraryFilesDir receives the license file inside the library.
	LibraryFilesDir = "files"
)

// tokenExtensions are the extensions of files whose namespace token is
// replaced while copying.
var tokenExtensions = []string{".go", ".html", ".tmpl", ".gohtml", ".js"}

// propagate copies the static framework files into the installation.
func (g *Generator) propagate() error {
	inst := g.config.Installation
	if lic := g.config.LicenseFile; lic != "" {
		dst := filepath.Join(inst.LibraryPath(), LibraryFilesDir, filepath.Base(lic))
		if err := copyFile(lic, dst, nil); err != nil {
			return wrapIOError("propagation", dst, err)
		}
	}
	dist := g.config.DistributionPath
	if dist == "" {
		g.config.Logger.Debug("no distribution path, framework files not propagated")
		return nil
	}
	for _, w := range inst.WebProjects {
		if err := propagateWeb(dist, inst.ProjectPath(w.Path), w); err != nil {
			return err
		}
	}
	return nil
}

func propagateWeb(dist, dir string, w *load.WebProject) error {
	src, dst := filepath.Join(dist, FrameworkDir), filepath.Join(dir, FrameworkDir)
	if err := os.RemoveAll(dst); err != nil {
		return wrapIOError("propagation", dst, err)
	}
	ns := []byte(w.Namespace + "/" + FrameworkDir)
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		var replace func([]byte) []byte
		if slices.Contains(tokenExtensions, strings.ToLower(filepath.Ext(path))) {
			replace = func(b []byte) []byte { return bytes.ReplaceAll(b, []byte(NamespaceToken), ns) }
		}
		return copyFile(path, target, replace)
	})
	if err != nil {
		return wrapIOError("propagation", dst, err)
	}
	manifest := filepath.Join(dir, StandardLibraryFiles)
	err = copyFile(filepath.Join(dist, StandardLibraryFiles), manifest, nil)
	if errors.Is(err, fs.ErrNotExist) {
		// The manifest is optional.
		return nil
	}
	return wrapIOError("propagation", manifest, err)
}

// copyFile replaces dst with the content of src, passed through replace
// when not nil.
func copyFile(src, dst string, replace func([]byte) []byte) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if replace != nil {
		data = replace(data)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
