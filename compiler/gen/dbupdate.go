package gen

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// updateDatabase applies the database update script of the library to the
// primary database when the script exists.
func (g *Generator) updateDatabase(ctx context.Context) error {
	inst := g.config.Installation
	path := filepath.Join(inst.LibraryPath(), DatabaseUpdateScript)
	script, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		g.config.Logger.Debug("no database update script", "file", path)
		return nil
	case err != nil:
		return wrapIOError("database update", path, err)
	case inst.Database == nil:
		return &UserCorrectableError{Message: "database update: " + path + " exists but the installation has no primary database"}
	}
	db := inst.Database
	ctx, cancel := context.WithTimeout(ctx, g.config.IntrospectionTimeout)
	defer cancel()
	ix, err := g.config.Opener(ctx, db)
	if err != nil {
		return &DatabaseError{Database: db.Description(), Cause: err}
	}
	defer ix.Close()
	sr, ok := ix.(ScriptRunner)
	if !ok {
		return &DatabaseError{Database: db.Description(), Cause: errors.New("connection cannot apply " + path)}
	}
	if err := sr.ApplyScript(ctx, string(script)); err != nil {
		return &DatabaseError{Database: db.Description(), Cause: err}
	}
	g.config.Logger.Info("database updated", "database", db.Description(), "file", path)
	return nil
}
