package schema

import (
	"context"
	"fmt"

	"ariga.io/atlas/sql/migrate"

	"github.com/syssam/ewl/dialect/sql"
)

// ApplyScript runs the statements of a SQL script in one transaction.
// Nothing is applied when a statement fails.
func (i *Inspector) ApplyScript(ctx context.Context, script string) (rerr error) {
	stmts, err := migrate.Stmts(script)
	if err != nil {
		return fmt.Errorf("schema: scan script: %w", err)
	}
	if len(stmts) == 0 {
		return nil
	}
	tx, err := i.drv.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("schema: begin script transaction: %w", err)
	}
	defer func() {
		if rerr != nil {
			_ = tx.Rollback()
		}
	}()
	if err := applyStmts(ctx, tx, stmts); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("schema: commit script: %w", err)
	}
	i.logger.Info("database script applied", "dialect", i.Dialect(), "statements", len(stmts))
	return nil
}

func applyStmts(ctx context.Context, ex sql.ExecQuerier, stmts []*migrate.Stmt) error {
	for n, s := range stmts {
		if _, err := ex.ExecContext(ctx, s.Text); err != nil {
			return fmt.Errorf("schema: script statement %d: %w", n+1, err)
		}
	}
	return nil
}
