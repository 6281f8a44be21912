package sql

import "context"

// Action names the kind of modification being executed.
type Action string

// Modification actions.
const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Revision describes one modification of a revision-history table.
type Revision struct {
	Table             string
	Action            Action
	Key               []any
	UserTransactionID int64
}

// RevisionRecorder records revisions for tables listed as revision-history
// tables. Generated modifications of those tables call RecordRevision after
// the statement succeeds, using the same Executor.
type RevisionRecorder interface {
	RecordRevision(ctx context.Context, ex Executor, r *Revision) error
}

// RevisionRecorderFunc adapts a function to RevisionRecorder.
type RevisionRecorderFunc func(context.Context, Executor, *Revision) error

// RecordRevision calls f(ctx, ex, r).
func (f RevisionRecorderFunc) RecordRevision(ctx context.Context, ex Executor, r *Revision) error {
	return f(ctx, ex, r)
}
