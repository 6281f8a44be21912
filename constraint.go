package ewl

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// Constraint is the kind of database constraint a modification violated.
type Constraint int

// Constraint kinds.
const (
	NoConstraint Constraint = iota
	UniqueConstraint
	ForeignKeyConstraint
	CheckConstraint
)

func (c Constraint) String() string {
	switch c {
	case UniqueConstraint:
		return "unique"
	case ForeignKeyConstraint:
		return "foreign key"
	case CheckConstraint:
		return "check"
	default:
		return "none"
	}
}

// Postgres SQLSTATE codes of class 23.
var pgConstraints = map[pq.ErrorCode]Constraint{
	"23505": UniqueConstraint,
	"23503": ForeignKeyConstraint,
	"23514": CheckConstraint,
}

// MySQL error numbers.
var mysqlConstraints = map[uint16]Constraint{
	1062: UniqueConstraint,
	1451: ForeignKeyConstraint, // parent row referenced
	1452: ForeignKeyConstraint, // parent row missing
	3819: CheckConstraint,
}

// SQLite reports constraints only through the message.
var sqliteConstraints = []struct {
	text string
	kind Constraint
}{
	{"UNIQUE constraint failed", UniqueConstraint},
	{"FOREIGN KEY constraint failed", ForeignKeyConstraint},
	{"CHECK constraint failed", CheckConstraint},
}

// ViolatedConstraint returns the kind of constraint violation that caused
// err, or NoConstraint. Driver errors are found anywhere in the chain, so a
// ModificationError returned by generated code can be passed directly.
func ViolatedConstraint(err error) Constraint {
	if err == nil {
		return NoConstraint
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pgConstraints[pqErr.Code]
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return mysqlConstraints[myErr.Number]
	}
	msg := err.Error()
	for _, c := range sqliteConstraints {
		if strings.Contains(msg, c.text) {
			return c.kind
		}
	}
	return NoConstraint
}

// IsConstraintError returns true if err resulted from a constraint violation.
func IsConstraintError(err error) bool {
	return ViolatedConstraint(err) != NoConstraint
}

// IsUniqueConstraintError returns true if err resulted from a duplicate key.
func IsUniqueConstraintError(err error) bool {
	return ViolatedConstraint(err) == UniqueConstraint
}

// IsForeignKeyConstraintError returns true if err resulted from a missing
// or still referenced parent row.
func IsForeignKeyConstraintError(err error) bool {
	return ViolatedConstraint(err) == ForeignKeyConstraint
}
