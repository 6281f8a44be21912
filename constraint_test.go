package ewl_test

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/syssam/ewl"
)

func TestViolatedConstraint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ewl.Constraint
	}{
		{"Nil", nil, ewl.NoConstraint},
		{"Other", errors.New("connection refused"), ewl.NoConstraint},
		{"PostgresUnique", &pq.Error{Code: "23505"}, ewl.UniqueConstraint},
		{"PostgresForeignKey", &pq.Error{Code: "23503"}, ewl.ForeignKeyConstraint},
		{"PostgresCheck", &pq.Error{Code: "23514"}, ewl.CheckConstraint},
		{"PostgresOther", &pq.Error{Code: "42P01"}, ewl.NoConstraint},
		{"MySQLDuplicate", &mysql.MySQLError{Number: 1062}, ewl.UniqueConstraint},
		{"MySQLParent", &mysql.MySQLError{Number: 1451}, ewl.ForeignKeyConstraint},
		{"MySQLChild", &mysql.MySQLError{Number: 1452}, ewl.ForeignKeyConstraint},
		{"MySQLCheck", &mysql.MySQLError{Number: 3819}, ewl.CheckConstraint},
		{"SQLite", errors.New("UNIQUE constraint failed: Orders.OrderID"), ewl.UniqueConstraint},
		{"SQLiteForeignKey", errors.New("FOREIGN KEY constraint failed"), ewl.ForeignKeyConstraint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ewl.ViolatedConstraint(tt.err))
		})
	}
}

func TestConstraintThroughModificationError(t *testing.T) {
	err := &ewl.ModificationError{Table: "Orders", Action: "insert", Err: &pq.Error{Code: "23505"}}
	assert.True(t, ewl.IsConstraintError(err))
	assert.True(t, ewl.IsUniqueConstraintError(err))
	assert.False(t, ewl.IsForeignKeyConstraintError(err))
	assert.Equal(t, "unique", ewl.ViolatedConstraint(err).String())
	assert.Equal(t, "none", ewl.NoConstraint.String())
}
