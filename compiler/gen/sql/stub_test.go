package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ewl/compiler/load"
)

func TestGenStubs(t *testing.T) {
	src := newSource(t, &load.Database{SecondaryName: "Reporting"})
	stubs := genStubs(src, ordersTable())
	require.Len(t, stubs, 2)

	assert.Equal(t, "reportingorders_retrieval.go", stubs[0].Name)
	assert.Equal(t, "reportingorders_modification.go", stubs[1].Name)
	code := render(t, stubs[1].Code)
	assert.Contains(t, code, "func (m *ReportingOrdersModification) preExecute(ctx context.Context, db sql.Executor) error { return nil }")
	assert.Contains(t, code, "func (m *ReportingOrdersModification) postExecute(ctx context.Context, db sql.Executor) error { return nil }")
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, "sql", b.Name())

	src := newSource(t, &load.Database{})
	assert.NotEmpty(t, b.Conditions(src, ordersTable()))
	assert.Empty(t, b.Sequences(src))
	assert.Empty(t, b.Procedures(src))
	assert.Len(t, b.Stubs(src, ordersTable()), 2)
}
