package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/ewl/compiler/gen"
	"github.com/syssam/ewl/compiler/load"
	"github.com/syssam/ewl/dialect/sql/schema"
)

func TestGenModification(t *testing.T) {
	src := newSource(t, &load.Database{})
	code := render(t, genModification(src, ordersTable()))

	t.Run("Type", func(t *testing.T) {
		assert.Contains(t, code, "type OrdersModification struct { action sql.Action conds []OrdersCondition values struct {")
		assert.Contains(t, code, "Notes sql.Field[*string]")
		assert.Contains(t, code, "Placed sql.Field[time.Time]")
		assert.NotContains(t, code, "recorder")
	})
	t.Run("Constructors", func(t *testing.T) {
		assert.Contains(t, code, "func NewOrdersInsert() *OrdersModification")
		assert.Contains(t, code, "action: sql.ActionInsert")
		assert.Contains(t, code, "func NewOrdersUpdate(cond OrdersCondition, more ...OrdersCondition) *OrdersModification")
		assert.Contains(t, code, "func NewOrdersDelete(cond OrdersCondition, more ...OrdersCondition) *OrdersModification")
		assert.Contains(t, code, "conds: append([]OrdersCondition{cond}, more...)")
	})
	t.Run("Setters", func(t *testing.T) {
		assert.Contains(t, code, "func (m *OrdersModification) SetNotes(v *string) *OrdersModification { m.values.Notes.Set(v) return m }")
		assert.Contains(t, code, "vs = m.values.Placed.AppendTo(vs, OrdersPlacedColumn)")
	})
	t.Run("Execute", func(t *testing.T) {
		assert.Contains(t, code, "func (m *OrdersModification) Execute(ctx context.Context, db sql.Executor) (int64, error)")
		assert.Contains(t, code, "m.preExecute(ctx, db)")
		assert.Contains(t, code, "m.postExecute(ctx, db)")
		assert.Contains(t, code, "Returning: OrdersOrderIDColumn")
		assert.Contains(t, code, "m.values.OrderID.Set(id)")
		assert.Contains(t, code, "&ewl.ModificationError{")
		assert.Contains(t, code, "Action: string(m.action)")
		assert.NotContains(t, code, "RecordRevision")
	})
}

func TestGenModification_RevisionHistory(t *testing.T) {
	src := newSource(t, &load.Database{RevisionHistoryTables: []string{"orderlines"}})
	code := render(t, genModification(src, orderLinesTable()))

	assert.Contains(t, code, "recorder sql.RevisionRecorder userTransactionID int64")
	assert.Contains(t, code, "func NewOrderLinesInsert(recorder sql.RevisionRecorder, userTransactionID int64) *OrderLinesModification")
	assert.Contains(t, code, "func NewOrderLinesDelete(recorder sql.RevisionRecorder, userTransactionID int64, cond OrderLinesCondition, more ...OrderLinesCondition) *OrderLinesModification")
	assert.Contains(t, code, "m.recorder.RecordRevision(ctx, db, &sql.Revision{")
	assert.Contains(t, code, "Key: m.key()")
	assert.Contains(t, code, "func (m *OrderLinesModification) key() []any")
	assert.Contains(t, code, "if m.values.OrderID.IsSet() && m.values.LineNumber.IsSet() { return []any{m.values.OrderID.Value(), m.values.LineNumber.Value()} }")
	assert.Contains(t, code, "case OrderLinesOrderIDColumn, OrderLinesLineNumberColumn:")
	// No identity column: the insert result is discarded.
	assert.NotContains(t, code, "Returning:")
}

func TestReturnedIdentity(t *testing.T) {
	tests := []struct {
		name   string
		column *gen.Column
		want   bool
	}{
		{"Int64", &gen.Column{Name: "ID", Type: schema.TypeInt64, Identity: true}, true},
		{"NotIdentity", &gen.Column{Name: "ID", Type: schema.TypeInt64}, false},
		{"Nullable", &gen.Column{Name: "ID", Type: schema.TypeInt64, Identity: true, Nullable: true}, false},
		{"String", &gen.Column{Name: "ID", Type: schema.TypeString, Identity: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := returnedIdentity(&gen.Table{Name: "T", Columns: []*gen.Column{tt.column}})
			assert.Equal(t, tt.want, got != nil)
		})
	}
}
