package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSchema(t *testing.T) {
	tables := []*Table{
		{Name: "Orders", Columns: []*Column{
			{Name: "OrderID", Type: TypeInt64, PrimaryKey: true},
			{Name: "orderid", Type: TypeInt64},
		}},
		{Name: "ORDERS", Columns: []*Column{
			{Name: "Shape", DatabaseType: "geometry", Type: TypeAny},
		}},
	}
	r := ValidateSchema(tables)
	assert.True(t, r.HasErrors())
	assert.True(t, r.HasWarnings())
	assert.Len(t, r.Errors, 2)
	assert.Equal(t, "Orders.orderid: duplicate column name", r.Errors[0].Error())
	assert.Equal(t, "ORDERS: duplicate table name", r.Errors[1].Error())
	assert.Len(t, r.Warnings, 2)
	assert.Contains(t, r.String(), "table has no primary key")
	assert.Contains(t, r.String(), `type "geometry" has no Go mapping`)
}

func TestValidateClean(t *testing.T) {
	r := ValidateSchema([]*Table{{Name: "T", Columns: []*Column{{Name: "ID", Type: TypeInt64, PrimaryKey: true}}}})
	assert.False(t, r.HasErrors())
	assert.False(t, r.HasWarnings())
	assert.Equal(t, "No issues found", r.String())
}

func TestTypeFromName(t *testing.T) {
	tests := map[string]GoType{
		"INTEGER":                     TypeInt64,
		"int4":                        TypeInt64,
		"bigserial":                   TypeInt64,
		"varchar(40)":                 TypeString,
		"character varying":           TypeString,
		"timestamp without time zone": TypeTime,
		"numeric(10,2)":               TypeFloat64,
		"boolean":                     TypeBool,
		"bytea":                       TypeBytes,
		"jsonb":                       TypeJSON,
		"interval":                    TypeString,
		"point":                       TypeAny,
		"":                            TypeAny,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, typeFromName(in))
		})
	}
}

func TestGoTypeString(t *testing.T) {
	assert.Equal(t, "time.Time", TypeTime.String())
	assert.Equal(t, "json.RawMessage", TypeJSON.String())
	assert.Equal(t, "[]byte", TypeBytes.String())
	assert.True(t, TypeString.Constant())
	assert.False(t, TypeTime.Constant())
}
