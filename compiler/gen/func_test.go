package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPascal(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"order_id", "OrderID"},
		{"OrderID", "OrderID"},
		{"order id", "OrderID"},
		{"ORDERS", "Orders"},
		{"customerName", "CustomerName"},
		{"HTMLBody", "HTMLBody"},
		{"api_url", "APIURL"},
		{"Line2Total", "Line2Total"},
		{"2_codes", "N2Codes"},
		{"On Hold", "OnHold"},
		{"", ""},
		{"__", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Pascal(tt.in))
		})
	}
}

func TestCamel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"OrderID", "orderID"},
		{"customer_name", "customerName"},
		{"before", "before"},
		{"type", "type_"},
		{"range", "range_"},
		{"ctx", "ctx_"},
		{"DB", "db_"},
		{"Rows", "rows_"},
		{"1st", "n1st"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Camel(tt.in))
		})
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"Order", "ID"}, words("OrderID"))
	assert.Equal(t, []string{"HTML", "Body"}, words("HTMLBody"))
	assert.Equal(t, []string{"line", "2", "total"}, words("line2_total"))
	assert.Empty(t, words("--"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Primary", capitalize("primary"))
	assert.Equal(t, "Reporting secondary", capitalize("Reporting secondary"))
	assert.Equal(t, "", capitalize(""))
}
