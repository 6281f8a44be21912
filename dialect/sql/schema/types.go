package schema

import (
	"reflect"
	"strings"
	"time"

	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
)

// goType maps an atlas column type to a Go type.
func goType(t schema.Type) GoType {
	switch t := t.(type) {
	case *schema.IntegerType:
		return TypeInt64
	case *schema.BoolType:
		return TypeBool
	case *schema.FloatType, *schema.DecimalType:
		return TypeFloat64
	case *schema.StringType, *schema.EnumType, *schema.UUIDType:
		return TypeString
	case *schema.TimeType:
		return TypeTime
	case *schema.BinaryType:
		return TypeBytes
	case *schema.JSONType:
		return TypeJSON
	case *postgres.SerialType:
		return TypeInt64
	case *schema.UnsupportedType:
		return typeFromName(t.T)
	default:
		return TypeAny
	}
}

// typeFromName maps a database type name, as reported by a driver or by
// information_schema, to a Go type.
func typeFromName(name string) GoType {
	n := strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(n, '('); i > 0 {
		n = strings.TrimSpace(n[:i])
	}
	switch {
	case n == "":
		return TypeAny
	case n == "bool", n == "boolean", n == "bit":
		return TypeBool
	case n == "interval":
		return TypeString
	case strings.Contains(n, "point"):
		return TypeAny
	case strings.Contains(n, "int"), n == "serial", n == "bigserial", n == "smallserial":
		return TypeInt64
	case n == "real", n == "double", n == "double precision", n == "float", n == "float4", n == "float8",
		n == "numeric", n == "decimal", n == "money":
		return TypeFloat64
	case strings.Contains(n, "char"), strings.Contains(n, "text"), strings.Contains(n, "clob"),
		n == "uuid", n == "enum", n == "citext", n == "name":
		return TypeString
	case strings.HasPrefix(n, "timestamp"), n == "date", n == "datetime", n == "time",
		strings.HasPrefix(n, "time "):
		return TypeTime
	case n == "json", n == "jsonb":
		return TypeJSON
	case strings.Contains(n, "blob"), n == "bytea", strings.Contains(n, "binary"):
		return TypeBytes
	default:
		return TypeAny
	}
}

var (
	timeType  = reflect.TypeOf(time.Time{})
	bytesType = reflect.TypeOf([]byte(nil))
)

// typeFromScanType maps the scan type reported by a driver to a Go type.
func typeFromScanType(t reflect.Type) GoType {
	if t == nil {
		return TypeAny
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch {
	case t == timeType:
		return TypeTime
	case t == bytesType:
		return TypeBytes
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return TypeInt64
	case reflect.Float32, reflect.Float64:
		return TypeFloat64
	case reflect.Bool:
		return TypeBool
	case reflect.String:
		return TypeString
	default:
		return TypeAny
	}
}
