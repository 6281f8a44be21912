package sql

// Field holds a column value of a modification together with whether it
// was set. Unset fields are left out of the generated INSERT and UPDATE
// statements.
type Field[T any] struct {
	value T
	set   bool
}

// Set assigns the value and marks the field as set.
func (f *Field[T]) Set(v T) {
	f.value = v
	f.set = true
}

// Clear resets the field to its unset state.
func (f *Field[T]) Clear() {
	var zero T
	f.value = zero
	f.set = false
}

// Value returns the current value, the zero value when unset.
func (f *Field[T]) Value() T { return f.value }

// IsSet reports whether Set was called since the last Clear.
func (f *Field[T]) IsSet() bool { return f.set }

// AppendTo appends the column assignment to vs when the field is set.
func (f *Field[T]) AppendTo(vs []Value, column string) []Value {
	if !f.set {
		return vs
	}
	return append(vs, Value{Column: column, Value: f.value})
}

// ListItem is one entry of a fill list generated from a row-constant table.
// Fill lists keep the configured row order and back selection controls.
type ListItem[T any] struct {
	Label string
	Value T
}
