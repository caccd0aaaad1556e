package source

import (
	"fmt"
	"time"
)

// Record is the flat key-value shape every relational read produces. Column
// values are scalars (strings, numbers, bools, times) or nil for SQL NULL;
// denormalized foreign keys from joined parent records arrive as plain
// columns like any other.
type Record map[string]any

// Has reports whether the field is present with a non-nil value.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// Value returns the raw field value, nil when absent.
func (r Record) Value(field string) any {
	return r[field]
}

// String returns the field rendered as a string, "" when absent or nil.
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", s)
	}
}
