package notifications

import (
	"fmt"
	"strconv"
	"strings"
)

// Metadata is the free-form payload attached to a notification. Fields are
// optional and type-unchecked at this layer; every accessor tolerates absent
// or oddly-typed values.
type Metadata map[string]any

// Has reports whether a key is present with a non-nil value.
func (m Metadata) Has(key string) bool {
	if m == nil {
		return false
	}
	v, ok := m[key]
	return ok && v != nil
}

// String returns the value under key coerced to a string, or "" when absent.
func (m Metadata) String(key string) string {
	if m == nil {
		return ""
	}
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprint(value)
	}
}

// StringList returns the value under key as a string slice. JSON arrays of
// mixed types are coerced element-wise; scalars and absent keys yield nil.
func (m Metadata) StringList(key string) []string {
	if m == nil {
		return nil
	}
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		switch value := item.(type) {
		case string:
			out = append(out, value)
		case nil:
			// skip
		default:
			out = append(out, fmt.Sprint(value))
		}
	}
	return out
}

// Money returns the value under key formatted as a dollar amount, or "" when
// the key is absent. String values pass through with a "$" prefix ensured;
// numeric values are rendered with two decimals.
func (m Metadata) Money(key string) string {
	if m == nil {
		return ""
	}
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch value := v.(type) {
	case string:
		value = strings.TrimSpace(value)
		if value == "" {
			return ""
		}
		if !strings.HasPrefix(value, "$") {
			return "$" + value
		}
		return value
	case float64:
		return "$" + strconv.FormatFloat(value, 'f', 2, 64)
	case int:
		return "$" + strconv.Itoa(value)
	default:
		return "$" + fmt.Sprint(value)
	}
}
