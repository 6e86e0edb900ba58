package indexer

import (
	"fmt"
	"strings"
)

// CleanMetadata coerces metadata values to the scalar types the index
// storage accepts: nil becomes an empty string, lists are joined with
// "; ", strings, numbers and booleans pass through, anything else is
// stringified. Cleaning twice yields the same result as once.
func CleanMetadata(meta map[string]any) map[string]any {
	cleaned := make(map[string]any, len(meta))
	for k, v := range meta {
		cleaned[k] = cleanValue(v)
	}
	return cleaned
}

func cleanValue(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	case []string:
		return strings.Join(val, "; ")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprint(val)
	}
}
