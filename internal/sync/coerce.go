package sync

import (
	"strconv"
	"time"
)

// CoerceDates deep-walks decoded JSON (maps, slices, scalars) and converts
// values under the named keys into time.Time. Records imported from other
// systems carry timestamps as RFC3339 strings, date-only strings, or epoch
// milliseconds; everything else passes through untouched. The walk recurses
// into every nested map and slice so nested records are coerced too.
func CoerceDates(value any, fields []string) any {
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return coerce(value, set)
}

func coerce(value any, fields map[string]bool) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			if fields[key] {
				if t, ok := parseDate(val); ok {
					out[key] = t
					continue
				}
			}
			out[key] = coerce(val, fields)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = coerce(item, fields)
		}
		return out
	default:
		return value
	}
}

func parseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
		// Some exporters serialize epoch milliseconds as strings.
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil && ms > 0 {
			return time.UnixMilli(ms).UTC(), true
		}
	case float64:
		// JSON numbers decode as float64; treat as epoch milliseconds.
		if v > 0 {
			return time.UnixMilli(int64(v)).UTC(), true
		}
	case int64:
		if v > 0 {
			return time.UnixMilli(v).UTC(), true
		}
	case time.Time:
		return v, true
	}
	return time.Time{}, false
}
