// internal/catalog/coerce.go
package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Display defaults for absent or unparseable cells.
const (
	DefaultCompany  = "Company"
	DefaultDuration = "3 months"
	DefaultCategory = "Technology"
	DefaultStipend  = 0
)

// Int parses an integer cell. Decimal values such as "5000.0" are truncated.
// Anything else yields def.
func Int(raw string, def int) int {
	if n, ok := parseInt(raw); ok {
		return n
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(f)
	}
	return def
}

// OptionalInt returns nil unless the cell holds an integral value.
func OptionalInt(raw string) *int {
	if n, ok := parseInt(raw); ok {
		return &n
	}
	return nil
}

func parseInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// String returns the trimmed cell or def when it is empty.
func String(raw, def string) string {
	if s := strings.TrimSpace(raw); s != "" {
		return s
	}
	return def
}

// List splits a comma-delimited cell into trimmed, non-empty tokens, keeping
// their original case. Always non-nil.
func List(raw string) []string {
	out := []string{}
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// TokenSet lowercases and trims every comma-separated token. An empty cell is
// an empty set; otherwise empty tokens (from "a,,b") are kept as members.
func TokenSet(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	if raw == "" {
		return set
	}
	for _, tok := range strings.Split(raw, ",") {
		set[Normalize(tok)] = struct{}{}
	}
	return set
}

// FirstToken returns the first comma-separated token of raw, or def.
func FirstToken(raw, def string) string {
	if raw == "" {
		return def
	}
	first, _, _ := strings.Cut(raw, ",")
	return String(first, def)
}

// CanonicalID is the string form a stored identifier is indexed under:
// integral values render without padding or fraction ("012" and "12.0"
// both become "12").
func CanonicalID(raw string) string {
	if n, ok := parseInt(raw); ok {
		return strconv.Itoa(n)
	}
	return strings.TrimSpace(raw)
}

// AnyString converts a decoded JSON value into a string. nil becomes "".
func AnyString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// AnyStringList converts a decoded JSON value into a list of strings. Arrays
// map element-wise; a bare string is treated as a comma-delimited list.
func AnyStringList(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		return val
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, AnyString(item))
		}
		return out
	case string:
		return List(val)
	default:
		return []string{AnyString(val)}
	}
}

// Normalize trims and lowercases s for case-insensitive comparisons.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
