// Package interpolate substitutes {{name}} placeholders in element content
// with live data values.
package interpolate

import (
	"fmt"
	"regexp"
	"strconv"
)

var tokenRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_-]+)\s*\}\}`)

// Apply replaces every {{name}} token in s with the value data holds for
// name. Tokens with no matching key are left verbatim; Apply never fails.
func Apply(s string, data map[string]any) string {
	if s == "" || len(data) == 0 {
		return s
	}
	return tokenRe.ReplaceAllStringFunc(s, func(match string) string {
		name := tokenRe.FindStringSubmatch(match)[1]
		v, ok := data[name]
		if !ok {
			return match
		}
		return formatValue(v)
	})
}

// Tokens returns the placeholder names found in s, in order of appearance,
// without duplicates.
func Tokens(s string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range tokenRe.FindAllStringSubmatch(s, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}
