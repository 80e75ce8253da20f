package codegen

import (
	"strings"
	"unicode"
)

// KebabCase converts a camelCase style property name to its CSS form. A
// hyphen is inserted before every uppercase letter that follows a lowercase
// letter or digit, then the whole string is lowercased
// (fontSize → font-size, objectFit → object-fit).
func KebabCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// PascalCase derives a class name from a slug id by splitting on '-' and '_'
// and capitalizing each segment (lower-third-demo → LowerThirdDemo).
func PascalCase(slug string) string {
	segments := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})

	var b strings.Builder
	for _, seg := range segments {
		r := []rune(seg)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

// TagName derives the custom-element tag the artifact registers itself under.
func TagName(manifestID string) string {
	return manifestID + "-graphic"
}
