package gen

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titler = cases.Title(language.Und, cases.NoLower)

// pascal derives an exported Go identifier from a SQL or accessor name.
// Underscore- and dash-separated names are camelized; names that already
// carry their own casing only get their first letter raised. A leading digit
// cannot start an identifier and gets an "X" prefix.
func pascal(name string) string {
	if name == "" {
		return ""
	}
	var out string
	if strings.ContainsAny(name, "_-") {
		out = inflect.Camelize(strings.ReplaceAll(name, "-", "_"))
	} else {
		out = titler.String(name[:1]) + name[1:]
	}
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		out = "X" + out
	}
	return out
}

// sanitize strips characters that cannot appear in a Go identifier,
// replacing runs of them with a single underscore.
func sanitize(name string) string {
	var b strings.Builder
	lastHole := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			lastHole = false
		default:
			if !lastHole {
				b.WriteRune('_')
				lastHole = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

// fieldName derives the snapshot field name for an element: its sanitized
// logical name in exported form plus the kind suffix.
func fieldName(logical, kindSuffix string) string {
	base := pascal(sanitize(logical))
	if base == "" {
		base = "Unnamed"
	}
	return base + kindSuffix
}
