package assetname

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// Runs of anything outside the ASCII word alphabet collapse to one
	// underscore. CJK input is dropped here on purpose: derived names
	// must survive keyboards without an input method, so derivation
	// stays ASCII even though validation accepts CJK.
	nonWordRuns = regexp.MustCompile(`[^a-zA-Z0-9_]+`)
	// An underscore before each uppercase letter marks word boundaries
	// of camel-cased input before everything is lowercased.
	upperBoundaries = regexp.MustCompile(`([A-Z])`)
	// Identifiers must start with a letter; leading digits and
	// underscores are shed.
	leadingNonLetters = regexp.MustCompile(`^[^a-zA-Z]+`)
)

// Normalize maps arbitrary input, typically an imported file name, to an
// identifier-shaped base in the requested style. The result may be empty
// when the input carries no usable word fragments; callers substitute a
// kind-specific default in that case. Output is at most 20 runes so that
// uniqueness suffixes keep the final name comfortably within limits.
func Normalize(src string, style Style) string {
	s := nonWordRuns.ReplaceAllString(src, "_")
	s = upperBoundaries.ReplaceAllString(s, "_$1")
	s = strings.ToLower(s)
	s = leadingNonLetters.ReplaceAllString(s, "")

	var words []string
	for _, w := range strings.Split(s, "_") {
		if w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	for i, w := range words {
		if i == 0 && style == StyleCamel {
			b.WriteString(w)
			continue
		}
		b.WriteString(upperFirst(w))
	}

	name := b.String()
	if utf8.RuneCountInString(name) > maxDerivedLen {
		name = string([]rune(name)[:maxDerivedLen])
	}
	return name
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
