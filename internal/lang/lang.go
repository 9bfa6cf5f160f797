// Package lang describes the language that studio projects compile to.
//
// Asset names end up as identifiers in the generated source, so the
// editor must refuse names that collide with the language's reserved
// words. The table here is process-wide constant configuration; callers
// receive it as an injected read-only value rather than reaching for
// package globals.
package lang

import "slices"

// Grammar keywords of the target language.
var keywords = []string{
	"break", "case", "chan", "const", "continue",
	"default", "defer", "else", "fallthrough", "for",
	"func", "go", "goto", "if", "import",
	"interface", "map", "package", "range", "return",
	"select", "struct", "switch", "type", "var",
}

// Predeclared type names. Not keywords in the grammar, but a project
// asset declared with one of these shadows the builtin, so the editor
// reserves them alongside the keywords.
var typeKeywords = []string{
	"any", "bool", "byte", "comparable",
	"complex64", "complex128", "error",
	"float32", "float64",
	"int", "int8", "int16", "int32", "int64",
	"rune", "string",
	"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
}

// Table is an immutable reserved-word lookup split into the two sets the
// language defines: grammar keywords and predeclared type names.
type Table struct {
	keywords     map[string]struct{}
	typeKeywords map[string]struct{}
}

// Default returns the table for the studio's target language.
func Default() *Table {
	return New(nil)
}

// New builds a table from the builtin reserved words plus any extra words
// the caller wants treated as reserved, such as names claimed by a
// curriculum's runtime library. Extras are filed with the keywords.
func New(extra []string) *Table {
	t := &Table{
		keywords:     make(map[string]struct{}, len(keywords)+len(extra)),
		typeKeywords: make(map[string]struct{}, len(typeKeywords)),
	}
	for _, w := range keywords {
		t.keywords[w] = struct{}{}
	}
	for _, w := range typeKeywords {
		t.typeKeywords[w] = struct{}{}
	}
	for _, w := range extra {
		if w != "" {
			t.keywords[w] = struct{}{}
		}
	}
	return t
}

// IsKeyword reports whether name is a grammar keyword or an extra
// reserved word registered with New.
func (t *Table) IsKeyword(name string) bool {
	_, ok := t.keywords[name]
	return ok
}

// IsTypeKeyword reports whether name is a predeclared type name.
func (t *Table) IsTypeKeyword(name string) bool {
	_, ok := t.typeKeywords[name]
	return ok
}

// IsReserved reports whether name belongs to either set.
func (t *Table) IsReserved(name string) bool {
	return t.IsKeyword(name) || t.IsTypeKeyword(name)
}

// Words returns every reserved word in the table, sorted.
func (t *Table) Words() []string {
	words := make([]string, 0, len(t.keywords)+len(t.typeKeywords))
	for w := range t.keywords {
		words = append(words, w)
	}
	for w := range t.typeKeywords {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}
