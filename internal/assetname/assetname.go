// Package assetname validates and derives identifier-safe names for the
// assets of a studio project: sprites, costumes, sounds and backdrops.
//
// Projects compile to source code in which asset names appear as
// identifiers, so a name must fit the identifier grammar, stay clear of
// the language's reserved words, and be unique within its scope. Sprite
// and sound names share one namespace inside a project; costume names are
// scoped to their sprite and backdrop names to the stage.
//
// Validation returns bilingual messages for the editor to display.
// Derivation turns arbitrary user input, typically an imported file name,
// into a valid unique name. Everything here is a pure function over
// caller-supplied snapshots; the package holds no state beyond the
// injected reserved-word table.
package assetname

import "github.com/fableworks/namekit/internal/lang"

// MaxNameLen is the longest accepted name, counted in runes.
const MaxNameLen = 100

// maxDerivedLen caps the length of names produced by Normalize, leaving
// room for uniqueness suffixes well under MaxNameLen.
const maxDerivedLen = 20

// Style selects the casing fragments are joined with when deriving a
// name from arbitrary input.
type Style int

const (
	// StyleCamel keeps the first fragment lowercase. Costume, sound and
	// backdrop names use it.
	StyleCamel Style = iota
	// StylePascal capitalizes the first fragment. Sprite names use it
	// because sprites surface as declared types in project code.
	StylePascal
)

// String returns the style tag used in configuration and logs.
func (s Style) String() string {
	switch s {
	case StyleCamel:
		return "camel"
	case StylePascal:
		return "pascal"
	default:
		return "unknown"
	}
}

// Fallback bases substituted when normalization of the caller's input
// comes up empty, e.g. for purely non-Latin input.
const (
	defaultSpriteBase   = "Sprite"
	defaultCostumeBase  = "costume"
	defaultSoundBase    = "sound"
	defaultBackdropBase = "backdrop"
)

// Options configures a Rules instance.
type Options struct {
	// Reserved supplies the reserved-word table of the target language.
	// Nil selects lang.Default().
	Reserved *lang.Table
}

// Rules validates and derives asset names against an injected
// reserved-word table. The zero Options value yields the standard rules.
type Rules struct {
	reserved *lang.Table
}

// New constructs a Rules instance.
func New(opts Options) *Rules {
	reserved := opts.Reserved
	if reserved == nil {
		reserved = lang.Default()
	}
	return &Rules{reserved: reserved}
}

// Reserved exposes the reserved-word table the rules were built with.
func (r *Rules) Reserved() *lang.Table {
	return r.reserved
}
