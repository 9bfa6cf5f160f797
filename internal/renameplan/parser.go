// Package renameplan parses and applies batch rename plans.
//
// A plan is a small line-oriented script, one rename per line:
//
//	# promote the placeholder names
//	sprite "Old Hero" -> "Hero"
//	sound "pop!" -> "pop"
//	backdrop "night" -> "nightSky"
//	costume "Hero" "walk 1" -> "walk1"
//
// Costume renames name the owning sprite first. Blank lines and # comments
// are ignored.
package renameplan

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Plan is a parsed rename script.
type Plan struct {
	Statements []*Statement `parser:"@@*"`
}

// Statement is one rename line.
type Statement struct {
	Costume *CostumeRename `parser:"( @@"`
	Asset   *AssetRename   `parser:"| @@ )"`
}

// CostumeRename renames a costume within its owning sprite.
type CostumeRename struct {
	Sprite string `parser:"\"costume\" @String"`
	From   string `parser:"@String"`
	To     string `parser:"\"->\" @String"`
}

// AssetRename renames a project-level asset.
type AssetRename struct {
	Kind string `parser:"@(\"sprite\" | \"sound\" | \"backdrop\")"`
	From string `parser:"@String"`
	To   string `parser:"\"->\" @String"`
}

var planLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Ident", Pattern: `[a-z]+`},
})

var planParser = participle.MustBuild[Plan](
	participle.Lexer(planLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
)

// Parse reads a rename plan. The path only labels parse errors.
func Parse(path string, data []byte) (*Plan, error) {
	plan, err := planParser.ParseBytes(path, data)
	if err != nil {
		return nil, fmt.Errorf("parse rename plan: %w", err)
	}
	return plan, nil
}
