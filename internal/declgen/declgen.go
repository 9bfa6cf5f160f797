// Package declgen renders the Go declaration stubs for a project's assets.
//
// The generated file maps exported constants to asset names so project
// code refers to assets through identifiers instead of string literals.
// This downstream file is the reason asset names carry identifier rules
// in the first place.
package declgen

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/imports"

	"github.com/fableworks/namekit/internal/assetname"
	"github.com/fableworks/namekit/internal/manifest"
)

// Options configures generation.
type Options struct {
	// Package names the generated package; defaults to "assets".
	Package string
}

// File is one rendered output file.
type File struct {
	Path    string
	Content []byte
}

// Generator renders asset declarations for manifests.
type Generator struct {
	opts Options
}

// New returns a generator with the provided options.
func New(opts Options) *Generator {
	if opts.Package == "" {
		opts.Package = "assets"
	}
	return &Generator{opts: opts}
}

// Generate renders assets.gen.go with one constant per project-level
// asset: sprites, sounds and backdrops. Costumes stay runtime strings
// scoped to their sprite. Output runs through goimports so it is always
// gofmt-clean; identifier collisions between similar names are resolved
// with numeric suffixes.
func (g *Generator) Generate(p *manifest.Project) (File, error) {
	total := len(p.Sprites) + len(p.Sounds)
	if p.Stage != nil {
		total += len(p.Stage.Backdrops)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "package %s\n", g.opts.Package)
	if total == 0 {
		return File{Path: "assets.gen.go", Content: buf.Bytes()}, nil
	}

	used := make(map[string]struct{}, total)
	writeConst := func(prefix, name string) {
		ident := exportedIdent(prefix, name)
		ident = assetname.UniqueName(ident, func(candidate string) bool {
			_, taken := used[candidate]
			return !taken
		})
		used[ident] = struct{}{}
		fmt.Fprintf(&buf, "\t%s = %q\n", ident, name)
	}

	fmt.Fprintf(&buf, "\nconst (\n")
	for _, sprite := range p.Sprites {
		writeConst("Sprite", sprite.Name)
	}
	for _, sound := range p.Sounds {
		writeConst("Sound", sound.Name)
	}
	if p.Stage != nil {
		for _, backdrop := range p.Stage.Backdrops {
			writeConst("Backdrop", backdrop.Name)
		}
	}
	fmt.Fprintf(&buf, ")\n")

	formatted, err := imports.Process("", buf.Bytes(), nil)
	if err != nil {
		return File{}, fmt.Errorf("goimports assets.gen.go: %w", err)
	}
	return File{Path: "assets.gen.go", Content: formatted}, nil
}

// exportedIdent builds the exported constant name for an asset. Asset
// names already satisfy the name grammar, so only underscore splitting
// and first-rune capitalization are needed; CJK runes pass through as Go
// identifier letters.
func exportedIdent(prefix, name string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	if b.Len() == len(prefix) {
		return prefix + "X"
	}
	return b.String()
}
