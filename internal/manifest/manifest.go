// Package manifest models the YAML project document namekit operates on.
//
// A manifest describes one studio project: its sprites with their costumes,
// the project-level sounds, and the stage with its backdrops. Every asset
// carries a stable id and a display name; the names are what the naming
// rules validate and repair. The document is the CLI's own format, not the
// editor's full project structure.
package manifest

import (
	"fmt"

	"github.com/fableworks/namekit/internal/assetname"
)

// Project is the root document. Field order is document order: sprites,
// then sounds, then the stage.
type Project struct {
	Name    string    `yaml:"name"`
	Sprites []*Sprite `yaml:"sprites,omitempty"`
	Sounds  []*Sound  `yaml:"sounds,omitempty"`
	Stage   *Stage    `yaml:"stage,omitempty"`
}

// Stage holds the backdrop list.
type Stage struct {
	Backdrops []*Backdrop `yaml:"backdrops,omitempty"`
}

// Sprite is a named actor with its costume list.
type Sprite struct {
	ID       string     `yaml:"id,omitempty"`
	Name     string     `yaml:"name"`
	Costumes []*Costume `yaml:"costumes,omitempty"`
}

// Costume is one look of a sprite.
type Costume struct {
	ID   string `yaml:"id,omitempty"`
	Name string `yaml:"name"`
	File string `yaml:"file,omitempty"`
}

// Sound is a project-level audio clip.
type Sound struct {
	ID   string `yaml:"id,omitempty"`
	Name string `yaml:"name"`
	File string `yaml:"file,omitempty"`
}

// Backdrop is one look of the stage.
type Backdrop struct {
	ID   string `yaml:"id,omitempty"`
	Name string `yaml:"name"`
	File string `yaml:"file,omitempty"`
}

// SpriteNames returns the sprite names in document order.
func (p *Project) SpriteNames() []string {
	names := make([]string, 0, len(p.Sprites))
	for _, sprite := range p.Sprites {
		names = append(names, sprite.Name)
	}
	return names
}

// SoundNames returns the sound names in document order.
func (p *Project) SoundNames() []string {
	names := make([]string, 0, len(p.Sounds))
	for _, sound := range p.Sounds {
		names = append(names, sound.Name)
	}
	return names
}

// CostumeNames returns the costume names in document order.
func (s *Sprite) CostumeNames() []string {
	names := make([]string, 0, len(s.Costumes))
	for _, costume := range s.Costumes {
		names = append(names, costume.Name)
	}
	return names
}

// BackdropNames returns the backdrop names in document order. Safe on a nil
// stage, which is how projects without backdrops are stored.
func (s *Stage) BackdropNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Backdrops))
	for _, backdrop := range s.Backdrops {
		names = append(names, backdrop.Name)
	}
	return names
}

var (
	_ assetname.ProjectScope = (*Project)(nil)
	_ assetname.SpriteScope  = (*Sprite)(nil)
	_ assetname.StageScope   = (*Stage)(nil)
)

// Sprite returns the sprite with the given name, or nil.
func (p *Project) Sprite(name string) *Sprite {
	for _, sprite := range p.Sprites {
		if sprite.Name == name {
			return sprite
		}
	}
	return nil
}

// Sound returns the sound with the given name, or nil.
func (p *Project) Sound(name string) *Sound {
	for _, sound := range p.Sounds {
		if sound.Name == name {
			return sound
		}
	}
	return nil
}

// Backdrop returns the backdrop with the given name, or nil.
func (p *Project) Backdrop(name string) *Backdrop {
	if p.Stage == nil {
		return nil
	}
	for _, backdrop := range p.Stage.Backdrops {
		if backdrop.Name == name {
			return backdrop
		}
	}
	return nil
}

// Costume returns the costume with the given name, or nil.
func (s *Sprite) Costume(name string) *Costume {
	for _, costume := range s.Costumes {
		if costume.Name == name {
			return costume
		}
	}
	return nil
}

// SpritePath renders the document path of the i-th sprite.
func SpritePath(i int) string { return fmt.Sprintf("sprites[%d]", i) }

// CostumePath renders the document path of the j-th costume of the i-th
// sprite.
func CostumePath(i, j int) string { return fmt.Sprintf("sprites[%d].costumes[%d]", i, j) }

// SoundPath renders the document path of the i-th sound.
func SoundPath(i int) string { return fmt.Sprintf("sounds[%d]", i) }

// BackdropPath renders the document path of the i-th backdrop.
func BackdropPath(i int) string { return fmt.Sprintf("stage.backdrops[%d]", i) }
