package lint

import (
	"github.com/fableworks/namekit/internal/manifest"
)

// Rename records one name rewrite performed by Fix.
type Rename struct {
	Path string
	Kind Kind
	From string
	To   string
}

// Fix rewrites every invalid or colliding asset name in place and returns
// the renames in document order. Each asset is repaired against the names
// settled before it, so repairs never collide with each other and a second
// run changes nothing.
func (l *Linter) Fix(p *manifest.Project) []Rename {
	var renames []Rename
	record := func(path string, kind Kind, from, to string) {
		if from == to {
			return
		}
		renames = append(renames, Rename{Path: path, Kind: kind, From: from, To: to})
	}

	project := &projectView{}
	for i, sprite := range p.Sprites {
		fixed := l.rules.EnsureSpriteName(sprite.Name, project)
		record(manifest.SpritePath(i), KindSprite, sprite.Name, fixed)
		sprite.Name = fixed
		project.sprites = append(project.sprites, fixed)

		costumes := &spriteView{}
		for j, costume := range sprite.Costumes {
			fixed := l.rules.EnsureCostumeName(costume.Name, costumes)
			record(manifest.CostumePath(i, j), KindCostume, costume.Name, fixed)
			costume.Name = fixed
			costumes.costumes = append(costumes.costumes, fixed)
		}
	}
	for i, sound := range p.Sounds {
		fixed := l.rules.EnsureSoundName(sound.Name, project)
		record(manifest.SoundPath(i), KindSound, sound.Name, fixed)
		sound.Name = fixed
		project.sounds = append(project.sounds, fixed)
	}
	if p.Stage != nil {
		stage := &stageView{}
		for i, backdrop := range p.Stage.Backdrops {
			fixed := l.rules.EnsureBackdropName(backdrop.Name, stage)
			record(manifest.BackdropPath(i), KindBackdrop, backdrop.Name, fixed)
			backdrop.Name = fixed
			stage.backdrops = append(stage.backdrops, fixed)
		}
	}

	return renames
}
