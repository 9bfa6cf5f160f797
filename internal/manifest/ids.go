package manifest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EnsureIDs assigns a fresh UUID to every asset missing one and reports how
// many ids were assigned. Existing ids are never touched, so saved
// manifests keep stable identities across runs.
func (p *Project) EnsureIDs() int {
	assigned := 0
	ensure := func(id *string) {
		if *id == "" {
			*id = uuid.NewString()
			assigned++
		}
	}

	for _, sprite := range p.Sprites {
		ensure(&sprite.ID)
		for _, costume := range sprite.Costumes {
			ensure(&costume.ID)
		}
	}
	for _, sound := range p.Sounds {
		ensure(&sound.ID)
	}
	if p.Stage != nil {
		for _, backdrop := range p.Stage.Backdrops {
			ensure(&backdrop.ID)
		}
	}
	return assigned
}

// Validate checks the document shape. Only structural defects are reported
// here; name problems are the linter's business. The one shape rule today
// is that asset ids must be unique across the whole project.
func (p *Project) Validate() error {
	seen := make(map[string]string)
	var dups []string
	record := func(id, path string) {
		if id == "" {
			return
		}
		if prev, ok := seen[id]; ok {
			dups = append(dups, fmt.Sprintf("%s reuses the id of %s", path, prev))
			return
		}
		seen[id] = path
	}

	for i, sprite := range p.Sprites {
		record(sprite.ID, SpritePath(i))
		for j, costume := range sprite.Costumes {
			record(costume.ID, CostumePath(i, j))
		}
	}
	for i, sound := range p.Sounds {
		record(sound.ID, SoundPath(i))
	}
	if p.Stage != nil {
		for i, backdrop := range p.Stage.Backdrops {
			record(backdrop.ID, BackdropPath(i))
		}
	}

	if len(dups) > 0 {
		return fmt.Errorf("manifest: duplicate asset ids: %s", strings.Join(dups, "; "))
	}
	return nil
}
