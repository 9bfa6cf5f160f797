package assetname

import (
	"regexp"
	"slices"
	"unicode/utf8"
)

// identPattern is the identifier grammar for asset names: CJK ideographs,
// ASCII letters or underscore first, then the same plus digits. A
// deliberate subset of what the compiler accepts, so every valid asset
// name is a valid identifier downstream.
var identPattern = regexp.MustCompile(`^[\x{4e00}-\x{9fa5}A-Za-z_][\x{4e00}-\x{9fa5}A-Za-z0-9_]*$`)

// Validate checks a name against the shared grammar rules: non-blank,
// within length, identifier-shaped, and not a reserved word. Checks run
// in that order and stop at the first violation. Scope uniqueness is the
// scoped validators' job.
func (r *Rules) Validate(name string) *Message {
	if name == "" {
		return &msgBlank
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return &msgTooLong
	}
	if !identPattern.MatchString(name) {
		return &msgInvalidChars
	}
	if r.reserved.IsReserved(name) {
		return &msgReserved
	}
	return nil
}

// ValidateSpriteName checks a sprite name within a project. Sprites share
// their namespace with sounds, so the name must differ from every
// existing sprite and sound name. A nil project skips collision checks.
func (r *Rules) ValidateSpriteName(name string, project ProjectScope) *Message {
	if m := r.Validate(name); m != nil {
		return m
	}
	if project != nil {
		if slices.Contains(project.SpriteNames(), name) {
			return spriteExists(name)
		}
		if slices.Contains(project.SoundNames(), name) {
			return soundExists(name)
		}
	}
	return nil
}

// ValidateSoundName checks a sound name within a project. Same rules as
// sprite names for now: the two kinds share one namespace.
func (r *Rules) ValidateSoundName(name string, project ProjectScope) *Message {
	return r.ValidateSpriteName(name, project)
}

// ValidateCostumeName checks a costume name within its sprite. A nil
// sprite skips the collision check.
func (r *Rules) ValidateCostumeName(name string, sprite SpriteScope) *Message {
	if m := r.Validate(name); m != nil {
		return m
	}
	if sprite != nil && slices.Contains(sprite.CostumeNames(), name) {
		return costumeExists(name)
	}
	return nil
}

// ValidateBackdropName checks a backdrop name within the stage. A nil
// stage skips the collision check.
func (r *Rules) ValidateBackdropName(name string, stage StageScope) *Message {
	if m := r.Validate(name); m != nil {
		return m
	}
	if stage != nil && slices.Contains(stage.BackdropNames(), name) {
		return backdropExists(name)
	}
	return nil
}
