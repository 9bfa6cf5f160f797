package assetname

// SpriteName derives a valid, project-unique sprite name from base.
// Sprite names are pascal-cased; an empty normalization falls back to
// "Sprite".
func (r *Rules) SpriteName(project ProjectScope, base string) string {
	seed := Normalize(base, StylePascal)
	if seed == "" {
		seed = defaultSpriteBase
	}
	return UniqueName(seed, func(name string) bool {
		return r.ValidateSpriteName(name, project) == nil
	})
}

// CostumeName derives a valid, sprite-unique costume name from base.
func (r *Rules) CostumeName(sprite SpriteScope, base string) string {
	seed := Normalize(base, StyleCamel)
	if seed == "" {
		seed = defaultCostumeBase
	}
	return UniqueName(seed, func(name string) bool {
		return r.ValidateCostumeName(name, sprite) == nil
	})
}

// SoundName derives a valid, project-unique sound name from base. Sounds
// share the sprite namespace but keep camel casing.
func (r *Rules) SoundName(project ProjectScope, base string) string {
	seed := Normalize(base, StyleCamel)
	if seed == "" {
		seed = defaultSoundBase
	}
	return UniqueName(seed, func(name string) bool {
		return r.ValidateSoundName(name, project) == nil
	})
}

// BackdropName derives a valid, stage-unique backdrop name from base.
func (r *Rules) BackdropName(stage StageScope, base string) string {
	seed := Normalize(base, StyleCamel)
	if seed == "" {
		seed = defaultBackdropBase
	}
	return UniqueName(seed, func(name string) bool {
		return r.ValidateBackdropName(name, stage) == nil
	})
}

// EnsureSpriteName returns name unchanged when it already validates in
// project, otherwise derives a fresh sprite name from it. Applying it to
// its own result is a no-op.
func (r *Rules) EnsureSpriteName(name string, project ProjectScope) string {
	if r.ValidateSpriteName(name, project) == nil {
		return name
	}
	return r.SpriteName(project, name)
}

// EnsureCostumeName returns name unchanged when it already validates in
// sprite, otherwise derives a fresh costume name from it.
func (r *Rules) EnsureCostumeName(name string, sprite SpriteScope) string {
	if r.ValidateCostumeName(name, sprite) == nil {
		return name
	}
	return r.CostumeName(sprite, name)
}

// EnsureSoundName returns name unchanged when it already validates in
// project, otherwise derives a fresh sound name from it.
func (r *Rules) EnsureSoundName(name string, project ProjectScope) string {
	if r.ValidateSoundName(name, project) == nil {
		return name
	}
	return r.SoundName(project, name)
}

// EnsureBackdropName returns name unchanged when it already validates in
// stage, otherwise derives a fresh backdrop name from it.
func (r *Rules) EnsureBackdropName(name string, stage StageScope) string {
	if r.ValidateBackdropName(name, stage) == nil {
		return name
	}
	return r.BackdropName(stage, name)
}
