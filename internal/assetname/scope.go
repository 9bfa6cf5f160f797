package assetname

// Scopes are borrowed read-only views over the caller's project data.
// Validators read the current child names at call time and take no
// ownership; a nil scope skips collision checks entirely, leaving only
// the grammar and reserved-word rules.

// ProjectScope exposes the names already taken inside a project. Sprite
// and sound names compete in a single namespace.
type ProjectScope interface {
	SpriteNames() []string
	SoundNames() []string
}

// SpriteScope exposes the costume names already taken inside one sprite.
type SpriteScope interface {
	CostumeNames() []string
}

// StageScope exposes the backdrop names already taken on the stage.
type StageScope interface {
	BackdropNames() []string
}
