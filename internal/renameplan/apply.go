package renameplan

import (
	"fmt"

	"github.com/fableworks/namekit/internal/assetname"
	"github.com/fableworks/namekit/internal/manifest"
)

// Rename records one applied rename.
type Rename struct {
	Kind   string
	Sprite string // owning sprite for costume renames
	From   string
	To     string
}

// ApplyError reports a target name that failed validation, carrying the
// bilingual message so callers can print either language.
type ApplyError struct {
	Kind    string
	From    string
	To      string
	Message assetname.Message
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("rename %s %q -> %q: %s", e.Kind, e.From, e.To, e.Message.En)
}

// scopeView is a name snapshot with one asset carved out, so a rename never
// collides with the name it is replacing.
type scopeView struct {
	sprites   []string
	sounds    []string
	costumes  []string
	backdrops []string
}

func (v *scopeView) SpriteNames() []string   { return v.sprites }
func (v *scopeView) SoundNames() []string    { return v.sounds }
func (v *scopeView) CostumeNames() []string  { return v.costumes }
func (v *scopeView) BackdropNames() []string { return v.backdrops }

// Apply executes the plan against the project in statement order, so later
// statements see the renames made by earlier ones. It stops at the first
// failing statement; renames already applied stay applied and the caller
// decides whether to save.
func Apply(plan *Plan, p *manifest.Project, rules *assetname.Rules) ([]Rename, error) {
	renames := make([]Rename, 0, len(plan.Statements))

	for _, stmt := range plan.Statements {
		switch {
		case stmt.Costume != nil:
			r := stmt.Costume
			sprite := p.Sprite(r.Sprite)
			if sprite == nil {
				return renames, fmt.Errorf("rename costume: sprite %q not found", r.Sprite)
			}
			costume := sprite.Costume(r.From)
			if costume == nil {
				return renames, fmt.Errorf("rename costume: costume %q not found in sprite %q", r.From, r.Sprite)
			}
			view := &scopeView{}
			for _, c := range sprite.Costumes {
				if c == costume {
					continue
				}
				view.costumes = append(view.costumes, c.Name)
			}
			if msg := rules.ValidateCostumeName(r.To, view); msg != nil {
				return renames, &ApplyError{Kind: "costume", From: r.From, To: r.To, Message: *msg}
			}
			costume.Name = r.To
			renames = append(renames, Rename{Kind: "costume", Sprite: r.Sprite, From: r.From, To: r.To})

		case stmt.Asset != nil:
			r := stmt.Asset
			applied, err := applyAsset(r, p, rules)
			if err != nil {
				return renames, err
			}
			renames = append(renames, applied)
		}
	}

	return renames, nil
}

func applyAsset(r *AssetRename, p *manifest.Project, rules *assetname.Rules) (Rename, error) {
	switch r.Kind {
	case "sprite":
		sprite := p.Sprite(r.From)
		if sprite == nil {
			return Rename{}, fmt.Errorf("rename sprite: sprite %q not found", r.From)
		}
		view := projectViewExcluding(p, sprite, nil)
		if msg := rules.ValidateSpriteName(r.To, view); msg != nil {
			return Rename{}, &ApplyError{Kind: r.Kind, From: r.From, To: r.To, Message: *msg}
		}
		sprite.Name = r.To
		return Rename{Kind: r.Kind, From: r.From, To: r.To}, nil

	case "sound":
		sound := p.Sound(r.From)
		if sound == nil {
			return Rename{}, fmt.Errorf("rename sound: sound %q not found", r.From)
		}
		view := projectViewExcluding(p, nil, sound)
		if msg := rules.ValidateSoundName(r.To, view); msg != nil {
			return Rename{}, &ApplyError{Kind: r.Kind, From: r.From, To: r.To, Message: *msg}
		}
		sound.Name = r.To
		return Rename{Kind: r.Kind, From: r.From, To: r.To}, nil

	case "backdrop":
		backdrop := p.Backdrop(r.From)
		if backdrop == nil {
			return Rename{}, fmt.Errorf("rename backdrop: backdrop %q not found", r.From)
		}
		view := &scopeView{}
		for _, b := range p.Stage.Backdrops {
			if b == backdrop {
				continue
			}
			view.backdrops = append(view.backdrops, b.Name)
		}
		if msg := rules.ValidateBackdropName(r.To, view); msg != nil {
			return Rename{}, &ApplyError{Kind: r.Kind, From: r.From, To: r.To, Message: *msg}
		}
		backdrop.Name = r.To
		return Rename{Kind: r.Kind, From: r.From, To: r.To}, nil

	default:
		return Rename{}, fmt.Errorf("rename: unknown asset kind %q", r.Kind)
	}
}

func projectViewExcluding(p *manifest.Project, skipSprite *manifest.Sprite, skipSound *manifest.Sound) *scopeView {
	view := &scopeView{}
	for _, sprite := range p.Sprites {
		if sprite == skipSprite {
			continue
		}
		view.sprites = append(view.sprites, sprite.Name)
	}
	for _, sound := range p.Sounds {
		if sound == skipSound {
			continue
		}
		view.sounds = append(view.sounds, sound.Name)
	}
	return view
}
