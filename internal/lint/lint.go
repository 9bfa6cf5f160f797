// Package lint walks a project manifest in document order and reports
// every asset name that would break the generated project code.
package lint

import (
	"fmt"
	"unicode/utf8"

	"github.com/fableworks/namekit/internal/assetname"
	"github.com/fableworks/namekit/internal/manifest"
)

// Code identifies the naming rule a diagnostic reports.
type Code string

const (
	// CodeBlank flags an empty name.
	CodeBlank Code = "N001"
	// CodeTooLong flags a name over the length limit.
	CodeTooLong Code = "N002"
	// CodeGrammar flags characters outside the name grammar.
	CodeGrammar Code = "N003"
	// CodeReserved flags a clash with a reserved word.
	CodeReserved Code = "N004"
	// CodeCollision flags a duplicate name within its scope.
	CodeCollision Code = "N005"
)

// Kind names the asset kind a diagnostic refers to.
type Kind string

const (
	KindSprite   Kind = "sprite"
	KindCostume  Kind = "costume"
	KindSound    Kind = "sound"
	KindBackdrop Kind = "backdrop"
)

// Diagnostic describes one naming violation found in a manifest.
type Diagnostic struct {
	Manifest string
	Path     string // document path, e.g. "sprites[1].costumes[0]"
	Kind     Kind
	Name     string
	Code     Code
	Message  assetname.Message
}

// String renders the diagnostic in path: kind "name": message [code] form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s %q: %s [%s]",
		d.Manifest, d.Path, d.Kind, d.Name, d.Message.En, d.Code)
}

// Report collects the diagnostics of one manifest.
type Report struct {
	Manifest    string
	Diagnostics []Diagnostic
}

// Clean reports whether the manifest has no naming violations.
func (r Report) Clean() bool { return len(r.Diagnostics) == 0 }

// Linter applies naming rules to whole manifests.
type Linter struct {
	rules *assetname.Rules
}

// New constructs a Linter around the given rules.
func New(rules *assetname.Rules) *Linter {
	return &Linter{rules: rules}
}

// projectView is the running sprite/sound namespace built up while walking
// a document, so each asset is only checked against the assets before it.
type projectView struct {
	sprites []string
	sounds  []string
}

func (v *projectView) SpriteNames() []string { return v.sprites }
func (v *projectView) SoundNames() []string  { return v.sounds }

type spriteView struct {
	costumes []string
}

func (v *spriteView) CostumeNames() []string { return v.costumes }

type stageView struct {
	backdrops []string
}

func (v *stageView) BackdropNames() []string { return v.backdrops }

// Lint validates every asset name in document order. Duplicate names are
// attributed to the later occurrence; the first holder of a name is never
// flagged for it.
func (l *Linter) Lint(manifestPath string, p *manifest.Project) Report {
	report := Report{Manifest: manifestPath}
	add := func(path string, kind Kind, name string, msg *assetname.Message) {
		if msg == nil {
			return
		}
		report.Diagnostics = append(report.Diagnostics, Diagnostic{
			Manifest: manifestPath,
			Path:     path,
			Kind:     kind,
			Name:     name,
			Code:     l.classify(name),
			Message:  *msg,
		})
	}

	project := &projectView{}
	for i, sprite := range p.Sprites {
		add(manifest.SpritePath(i), KindSprite, sprite.Name,
			l.rules.ValidateSpriteName(sprite.Name, project))
		project.sprites = append(project.sprites, sprite.Name)

		costumes := &spriteView{}
		for j, costume := range sprite.Costumes {
			add(manifest.CostumePath(i, j), KindCostume, costume.Name,
				l.rules.ValidateCostumeName(costume.Name, costumes))
			costumes.costumes = append(costumes.costumes, costume.Name)
		}
	}
	for i, sound := range p.Sounds {
		add(manifest.SoundPath(i), KindSound, sound.Name,
			l.rules.ValidateSoundName(sound.Name, project))
		project.sounds = append(project.sounds, sound.Name)
	}
	if p.Stage != nil {
		stage := &stageView{}
		for i, backdrop := range p.Stage.Backdrops {
			add(manifest.BackdropPath(i), KindBackdrop, backdrop.Name,
				l.rules.ValidateBackdropName(backdrop.Name, stage))
			stage.backdrops = append(stage.backdrops, backdrop.Name)
		}
	}

	return report
}

// classify maps a failing name to its rule code. Callers only invoke it
// for names whose scoped validation failed, so a grammatically valid name
// can only have failed on a collision.
func (l *Linter) classify(name string) Code {
	switch {
	case name == "":
		return CodeBlank
	case utf8.RuneCountInString(name) > assetname.MaxNameLen:
		return CodeTooLong
	case l.rules.Validate(name) == nil:
		return CodeCollision
	case l.rules.Reserved().IsReserved(name):
		return CodeReserved
	default:
		return CodeGrammar
	}
}
