package lint

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fableworks/namekit/internal/assetname"
	"github.com/fableworks/namekit/internal/manifest"
)

func TestLintCleanProject(t *testing.T) {
	t.Parallel()

	linter := New(assetname.New(assetname.Options{}))
	p := &manifest.Project{
		Name: "Adventure",
		Sprites: []*manifest.Sprite{
			{Name: "Hero", Costumes: []*manifest.Costume{{Name: "walk1"}, {Name: "walk2"}}},
			{Name: "Villain"},
		},
		Sounds: []*manifest.Sound{{Name: "pop"}},
		Stage:  &manifest.Stage{Backdrops: []*manifest.Backdrop{{Name: "nightSky"}}},
	}

	report := linter.Lint("game.yaml", p)
	if !report.Clean() {
		t.Fatalf("expected clean report, got %d diagnostics: %v", len(report.Diagnostics), report.Diagnostics)
	}
}

func TestLintReportsEveryRule(t *testing.T) {
	t.Parallel()

	linter := New(assetname.New(assetname.Options{}))
	p := &manifest.Project{
		Name: "Adventure",
		Sprites: []*manifest.Sprite{
			{Name: "Hero", Costumes: []*manifest.Costume{{Name: "walk1"}, {Name: "walk1"}}},
			{Name: "Hero"},
			{Name: "1bad"},
			{Name: ""},
			{Name: "func"},
			{Name: strings.Repeat("a", 101)},
		},
		Sounds: []*manifest.Sound{
			{Name: "pop"},
			{Name: "Hero"},
		},
		Stage: &manifest.Stage{
			Backdrops: []*manifest.Backdrop{{Name: "sky"}, {Name: "sky"}},
		},
	}

	report := linter.Lint("game.yaml", p)

	type finding struct {
		Path string
		Kind Kind
		Code Code
	}
	got := make([]finding, 0, len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		got = append(got, finding{d.Path, d.Kind, d.Code})
	}

	want := []finding{
		{"sprites[0].costumes[1]", KindCostume, CodeCollision},
		{"sprites[1]", KindSprite, CodeCollision},
		{"sprites[2]", KindSprite, CodeGrammar},
		{"sprites[3]", KindSprite, CodeBlank},
		{"sprites[4]", KindSprite, CodeReserved},
		{"sprites[5]", KindSprite, CodeTooLong},
		{"sounds[1]", KindSound, CodeCollision},
		{"stage.backdrops[1]", KindBackdrop, CodeCollision},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestLintFirstHolderKeepsName(t *testing.T) {
	t.Parallel()

	linter := New(assetname.New(assetname.Options{}))
	p := &manifest.Project{
		Name: "Adventure",
		Sprites: []*manifest.Sprite{
			{Name: "Hero"},
			{Name: "Hero"},
		},
	}

	report := linter.Lint("game.yaml", p)
	if len(report.Diagnostics) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", report.Diagnostics)
	}
	if report.Diagnostics[0].Path != "sprites[1]" {
		t.Errorf("collision attributed to %s, want sprites[1]", report.Diagnostics[0].Path)
	}
}

func TestLintCarriesBilingualMessage(t *testing.T) {
	t.Parallel()

	linter := New(assetname.New(assetname.Options{}))
	p := &manifest.Project{
		Name:    "Adventure",
		Sprites: []*manifest.Sprite{{Name: "1bad"}},
	}

	report := linter.Lint("game.yaml", p)
	if len(report.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v", report.Diagnostics)
	}
	d := report.Diagnostics[0]
	if d.Message.En == "" || d.Message.Zh == "" {
		t.Errorf("diagnostic message incomplete: %+v", d.Message)
	}
	if d.Manifest != "game.yaml" || d.Name != "1bad" {
		t.Errorf("diagnostic attribution wrong: %+v", d)
	}
}

func TestDiagnosticString(t *testing.T) {
	t.Parallel()

	d := Diagnostic{
		Manifest: "game.yaml",
		Path:     "sprites[0]",
		Kind:     KindSprite,
		Name:     "1bad",
		Code:     CodeGrammar,
		Message:  assetname.Message{En: "bad name", Zh: "坏名字"},
	}
	got := d.String()
	for _, part := range []string{"game.yaml", "sprites[0]", `sprite "1bad"`, "bad name", "[N003]"} {
		if !strings.Contains(got, part) {
			t.Errorf("String() = %q, missing %q", got, part)
		}
	}
}
