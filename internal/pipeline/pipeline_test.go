package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fableworks/namekit/internal/cache"
	"github.com/fableworks/namekit/internal/config"
	"github.com/fableworks/namekit/internal/lint"
	"github.com/fableworks/namekit/internal/manifest"
)

const brokenManifest = `name: Platformer
sprites:
  - name: Hero
    costumes:
      - name: walk
        file: walk.png
  - name: Hero
sounds:
  - name: func
stage:
  backdrops:
    - name: night sky
`

const cleanManifest = `name: Menu
sprites:
  - id: 0c2f9f87-6f83-4466-b7e9-63b3e428847e
    name: Button
sounds:
  - id: 9c4b07b7-41d7-4332-a46f-3b21e9f3a1cd
    name: click
stage:
  backdrops:
    - id: 3d1c7c2a-2f14-4e14-9d3f-5df869aefc86
      name: sky
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunCheck(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixture(t, tmpDir, "game.yaml", brokenManifest)
	writeFixture(t, tmpDir, "menu.yaml", cleanManifest)
	configPath := writeFixture(t, tmpDir, "namekit.toml", `projects = ["*.yaml"]`+"\n")

	writer := &MemoryWriter{}
	p := Pipeline{Env: Environment{Writer: writer}}

	summary, err := p.Run(context.Background(), RunOptions{ConfigPath: configPath})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(summary.Reports) != 2 {
		t.Fatalf("Reports = %d, want 2", len(summary.Reports))
	}
	if summary.Clean() {
		t.Fatal("Clean() = true, want findings")
	}
	if summary.Findings() != 3 {
		t.Fatalf("Findings() = %d, want 3", summary.Findings())
	}
	if summary.Lang != config.LangEn {
		t.Fatalf("Lang = %q, want default en", summary.Lang)
	}
	if writer.FileCount() != 0 {
		t.Fatalf("writer stored %d files during check, want 0", writer.FileCount())
	}

	game := summary.Reports[0]
	if !strings.HasSuffix(game.Manifest, "game.yaml") {
		t.Fatalf("Reports[0].Manifest = %q, want game.yaml", game.Manifest)
	}
	wantCodes := []struct {
		path string
		code lint.Code
	}{
		{"sprites[1]", lint.CodeCollision},
		{"sounds[0]", lint.CodeReserved},
		{"stage.backdrops[0]", lint.CodeGrammar},
	}
	if len(game.Diagnostics) != len(wantCodes) {
		t.Fatalf("game diagnostics = %d, want %d", len(game.Diagnostics), len(wantCodes))
	}
	for i, want := range wantCodes {
		got := game.Diagnostics[i]
		if got.Path != want.path || got.Code != want.code {
			t.Errorf("diagnostic[%d] = %s %s, want %s %s", i, got.Path, got.Code, want.path, want.code)
		}
	}

	if menu := summary.Reports[1]; !menu.Clean() {
		t.Fatalf("menu.yaml should lint clean, got %v", menu.Diagnostics)
	}
}

func TestRunExplicitManifests(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "game.yaml", brokenManifest)

	p := Pipeline{Env: Environment{Writer: &MemoryWriter{}}}
	summary, err := p.Run(context.Background(), RunOptions{Manifests: []string{path}})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(summary.Reports) != 1 {
		t.Fatalf("Reports = %d, want 1", len(summary.Reports))
	}
	if summary.Reports[0].Manifest != path {
		t.Fatalf("Reports[0].Manifest = %q, want %q", summary.Reports[0].Manifest, path)
	}
}

func TestRunRequiresManifests(t *testing.T) {
	p := Pipeline{Env: Environment{Writer: &MemoryWriter{}}}
	_, err := p.Run(context.Background(), RunOptions{})
	if err == nil || !strings.Contains(err.Error(), "no manifests to process") {
		t.Fatalf("Run error = %v, want no-manifests error", err)
	}
}

func TestRunFix(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "game.yaml", brokenManifest)

	writer := &MemoryWriter{}
	p := Pipeline{Env: Environment{Writer: writer}}

	summary, err := p.Run(context.Background(), RunOptions{Manifests: []string{path}, Fix: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// The report shows the state before repair.
	if summary.Findings() != 3 {
		t.Fatalf("Findings() = %d, want 3", summary.Findings())
	}

	wantRenames := []Rename{
		{Manifest: path, Path: "sprites[1]", Kind: lint.KindSprite, From: "Hero", To: "Hero2"},
		{Manifest: path, Path: "sounds[0]", Kind: lint.KindSound, From: "func", To: "func2"},
		{Manifest: path, Path: "stage.backdrops[0]", Kind: lint.KindBackdrop, From: "night sky", To: "nightSky"},
	}
	if len(summary.Renames) != len(wantRenames) {
		t.Fatalf("Renames = %+v, want %d renames", summary.Renames, len(wantRenames))
	}
	for i, want := range wantRenames {
		if summary.Renames[i] != want {
			t.Errorf("Renames[%d] = %+v, want %+v", i, summary.Renames[i], want)
		}
	}

	// Every asset in the fixture lacks an id.
	if summary.NewIDs != 5 {
		t.Fatalf("NewIDs = %d, want 5", summary.NewIDs)
	}

	data, ok := writer.GetFile(path)
	if !ok {
		t.Fatalf("repaired manifest was not written; files = %v", writer.Files)
	}
	repaired, err := manifest.Parse(path, data)
	if err != nil {
		t.Fatalf("written manifest does not parse: %v", err)
	}
	if repaired.Sprites[1].Name != "Hero2" {
		t.Errorf("sprites[1].Name = %q, want Hero2", repaired.Sprites[1].Name)
	}
	if repaired.Sounds[0].Name != "func2" {
		t.Errorf("sounds[0].Name = %q, want func2", repaired.Sounds[0].Name)
	}
	if repaired.Stage.Backdrops[0].Name != "nightSky" {
		t.Errorf("backdrops[0].Name = %q, want nightSky", repaired.Stage.Backdrops[0].Name)
	}
	if repaired.Sprites[0].ID == "" || repaired.Stage.Backdrops[0].ID == "" {
		t.Error("written manifest is missing assigned ids")
	}
}

func TestRunFixDryRun(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "game.yaml", brokenManifest)

	writer := &MemoryWriter{}
	p := Pipeline{Env: Environment{Writer: writer}}

	summary, err := p.Run(context.Background(), RunOptions{Manifests: []string{path}, Fix: true, DryRun: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(summary.Renames) != 3 {
		t.Fatalf("Renames = %d, want 3 in dry-run preview", len(summary.Renames))
	}
	if writer.FileCount() != 0 {
		t.Fatalf("writer stored %d files during dry-run, want 0", writer.FileCount())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if string(data) != brokenManifest {
		t.Fatal("dry-run modified the manifest on disk")
	}
}

func TestRunFixCleanManifest(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "menu.yaml", cleanManifest)

	writer := &MemoryWriter{}
	p := Pipeline{Env: Environment{Writer: writer}}

	summary, err := p.Run(context.Background(), RunOptions{Manifests: []string{path}, Fix: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(summary.Renames) != 0 {
		t.Fatalf("Renames = %+v, want none for a clean manifest", summary.Renames)
	}
	if summary.NewIDs != 0 {
		t.Fatalf("NewIDs = %d, want 0 when ids are present", summary.NewIDs)
	}
	if writer.FileCount() != 0 {
		t.Fatalf("writer stored %d files, want 0 when nothing changed", writer.FileCount())
	}
}

func TestRunGen(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixture(t, tmpDir, "menu.yaml", cleanManifest)
	configPath := writeFixture(t, tmpDir, "namekit.toml", `projects = ["menu.yaml"]`+"\n")

	writer := &MemoryWriter{}
	p := Pipeline{Env: Environment{Writer: writer}}

	summary, err := p.Run(context.Background(), RunOptions{ConfigPath: configPath, Gen: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(summary.Files) != 1 {
		t.Fatalf("Files = %d, want 1", len(summary.Files))
	}
	wantPath := filepath.Join(tmpDir, "gen", "menu", "assets.gen.go")
	file := summary.Files[0]
	if file.Path != wantPath {
		t.Fatalf("Files[0].Path = %q, want %q", file.Path, wantPath)
	}
	content := string(file.Content)
	for _, want := range []string{"package assets", `SpriteButton`, `SoundClick`, `BackdropSky`} {
		if !strings.Contains(content, want) {
			t.Errorf("stub missing %q:\n%s", want, content)
		}
	}

	if !writer.HasFile(wantPath) {
		t.Fatalf("stub was not written; files = %v", writer.Files)
	}
}

func TestRunGenDryRun(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "menu.yaml", cleanManifest)

	writer := &MemoryWriter{}
	p := Pipeline{Env: Environment{Writer: writer}}

	summary, err := p.Run(context.Background(), RunOptions{Manifests: []string{path}, Gen: true, DryRun: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(summary.Files) != 1 {
		t.Fatalf("Files = %d, want 1 in dry-run preview", len(summary.Files))
	}
	if writer.FileCount() != 0 {
		t.Fatalf("writer stored %d files during dry-run, want 0", writer.FileCount())
	}
}

func TestRunGenSkipsManifestsWithFindings(t *testing.T) {
	tmpDir := t.TempDir()
	broken := writeFixture(t, tmpDir, "game.yaml", brokenManifest)
	clean := writeFixture(t, tmpDir, "menu.yaml", cleanManifest)

	writer := &MemoryWriter{}
	p := Pipeline{Env: Environment{Writer: writer}}

	summary, err := p.Run(context.Background(), RunOptions{Manifests: []string{broken, clean}, Gen: true, DryRun: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Clean() {
		t.Fatal("Clean() = true, want findings from game.yaml")
	}
	if len(summary.Files) != 1 {
		t.Fatalf("Files = %d, want only the clean manifest's stub", len(summary.Files))
	}
	if !strings.Contains(summary.Files[0].Path, "menu") {
		t.Fatalf("Files[0].Path = %q, want the menu stub", summary.Files[0].Path)
	}
}

func TestRunGenFixedManifestsGenerate(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "game.yaml", brokenManifest)

	writer := &MemoryWriter{}
	p := Pipeline{Env: Environment{Writer: writer}}

	summary, err := p.Run(context.Background(), RunOptions{Manifests: []string{path}, Fix: true, Gen: true, DryRun: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(summary.Files) != 1 {
		t.Fatalf("Files = %d, want stub built from the repaired names", len(summary.Files))
	}
	content := string(summary.Files[0].Content)
	for _, want := range []string{"SpriteHero2", "SoundFunc2", "BackdropNightSky"} {
		if !strings.Contains(content, want) {
			t.Errorf("stub missing %q:\n%s", want, content)
		}
	}
}

func TestRunGenStemCollision(t *testing.T) {
	tmpDir := t.TempDir()
	first := writeFixture(t, tmpDir, "a/game.yaml", cleanManifest)
	second := writeFixture(t, tmpDir, "b/game.yaml", cleanManifest)

	p := Pipeline{Env: Environment{Writer: &MemoryWriter{}}}
	summary, err := p.Run(context.Background(), RunOptions{Manifests: []string{first, second}, Gen: true, DryRun: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(summary.Files) != 2 {
		t.Fatalf("Files = %d, want 2", len(summary.Files))
	}
	if dir := filepath.Base(filepath.Dir(summary.Files[0].Path)); dir != "game" {
		t.Errorf("first stub dir = %q, want game", dir)
	}
	if dir := filepath.Base(filepath.Dir(summary.Files[1].Path)); dir != "game2" {
		t.Errorf("second stub dir = %q, want game2", dir)
	}
}

func TestRunOutOverride(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixture(t, tmpDir, "menu.yaml", cleanManifest)
	configPath := writeFixture(t, tmpDir, "namekit.toml", `projects = ["menu.yaml"]`+"\n")

	p := Pipeline{Env: Environment{Writer: &MemoryWriter{}}}
	summary, err := p.Run(context.Background(), RunOptions{ConfigPath: configPath, Gen: true, DryRun: true, OutOverride: "stubs"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	wantPath := filepath.Join(tmpDir, "stubs", "menu", "assets.gen.go")
	if len(summary.Files) != 1 || summary.Files[0].Path != wantPath {
		t.Fatalf("Files = %+v, want single file at %q", summary.Files, wantPath)
	}
}

func TestRunLangSelection(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixture(t, tmpDir, "menu.yaml", cleanManifest)
	configPath := writeFixture(t, tmpDir, "namekit.toml", "projects = [\"menu.yaml\"]\nlang = \"zh\"\n")

	p := Pipeline{Env: Environment{Writer: &MemoryWriter{}}}

	summary, err := p.Run(context.Background(), RunOptions{ConfigPath: configPath})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Lang != config.LangZh {
		t.Fatalf("Lang = %q, want zh from config", summary.Lang)
	}

	summary, err = p.Run(context.Background(), RunOptions{ConfigPath: configPath, Lang: config.LangEn})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Lang != config.LangEn {
		t.Fatalf("Lang = %q, want en from override", summary.Lang)
	}
}

func TestRunExtraReservedFromConfig(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixture(t, tmpDir, "menu.yaml", cleanManifest)
	configPath := writeFixture(t, tmpDir, "namekit.toml", `
projects = ["menu.yaml"]

[naming]
extra_reserved = ["Button"]
`)

	p := Pipeline{Env: Environment{Writer: &MemoryWriter{}}}
	summary, err := p.Run(context.Background(), RunOptions{ConfigPath: configPath})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Clean() {
		t.Fatal("Clean() = true, want a reserved-word finding for Button")
	}
	diag := summary.Reports[0].Diagnostics[0]
	if diag.Code != lint.CodeReserved || diag.Name != "Button" {
		t.Fatalf("diagnostic = %+v, want reserved Button", diag)
	}
}

func TestRunCheckStampCache(t *testing.T) {
	tmpDir := t.TempDir()
	clean := writeFixture(t, tmpDir, "menu.yaml", cleanManifest)
	broken := writeFixture(t, tmpDir, "game.yaml", brokenManifest)

	stamps := cache.NewMemoryCache()
	p := Pipeline{Env: Environment{Writer: &MemoryWriter{}, Cache: stamps}}
	opts := RunOptions{Manifests: []string{clean, broken}}

	summary, err := p.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Findings() != 3 {
		t.Fatalf("Findings() = %d, want 3", summary.Findings())
	}
	// Only the clean manifest earns a stamp.
	if stamps.Len() != 1 {
		t.Fatalf("stamps stored = %d, want 1", stamps.Len())
	}

	// The second run serves the clean manifest from its stamp and still
	// reports both manifests.
	summary, err = p.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	if len(summary.Reports) != 2 {
		t.Fatalf("Reports = %d, want 2", len(summary.Reports))
	}
	if !summary.Reports[0].Clean() {
		t.Fatalf("stamped manifest reported findings: %v", summary.Reports[0].Diagnostics)
	}
	if summary.Findings() != 3 {
		t.Fatalf("Findings() = %d, want 3 from the unstamped manifest", summary.Findings())
	}

	// Editing the manifest changes its key, so it is re-checked and
	// re-stamped under the new content.
	writeFixture(t, tmpDir, "menu.yaml", strings.Replace(cleanManifest, "Button", "Switch", 1))
	summary, err = p.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("third Run returned error: %v", err)
	}
	if !summary.Reports[0].Clean() {
		t.Fatalf("edited manifest reported findings: %v", summary.Reports[0].Diagnostics)
	}
	if stamps.Len() != 2 {
		t.Fatalf("stamps stored = %d, want 2 after edit", stamps.Len())
	}

	// Generation runs never trust stamps; the stub proves the manifest
	// was parsed.
	genSummary, err := p.Run(context.Background(), RunOptions{Manifests: []string{clean}, Gen: true, DryRun: true})
	if err != nil {
		t.Fatalf("gen Run returned error: %v", err)
	}
	if len(genSummary.Files) != 1 {
		t.Fatalf("Files = %d, want stub despite existing stamp", len(genSummary.Files))
	}
}

func TestRunConfigWarnings(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixture(t, tmpDir, "menu.yaml", cleanManifest)
	configPath := writeFixture(t, tmpDir, "namekit.toml", "projects = [\"menu.yaml\"]\nextra = 1\n")

	p := Pipeline{Env: Environment{Writer: &MemoryWriter{}}}
	summary, err := p.Run(context.Background(), RunOptions{ConfigPath: configPath})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(summary.Warnings) != 1 || !strings.Contains(summary.Warnings[0], "unknown configuration keys") {
		t.Fatalf("Warnings = %v, want unknown-key warning", summary.Warnings)
	}

	if _, err := p.Run(context.Background(), RunOptions{ConfigPath: configPath, StrictConfig: true}); err == nil {
		t.Fatal("strict config run should fail on unknown keys")
	}
}

func TestRunManifestParseError(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "bad.yaml", "sprites: [\n")

	p := Pipeline{Env: Environment{Writer: &MemoryWriter{}}}
	_, err := p.Run(context.Background(), RunOptions{Manifests: []string{path}})
	if err == nil {
		t.Fatal("expected parse error for malformed manifest")
	}
}

func TestRunDuplicateIDs(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "dup.yaml", `name: Dup
sprites:
  - id: 0c2f9f87-6f83-4466-b7e9-63b3e428847e
    name: Hero
sounds:
  - id: 0c2f9f87-6f83-4466-b7e9-63b3e428847e
    name: pop
`)

	p := Pipeline{Env: Environment{Writer: &MemoryWriter{}}}
	_, err := p.Run(context.Background(), RunOptions{Manifests: []string{path}})
	if err == nil || !strings.Contains(err.Error(), "duplicate asset ids") {
		t.Fatalf("Run error = %v, want duplicate-id error", err)
	}
}

func TestRunContextCancelled(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFixture(t, tmpDir, "menu.yaml", cleanManifest)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := Pipeline{Env: Environment{Writer: &MemoryWriter{}}}
	_, err := p.Run(ctx, RunOptions{Manifests: []string{path}})
	if err == nil || !strings.Contains(err.Error(), "context canceled") {
		t.Fatalf("Run error = %v, want context cancellation", err)
	}
}

func TestOSWriterAtomic(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "out", "assets.gen.go")

	writer := NewOSWriter()
	if err := writer.WriteFile(target, []byte("package assets\n")); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}
	if string(data) != "package assets\n" {
		t.Fatalf("written content = %q", data)
	}

	leftovers, err := filepath.Glob(filepath.Join(tmpDir, "out", ".namekit-*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}

	if err := writer.WriteFile("", nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}
