package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fableworks/namekit/internal/fileset"
	"github.com/fableworks/namekit/internal/logging"
	"github.com/fableworks/namekit/internal/pipeline"
)

const spaceManifest = `name: Space Shooter
sprites:
  - name: Rocket
    costumes:
      - name: idle.png
        file: idle.png
      - name: thrust
        file: thrust.png
  - name: Rocket
sounds:
  - name: laser
  - name: laser
stage:
  backdrops:
    - name: deep space
`

// countingWriter counts delegated writes so skip-unchanged behavior is
// observable against the real filesystem.
type countingWriter struct {
	inner pipeline.Writer
	calls int
}

func (w *countingWriter) WriteFile(path string, data []byte) error {
	w.calls++
	return w.inner.WriteFile(path, data)
}

// TestCheckFixGenerateCycle drives the full workflow on disk: a dirty
// manifest is reported, repaired in place, verified clean, and finally
// compiled into declaration stubs. Re-running each phase is a no-op.
func TestCheckFixGenerateCycle(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	config := `projects = ["projects/*.yaml"]

[generate]
out = "stubs"
`
	writeFile(t, tmpDir, "namekit.toml", config)
	writeFile(t, tmpDir, "projects/space.yaml", spaceManifest)
	configPath := filepath.Join(tmpDir, "namekit.toml")
	manifestPath := filepath.Join(tmpDir, "projects", "space.yaml")

	newPipeline := func(w pipeline.Writer) *pipeline.Pipeline {
		return &pipeline.Pipeline{
			Env: pipeline.Environment{
				FSResolver: fileset.NewOSResolver,
				Logger:     logging.Nop(),
				Writer:     w,
			},
		}
	}

	// Check: four findings, nothing written.
	checker := newPipeline(&countingWriter{inner: pipeline.NewOSWriter()})
	summary, err := checker.Run(ctx, pipeline.RunOptions{ConfigPath: configPath})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if summary.Findings() != 4 {
		t.Fatalf("Findings() = %d, want 4", summary.Findings())
	}

	// Fix: the manifest is rewritten once.
	fixWriter := &countingWriter{inner: pipeline.NewOSWriter()}
	summary, err = newPipeline(fixWriter).Run(ctx, pipeline.RunOptions{ConfigPath: configPath, Fix: true})
	if err != nil {
		t.Fatalf("fix failed: %v", err)
	}
	if len(summary.Renames) != 4 {
		t.Fatalf("Renames = %+v, want 4", summary.Renames)
	}
	if fixWriter.calls != 1 {
		t.Fatalf("fix wrote %d files, want 1", fixWriter.calls)
	}

	repaired, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("read repaired manifest: %v", err)
	}
	for _, want := range []string{"Rocket2", "idlePng", "laser2", "deepSpace", "id:"} {
		if !strings.Contains(string(repaired), want) {
			t.Errorf("repaired manifest missing %q:\n%s", want, repaired)
		}
	}

	// Re-check: clean now.
	summary, err = checker.Run(ctx, pipeline.RunOptions{ConfigPath: configPath})
	if err != nil {
		t.Fatalf("re-check failed: %v", err)
	}
	if !summary.Clean() {
		t.Fatalf("expected clean manifest after fix, got %v", summary.Reports)
	}

	// Fix again: nothing changes, nothing is written.
	refixWriter := &countingWriter{inner: pipeline.NewOSWriter()}
	summary, err = newPipeline(refixWriter).Run(ctx, pipeline.RunOptions{ConfigPath: configPath, Fix: true})
	if err != nil {
		t.Fatalf("second fix failed: %v", err)
	}
	if len(summary.Renames) != 0 || refixWriter.calls != 0 {
		t.Fatalf("second fix renamed %d and wrote %d, want 0 and 0", len(summary.Renames), refixWriter.calls)
	}

	// Generate: stubs land under the configured out directory.
	genWriter := &countingWriter{inner: pipeline.NewOSWriter()}
	summary, err = newPipeline(genWriter).Run(ctx, pipeline.RunOptions{ConfigPath: configPath, Gen: true})
	if err != nil {
		t.Fatalf("gen failed: %v", err)
	}
	if genWriter.calls != 1 {
		t.Fatalf("gen wrote %d files, want 1", genWriter.calls)
	}

	stubPath := filepath.Join(tmpDir, "stubs", "space", "assets.gen.go")
	stub, err := os.ReadFile(stubPath)
	if err != nil {
		t.Fatalf("read generated stub: %v", err)
	}
	for _, want := range []string{
		"package assets",
		`SpriteRocket`,
		`SpriteRocket2`,
		`SoundLaser`,
		`SoundLaser2`,
		`BackdropDeepSpace`,
	} {
		if !strings.Contains(string(stub), want) {
			t.Errorf("stub missing %q:\n%s", want, stub)
		}
	}
	if strings.Contains(string(stub), "idlePng") {
		t.Error("costume names must not surface in declaration stubs")
	}

	// Generate again: identical content is not rewritten.
	regenWriter := &countingWriter{inner: pipeline.NewOSWriter()}
	if _, err = newPipeline(regenWriter).Run(ctx, pipeline.RunOptions{ConfigPath: configPath, Gen: true}); err != nil {
		t.Fatalf("second gen failed: %v", err)
	}
	if regenWriter.calls != 0 {
		t.Fatalf("second gen wrote %d files, want 0", regenWriter.calls)
	}
}

// TestExplicitManifests runs the pipeline without any configuration file.
func TestExplicitManifests(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	writeFile(t, tmpDir, "space.yaml", spaceManifest)
	manifestPath := filepath.Join(tmpDir, "space.yaml")

	p := &pipeline.Pipeline{
		Env: pipeline.Environment{
			FSResolver: fileset.NewOSResolver,
			Logger:     logging.Nop(),
			Writer:     pipeline.NewOSWriter(),
		},
	}

	summary, err := p.Run(ctx, pipeline.RunOptions{
		Manifests: []string{manifestPath},
		Gen:       true,
		DryRun:    true,
	})
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if summary.Findings() != 4 {
		t.Fatalf("Findings() = %d, want 4", summary.Findings())
	}
	// The dirty manifest produces no stub, and dry-run writes nothing.
	if len(summary.Files) != 0 {
		t.Fatalf("Files = %+v, want none for a dirty manifest", summary.Files)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}
