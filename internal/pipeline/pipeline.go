// Package pipeline orchestrates manifest linting, repair and
// declaration-stub generation.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"github.com/fableworks/namekit/internal/assetname"
	"github.com/fableworks/namekit/internal/cache"
	"github.com/fableworks/namekit/internal/config"
	"github.com/fableworks/namekit/internal/declgen"
	"github.com/fableworks/namekit/internal/fileset"
	"github.com/fableworks/namekit/internal/lang"
	"github.com/fableworks/namekit/internal/lint"
	"github.com/fableworks/namekit/internal/logging"
	"github.com/fableworks/namekit/internal/manifest"
)

// stampTTL bounds how long a clean-check stamp stays valid.
const stampTTL = 7 * 24 * time.Hour

// Environment captures external dependencies used by the pipeline.
// Cache is optional; when set, check-only runs skip manifests whose
// content already passed a previous check.
type Environment struct {
	FSResolver func(string) (fileset.Resolver, error)
	Logger     *slog.Logger
	Writer     Writer
	Cache      cache.Cache
}

// Writer persists repaired manifests and generated files.
type Writer interface {
	WriteFile(path string, data []byte) error
}

// Pipeline orchestrates configuration loading, linting, repair and
// declaration-stub generation.
type Pipeline struct {
	Env   Environment
	Hooks Hooks
}

// Rename records one repair applied to a manifest.
type Rename struct {
	Manifest string
	Path     string
	Kind     lint.Kind
	From     string
	To       string
}

// Summary captures everything a run produced.
type Summary struct {
	Reports  []lint.Report
	Renames  []Rename
	Files    []declgen.File
	Warnings []string
	Lang     config.Lang
	NewIDs   int
}

// Clean reports whether every manifest passed without findings.
func (s Summary) Clean() bool {
	for _, report := range s.Reports {
		if !report.Clean() {
			return false
		}
	}
	return true
}

// Findings returns the total diagnostic count across all manifests.
func (s Summary) Findings() int {
	total := 0
	for _, report := range s.Reports {
		total += len(report.Diagnostics)
	}
	return total
}

// RunOptions configures a pipeline execution.
type RunOptions struct {
	ConfigPath   string
	Manifests    []string
	Lang         config.Lang
	OutOverride  string
	Fix          bool
	Gen          bool
	DryRun       bool
	StrictConfig bool
}

// WriteError wraps failures encountered while persisting files.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// NewOSWriter returns a Writer that performs atomic writes on the local filesystem.
func NewOSWriter() Writer {
	return &osWriter{perm: 0o644}
}

type osWriter struct {
	perm fs.FileMode
}

func (w *osWriter) WriteFile(path string, data []byte) error {
	if path == "" {
		return errors.New("pipeline: empty path")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".namekit-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
		_ = tmp.Close()
	}()
	if w.perm != 0 {
		if err := tmp.Chmod(w.perm); err != nil {
			return fmt.Errorf("chmod temp file: %w", err)
		}
	}
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	success = true
	return nil
}

// Run executes the pipeline according to the provided options.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (summary Summary, err error) {
	logger := p.Env.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	defer func() {
		if hookErr := runHook(ctx, p.Hooks.AfterWrite, summary, "after write"); hookErr != nil && err == nil {
			err = hookErr
		}
	}()

	plan, warnings, err := p.loadPlan(opts)
	if err != nil {
		return summary, err
	}
	summary.Warnings = warnings
	summary.Lang = plan.Lang
	for _, warning := range warnings {
		logger.Warn(warning)
	}

	rules := assetname.New(assetname.Options{Reserved: lang.New(plan.ExtraReserved)})
	linter := lint.New(rules)
	stubs := declgen.New(declgen.Options{Package: plan.Package})

	if err := runHook(ctx, p.Hooks.BeforeLint, plan.Manifests, "before lint"); err != nil {
		return summary, err
	}

	writer := p.Env.Writer
	if writer == nil {
		writer = NewOSWriter()
	}

	// Stamps only ever record clean checks, so they are consulted for
	// check-only runs and never replace a repair or generation pass.
	useCache := p.Env.Cache != nil && !opts.Fix && !opts.Gen

	usedStems := make(map[string]struct{}, len(plan.Manifests))
	for _, manifestPath := range plan.Manifests {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		content, readErr := os.ReadFile(filepath.Clean(manifestPath))
		if readErr != nil {
			return summary, fmt.Errorf("read manifest: %w", readErr)
		}

		var stampKey string
		if useCache {
			stampKey = cache.Key(content, plan.ExtraReserved)
			if _, ok := p.Env.Cache.Get(ctx, stampKey); ok {
				summary.Reports = append(summary.Reports, lint.Report{Manifest: manifestPath})
				logger.Debug("manifest unchanged since last clean check", "manifest", manifestPath)
				continue
			}
		}

		project, parseErr := manifest.Parse(manifestPath, content)
		if parseErr != nil {
			return summary, parseErr
		}
		if validateErr := project.Validate(); validateErr != nil {
			return summary, fmt.Errorf("%s: %w", manifestPath, validateErr)
		}

		report := linter.Lint(manifestPath, project)
		summary.Reports = append(summary.Reports, report)
		logger.Debug("linted manifest", "manifest", manifestPath, "findings", len(report.Diagnostics))

		if useCache && report.Clean() {
			p.Env.Cache.Set(ctx, stampKey, cache.Stamp{CheckedAt: time.Now()}, stampTTL)
		}

		if opts.Fix {
			assigned := project.EnsureIDs()
			summary.NewIDs += assigned

			renames := linter.Fix(project)
			for _, change := range renames {
				summary.Renames = append(summary.Renames, Rename{
					Manifest: manifestPath,
					Path:     change.Path,
					Kind:     change.Kind,
					From:     change.From,
					To:       change.To,
				})
			}

			if (assigned > 0 || len(renames) > 0) && !opts.DryRun {
				data, marshalErr := project.Marshal()
				if marshalErr != nil {
					return summary, fmt.Errorf("%s: %w", manifestPath, marshalErr)
				}
				if writeErr := writeFile(writer, manifestPath, data, logger); writeErr != nil {
					return summary, writeErr
				}
			}
		}

		// Stubs are only rendered from valid names: either the manifest
		// linted clean or Fix just repaired it.
		if opts.Gen {
			if !opts.Fix && !report.Clean() {
				logger.Warn("skipping stub generation, manifest has findings", "manifest", manifestPath)
				continue
			}

			file, genErr := stubs.Generate(project)
			if genErr != nil {
				return summary, fmt.Errorf("%s: %w", manifestPath, genErr)
			}

			stem := assetname.UniqueName(manifestStem(manifestPath), func(candidate string) bool {
				_, taken := usedStems[candidate]
				return !taken
			})
			usedStems[stem] = struct{}{}

			summary.Files = append(summary.Files, declgen.File{
				Path:    filepath.Join(plan.Out, stem, file.Path),
				Content: file.Content,
			})
		}
	}

	if err := runHook(ctx, p.Hooks.AfterLint, summary.Reports, "after lint"); err != nil {
		return summary, err
	}
	if opts.Fix {
		if err := runHook(ctx, p.Hooks.AfterFix, summary.Renames, "after fix"); err != nil {
			return summary, err
		}
	}
	if opts.Gen {
		if err := runHook(ctx, p.Hooks.AfterGenerate, summary.Files, "after generate"); err != nil {
			return summary, err
		}
	}

	if opts.DryRun || len(summary.Files) == 0 {
		return summary, nil
	}

	if err := runHook(ctx, p.Hooks.BeforeWrite, summary.Files, "before write"); err != nil {
		return summary, err
	}

	for _, file := range summary.Files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if writeErr := writeFile(writer, file.Path, file.Content, logger); writeErr != nil {
			return summary, writeErr
		}
	}

	return summary, nil
}

// loadPlan resolves the effective plan from the config file, explicit
// manifest paths, and option overrides.
func (p *Pipeline) loadPlan(opts RunOptions) (config.Plan, []string, error) {
	var (
		plan     config.Plan
		warnings []string
	)
	baseDir := "."

	if opts.ConfigPath != "" {
		absConfigPath, err := filepath.Abs(opts.ConfigPath)
		if err != nil {
			return plan, nil, fmt.Errorf("resolve config path: %w", err)
		}
		baseDir = filepath.Dir(absConfigPath)

		loadOpts := config.LoadOptions{Strict: opts.StrictConfig}
		if p.Env.FSResolver != nil {
			resolver, err := p.Env.FSResolver(baseDir)
			if err != nil {
				return plan, nil, fmt.Errorf("resolve filesystem: %w", err)
			}
			loadOpts.Resolver = &resolver
		}

		result, err := config.Load(absConfigPath, loadOpts)
		if err != nil {
			return plan, nil, err
		}
		plan = result.Plan
		warnings = result.Warnings
	} else {
		plan = config.DefaultPlan(baseDir)
	}

	if len(opts.Manifests) > 0 {
		plan.Manifests = append([]string(nil), opts.Manifests...)
	}
	if len(plan.Manifests) == 0 {
		return plan, nil, errors.New("no manifests to process: provide a config file or manifest paths")
	}

	if opts.Lang != "" {
		plan.Lang = opts.Lang
	}
	if opts.OutOverride != "" {
		override := opts.OutOverride
		if !filepath.IsAbs(override) {
			override = filepath.Join(baseDir, override)
		}
		plan.Out = filepath.Clean(override)
	}

	return plan, warnings, nil
}

// writeFile persists data unless the target already holds identical content.
func writeFile(writer Writer, path string, data []byte, logger *slog.Logger) error {
	same, err := fileMatches(path, data)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if same {
		logger.Debug("file unchanged", "path", path)
		return nil
	}
	if err := writer.WriteFile(path, data); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	logger.Debug("wrote file", "path", path, "bytes", len(data))
	return nil
}

// manifestStem derives the per-project output directory name from the
// manifest file name.
func manifestStem(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." {
		return "project"
	}
	return stem
}

func fileMatches(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(existing, content), nil
}
