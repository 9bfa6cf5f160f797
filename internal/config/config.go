// Package config loads and validates the namekit configuration.
package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/fableworks/namekit/internal/fileset"
)

// Lang selects the language of user-facing messages.
type Lang string

const (
	// LangEn selects English messages.
	LangEn Lang = "en"
	// LangZh selects Chinese messages.
	LangZh Lang = "zh"
)

var validLangs = map[Lang]struct{}{
	LangEn: {},
	LangZh: {},
}

// ParseLang converts a user-supplied language value, typically a flag,
// into a Lang. The empty string selects English.
func ParseLang(s string) (Lang, error) {
	if s == "" {
		return LangEn, nil
	}
	lang := Lang(s)
	if _, ok := validLangs[lang]; !ok {
		return "", fmt.Errorf("unsupported lang %q", s)
	}
	return lang, nil
}

// NamingConfig captures naming-rule extensions.
type NamingConfig struct {
	ExtraReserved []string `toml:"extra_reserved"`
}

// GenerateConfig captures declaration-stub generation settings.
type GenerateConfig struct {
	Package string `toml:"package"`
	Out     string `toml:"out"`
}

// Config mirrors the expected namekit.toml schema.
type Config struct {
	Projects []string       `toml:"projects"`
	Lang     Lang           `toml:"lang"`
	Naming   NamingConfig   `toml:"naming"`
	Generate GenerateConfig `toml:"generate"`
}

// Plan is the fully-resolved configuration used by the pipeline.
type Plan struct {
	Manifests     []string
	Lang          Lang
	ExtraReserved []string
	Package       string
	Out           string
}

// LoadOptions tunes config loading behavior.
type LoadOptions struct {
	Strict   bool
	Resolver *fileset.Resolver
}

// Result wraps a loaded plan alongside any non-fatal warnings.
type Result struct {
	Plan     Plan
	Warnings []string
}

// DefaultPlan returns the plan used when no configuration file exists:
// English messages, no extra reserved words, declarations under gen/ in
// baseDir. Manifests stay empty; callers supply them explicitly.
func DefaultPlan(baseDir string) Plan {
	return Plan{
		Lang:    LangEn,
		Package: "assets",
		Out:     filepath.Join(baseDir, "gen"),
	}
}

// Load reads, validates, and resolves a namekit configuration file.
func Load(path string, opts LoadOptions) (Result, error) {
	var res Result

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return res, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}

	unknownKeys, err := collectUnknownKeys(data)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	if len(unknownKeys) > 0 {
		slices.Sort(unknownKeys)
		message := fmt.Sprintf("%s: unknown configuration keys: %s", path, strings.Join(unknownKeys, ", "))
		if opts.Strict {
			return res, errors.New(message)
		}
		res.Warnings = append(res.Warnings, message)
	}

	for _, section := range sectionKeys {
		unknown, err := collectUnknownSectionKeys(data, section.name, section.known)
		if err != nil {
			return res, fmt.Errorf("%s: %w", path, err)
		}
		if len(unknown) == 0 {
			continue
		}
		slices.Sort(unknown)
		message := fmt.Sprintf("%s: unknown %s keys: %s", path, section.name, strings.Join(unknown, ", "))
		if opts.Strict {
			return res, errors.New(message)
		}
		res.Warnings = append(res.Warnings, message)
	}

	lang, err := resolveLang(path, cfg.Lang)
	if err != nil {
		return res, err
	}

	pkg, err := resolvePackage(path, cfg.Generate.Package)
	if err != nil {
		return res, err
	}

	out, err := resolveOut(path, cfg.Generate.Out)
	if err != nil {
		return res, err
	}

	baseDir := filepath.Dir(path)

	var resolver fileset.Resolver
	if opts.Resolver != nil {
		resolver = *opts.Resolver
	} else {
		resolver, err = fileset.NewOSResolver(baseDir)
		if err != nil {
			return res, fmt.Errorf("%s: %w", path, err)
		}
	}

	manifests, err := resolvePatterns(resolver, "projects", cfg.Projects)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}

	res.Plan = Plan{
		Manifests:     manifests,
		Lang:          lang,
		ExtraReserved: cfg.Naming.ExtraReserved,
		Package:       pkg,
		Out:           out,
	}

	return res, nil
}

var sectionKeys = []struct {
	name  string
	known map[string]struct{}
}{
	{"naming", map[string]struct{}{"extra_reserved": {}}},
	{"generate", map[string]struct{}{"package": {}, "out": {}}},
}

func collectUnknownKeys(data []byte) ([]string, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	known := map[string]struct{}{
		"projects": {},
		"lang":     {},
		"naming":   {},
		"generate": {},
	}

	unknown := make([]string, 0)
	for key := range raw {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}

	return unknown, nil
}

func collectUnknownSectionKeys(data []byte, section string, known map[string]struct{}) ([]string, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	value, ok := raw[section]
	if !ok {
		return nil, nil
	}
	record, ok := value.(map[string]any)
	if !ok {
		return nil, nil
	}
	unknown := make([]string, 0)
	for key := range record {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	return unknown, nil
}

func resolveLang(path string, lang Lang) (Lang, error) {
	if lang == "" {
		return LangEn, nil
	}
	if _, ok := validLangs[lang]; !ok {
		return "", fmt.Errorf("%s: unsupported lang %q", path, lang)
	}
	return lang, nil
}

func resolvePackage(path, pkg string) (string, error) {
	if pkg == "" {
		return "assets", nil
	}
	if !token.IsIdentifier(pkg) || token.Lookup(pkg) != token.IDENT {
		return "", fmt.Errorf("%s: invalid generate.package %q", path, pkg)
	}
	return pkg, nil
}

func resolveOut(path, out string) (string, error) {
	if out == "" {
		out = "gen"
	}
	if filepath.IsAbs(out) {
		return "", fmt.Errorf("%s: generate.out must be a relative path", path)
	}

	cleaned := filepath.Clean(out)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: generate.out must not traverse upwards", path)
	}

	baseDir := filepath.Dir(path)
	return filepath.Join(baseDir, cleaned), nil
}

func resolvePatterns(resolver fileset.Resolver, field string, patterns []string) ([]string, error) {
	paths, err := resolver.Resolve(patterns)
	if err != nil {
		switch {
		case errors.Is(err, fileset.ErrNoPatterns):
			return nil, fmt.Errorf("%s must include at least one pattern", field)
		default:
			var noMatchErr fileset.NoMatchError
			if errors.As(err, &noMatchErr) {
				return nil, fmt.Errorf("%s patterns matched no manifests: %s", field, strings.Join(noMatchErr.Patterns, ", "))
			}

			var patternErr fileset.PatternError
			if errors.As(err, &patternErr) {
				return nil, fmt.Errorf("%s: invalid glob pattern %q: %w", field, patternErr.Pattern, patternErr.Err)
			}

			return nil, fmt.Errorf("%s: %w", field, err)
		}
	}

	return paths, nil
}
