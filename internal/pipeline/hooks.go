package pipeline

import (
	"context"
	"fmt"

	"github.com/fableworks/namekit/internal/declgen"
	"github.com/fableworks/namekit/internal/lint"
)

// Hooks provides extension points in the pipeline execution.
// Each hook runs at a fixed stage; returning an error aborts the run.
type Hooks struct {
	// BeforeLint is called before any manifest is loaded.
	BeforeLint func(ctx context.Context, manifests []string) error

	// AfterLint is called once every manifest has been linted.
	AfterLint func(ctx context.Context, reports []lint.Report) error

	// AfterFix is called after repairs are applied. Skipped unless fixing.
	AfterFix func(ctx context.Context, renames []Rename) error

	// AfterGenerate is called after declaration files are rendered.
	// Skipped unless generating.
	AfterGenerate func(ctx context.Context, files []declgen.File) error

	// BeforeWrite is called before generated files are persisted.
	BeforeWrite func(ctx context.Context, files []declgen.File) error

	// AfterWrite is the final hook, called even if earlier stages failed.
	AfterWrite func(ctx context.Context, summary Summary) error
}

// Chain combines two Hooks, calling h's hooks first, then other's hooks.
// If a hook in h returns an error, other's hook is not called.
func (h Hooks) Chain(other Hooks) Hooks {
	return Hooks{
		BeforeLint:    chainHook(h.BeforeLint, other.BeforeLint),
		AfterLint:     chainHook(h.AfterLint, other.AfterLint),
		AfterFix:      chainHook(h.AfterFix, other.AfterFix),
		AfterGenerate: chainHook(h.AfterGenerate, other.AfterGenerate),
		BeforeWrite:   chainHook(h.BeforeWrite, other.BeforeWrite),
		AfterWrite:    chainHook(h.AfterWrite, other.AfterWrite),
	}
}

// chainHook chains two hooks of the same type.
func chainHook[T any](first, second func(context.Context, T) error) func(context.Context, T) error {
	if first == nil {
		return second
	}
	if second == nil {
		return first
	}
	return func(ctx context.Context, arg T) error {
		if err := first(ctx, arg); err != nil {
			return err
		}
		return second(ctx, arg)
	}
}

// runHook invokes a single hook, tagging any error with its stage.
func runHook[T any](ctx context.Context, hook func(context.Context, T) error, arg T, stage string) error {
	if hook == nil {
		return nil
	}
	if err := hook(ctx, arg); err != nil {
		return fmt.Errorf("%s hook: %w", stage, err)
	}
	return nil
}

// NoHooks returns a Hooks with all nil functions (no-op).
func NoHooks() Hooks {
	return Hooks{}
}
