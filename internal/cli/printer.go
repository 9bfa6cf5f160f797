package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/fableworks/namekit/internal/config"
	"github.com/fableworks/namekit/internal/declgen"
	"github.com/fableworks/namekit/internal/lint"
	"github.com/fableworks/namekit/internal/pipeline"
	"github.com/fableworks/namekit/internal/renameplan"
)

// Printer renders pipeline results for humans. Per-item detail lines are
// suppressed in quiet mode; the closing result line always prints.
type Printer struct {
	out   io.Writer
	lang  config.Lang
	quiet bool

	good *color.Color
	bad  *color.Color
	code *color.Color
}

func newPrinter(out io.Writer, lang config.Lang, quiet bool) *Printer {
	return &Printer{
		out:   out,
		lang:  lang,
		quiet: quiet,
		good:  color.New(color.FgGreen, color.Bold),
		bad:   color.New(color.FgRed, color.Bold),
		code:  color.New(color.FgYellow),
	}
}

// Reports prints one line per diagnostic in the selected language.
func (p *Printer) Reports(reports []lint.Report) {
	if p.quiet {
		return
	}
	for _, report := range reports {
		for _, d := range report.Diagnostics {
			fmt.Fprintf(p.out, "%s: %s: %s %q: %s %s\n",
				d.Manifest, d.Path, d.Kind, d.Name,
				d.Message.In(string(p.lang)), p.code.Sprintf("[%s]", d.Code))
		}
	}
}

// Renames prints the repairs the pipeline made.
func (p *Printer) Renames(renames []pipeline.Rename) {
	if p.quiet {
		return
	}
	for _, r := range renames {
		fmt.Fprintf(p.out, "%s: %s: renamed %s %q -> %q\n",
			r.Manifest, r.Path, r.Kind, r.From, r.To)
	}
}

// Files prints the paths of generated declaration files.
func (p *Printer) Files(files []declgen.File) {
	if p.quiet {
		return
	}
	for _, file := range files {
		fmt.Fprintln(p.out, file.Path)
	}
}

func (p *Printer) Problems(count int) {
	p.bad.Fprintf(p.out, "found %s\n", plural(count, "naming problem"))
}

func (p *Printer) CleanResult() {
	p.good.Fprintln(p.out, "no naming problems found")
}

func (p *Printer) FixResult(renames, newIDs int, dryRun bool) {
	if dryRun {
		p.good.Fprintf(p.out, "would apply %s and assign %s\n",
			plural(renames, "rename"), plural(newIDs, "id"))
		return
	}
	p.good.Fprintf(p.out, "applied %s, assigned %s\n",
		plural(renames, "rename"), plural(newIDs, "id"))
}

func (p *Printer) GenResult(files, skipped int, dryRun bool) {
	if dryRun {
		p.good.Fprintf(p.out, "would generate %s\n", plural(files, "declaration file"))
	} else {
		p.good.Fprintf(p.out, "generated %s\n", plural(files, "declaration file"))
	}
	if skipped > 0 {
		p.bad.Fprintf(p.out, "skipped %s with naming problems, run fix first\n",
			plural(skipped, "manifest"))
	}
}

// AppliedRenames prints the renames a plan performed.
func (p *Printer) AppliedRenames(renames []renameplan.Rename) {
	if p.quiet {
		return
	}
	for _, r := range renames {
		if r.Kind == "costume" {
			fmt.Fprintf(p.out, "renamed costume %q -> %q in sprite %q\n", r.From, r.To, r.Sprite)
			continue
		}
		fmt.Fprintf(p.out, "renamed %s %q -> %q\n", r.Kind, r.From, r.To)
	}
}

func (p *Printer) RenameResult(count int, dryRun bool) {
	if dryRun {
		p.good.Fprintf(p.out, "plan is valid, would apply %s\n", plural(count, "rename"))
		return
	}
	p.good.Fprintf(p.out, "applied %s\n", plural(count, "rename"))
}

// RenameFailure prints the statement a plan failed on, with the message
// in the selected language.
func (p *Printer) RenameFailure(err *renameplan.ApplyError) {
	p.bad.Fprintf(p.out, "rename %s %q -> %q: %s\n",
		err.Kind, err.From, err.To, err.Message.In(string(p.lang)))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
