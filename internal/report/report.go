// Package report renders sweep results for the terminal.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fatih/color"

	"github.com/taigrr/cleanall/internal/types"
)

// Printer writes one line per report: successes to Out, failures to Err.
type Printer struct {
	Out    io.Writer
	Err    io.Writer
	DryRun bool

	mu     sync.Mutex
	name   *color.Color
	dim    *color.Color
	failed *color.Color
}

// NewPrinter creates a Printer. Colors are used only when useColor is set.
func NewPrinter(out, errOut io.Writer, useColor bool) *Printer {
	p := &Printer{
		Out:    out,
		Err:    errOut,
		name:   color.New(color.FgGreen),
		dim:    color.New(color.Faint),
		failed: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.name, p.dim, p.failed} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// ProjectName returns the display name of a project directory, or "" when
// the path has no usable base name.
func ProjectName(path string) string {
	base := filepath.Base(path)
	switch base {
	case "", ".", string(filepath.Separator):
		return ""
	}
	return base
}

func (p *Printer) projectName(path string) string {
	if name := ProjectName(path); name != "" {
		return p.name.Sprint(name)
	}
	return p.dim.Sprint("unknown name")
}

func displayPath(path string) string {
	if path == "" {
		return "<unknown>"
	}
	return path
}

// Print renders r.
func (p *Printer) Print(r types.Report) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch r.Kind {
	case types.ReportCleaned:
		if p.DryRun {
			fmt.Fprintf(p.Out, "Found project %s (%s).\n", p.projectName(r.Path), r.Path)
			return
		}
		fmt.Fprintf(p.Out, "Cleaned project %s.\n", p.projectName(r.Path))
	case types.ReportActionError:
		fmt.Fprintf(p.Err, "%s while cleaning project %s: %v\n", p.failed.Sprint("Error"), displayPath(r.Path), r.Err)
	case types.ReportScanError:
		fmt.Fprintf(p.Err, "%s while scanning for projects %s: %v\n", p.failed.Sprint("Error"), displayPath(r.Path), r.Err)
	}
}

// Summary renders the totals of a run.
func (p *Printer) Summary(s types.Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	verb := "Cleaned"
	if p.DryRun {
		verb = "Found"
	}
	fmt.Fprintf(p.Out, "%s %d %s, %d cleanup %s, %d scan %s.\n",
		verb, s.Cleaned, plural(s.Cleaned, "project", "projects"),
		s.ActionErrors, plural(s.ActionErrors, "error", "errors"),
		s.ScanErrors, plural(s.ScanErrors, "error", "errors"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
