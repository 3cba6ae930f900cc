// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/resume-formatter/internal/db"
	"github.com/jonathan/resume-formatter/internal/pipeline"
	"github.com/jonathan/resume-formatter/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out   io.Writer
	box   lipgloss.Style
	title lipgloss.Style
	ok    lipgloss.Style
	fail  lipgloss.Style
	muted lipgloss.Style
}

// NewPrinter creates a new Printer that writes to the given writer.
// Colours are only emitted when out is a terminal.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out: out,
		box: r.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1).
			Width(boxWidth - 2),
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		ok:    r.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		muted: r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

// printBox prints a bordered box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = truncate(line, boxWidth-6)
	}
	body := p.title.Render(title) + "\n\n" + strings.Join(lines, "\n")
	fmt.Fprintln(p.out, p.box.Render(body))
}

// truncate shortens s to n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintResult outputs a summary of a successful run: candidate, stage timings,
// sections and experience entries.
func (p *Printer) PrintResult(res *pipeline.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate: %s\n", res.Candidate.FullName))
	if res.FileName != "" {
		sb.WriteString(fmt.Sprintf("Output:    %s\n", res.FileName))
	}
	if res.Metadata != nil {
		sb.WriteString(fmt.Sprintf("Source:    %s (%d lines, %d removed)\n",
			res.Metadata.Source, res.Metadata.NormalizedLines, res.Metadata.RemovedLines))
	}
	if res.Document != nil {
		sb.WriteString(fmt.Sprintf("Nodes:     %d\n", len(res.Document.Nodes)))
	}

	if len(res.Durations) > 0 {
		sb.WriteString("\nStages:\n")
		for _, stage := range pipeline.Stages {
			if d, ok := res.Durations[stage]; ok {
				sb.WriteString(fmt.Sprintf("  %-10s %s\n", stage, d.Round(time.Microsecond)))
			}
		}
	}

	p.printBox("FORMATTED "+res.RunID.String(), strings.TrimSuffix(sb.String(), "\n"))
	p.PrintSections(res.Sections, res.Discarded)
	p.PrintExperience(res.Entries)
}

// PrintSections outputs line counts per section and any discarded pre-heading lines.
func (p *Printer) PrintSections(sections *types.SectionModel, discarded []string) {
	if sections == nil {
		return
	}

	var sb strings.Builder
	for _, id := range types.AllSections {
		n := len(sections.Lines(id))
		line := fmt.Sprintf("%-12s %d", id, n)
		if n == 0 {
			line = p.muted.Render(line)
		}
		sb.WriteString(line + "\n")
	}

	if len(discarded) > 0 {
		sb.WriteString(fmt.Sprintf("\nDiscarded %d line(s) before the first heading:\n", len(discarded)))
		count := min(len(discarded), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", discarded[i]))
		}
		if len(discarded) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(discarded)-maxItemsToShow))
		}
	}

	p.printBox("CLASSIFIED SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExperience outputs the first few experience entries with their durations.
func (p *Printer) PrintExperience(entries []types.ExperienceEntry) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d entries:\n\n", len(entries)))

	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := entries[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, e.Header))
		if e.HasDuration() {
			sb.WriteString(fmt.Sprintf("    %s\n", e.DurationText()))
		}
		if e.Subtitle != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", e.Subtitle))
		}
		sb.WriteString(fmt.Sprintf("    %d bullet(s)\n", len(e.Bullets)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more entries", len(entries)-maxItemsToShow))
	}

	p.printBox("EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintError outputs a failed run, naming the stage that stopped it.
func (p *Printer) PrintError(source string, err error) {
	if err == nil {
		return
	}

	var sb strings.Builder
	if source != "" {
		sb.WriteString(fmt.Sprintf("Source: %s\n", source))
	}
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		sb.WriteString(fmt.Sprintf("Stage:  %s\n", stageErr.Stage))
		sb.WriteString(p.fail.Render(stageErr.Cause.Error()))
	} else {
		sb.WriteString(p.fail.Render(err.Error()))
	}

	p.printBox("FORMAT FAILED", sb.String())
}

// PrintBatch outputs one line per file of a batch run followed by totals.
func (p *Printer) PrintBatch(results []pipeline.FileResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for _, r := range results {
		if r.Err != nil {
			sb.WriteString(p.fail.Render("✗ "+r.Path) + "\n")
			continue
		}
		sb.WriteString(p.ok.Render("✓ "+r.Path) + "\n")
	}

	failed := pipeline.Failed(results)
	sb.WriteString(fmt.Sprintf("\n%d formatted, %d failed", len(results)-failed, failed))

	p.printBox("BATCH", sb.String())
}

// PrintRuns outputs recorded runs, newest first.
func (p *Printer) PrintRuns(runs []db.FormatRun) {
	if len(runs) == 0 {
		p.printBox("RUN HISTORY", p.muted.Render("no runs recorded"))
		return
	}

	var sb strings.Builder
	for i, run := range runs {
		status := p.ok.Render(run.Status)
		if run.Status == db.StatusFailed {
			status = p.fail.Render(run.Status + " at " + run.ErrorStage)
		}
		sb.WriteString(fmt.Sprintf("%s  %s\n", run.ID.String()[:8], status))
		name := run.CandidateName
		if name == "" {
			name = "-"
		}
		sb.WriteString(fmt.Sprintf("    %s  %s  %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04"), run.SourceName, name))
		if i < len(runs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("RUN HISTORY (%d)", len(runs)), strings.TrimSuffix(sb.String(), "\n"))
}
