package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Prompt is the confirmation question shown before applying.
const Prompt = "Are you sure to continue? Type 'Y' to continue: "

// Printer writes the plan, the prompt and the apply summary.
// Styles degrade to plain text when out is not a terminal.
type Printer struct {
	out io.Writer

	name    lipgloss.Style
	install lipgloss.Style
	create  lipgloss.Style
	update  lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
}

// NewPrinter creates a Printer for out.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		name:    r.NewStyle().Bold(true),
		install: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"}),
		create:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}),
		update:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"}),
		ok:      r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"}),
		warn:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}),
	}
}

// Entry prints one entry block: its name, its pending changes or OK, and a
// blank line.
func (p *Printer) Entry(name string, lines []string) {
	p.printf("%s\n", p.name.Render("Name: "+name))
	if len(lines) == 0 {
		p.printf("%s\n", p.ok.Render("OK"))
	}
	for _, line := range lines {
		p.printf("%s\n", p.styleFor(line).Render(line))
	}
	p.printf("\n")
}

// Prompt prints the confirmation question without a newline.
func (p *Printer) Prompt() {
	p.printf("%s", Prompt)
}

// Summary prints the counts of an apply.
func (p *Printer) Summary(report *Report) {
	p.printf("Applied: %d installed, %d created, %d updated", report.Installed, report.Created, report.Updated)
	if report.Elevated > 0 {
		p.printf(", %d elevated", report.Elevated)
	}
	p.printf("\n")

	if report.Degraded == 0 {
		return
	}
	p.printf("%s\n", p.warn.Render(fmt.Sprintf("%d file(s) left unsynced:", report.Degraded)))
	for _, target := range report.Unsynced {
		p.printf("  %s\n", target)
	}
}

func (p *Printer) styleFor(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, "Package"):
		return p.install
	case strings.HasPrefix(line, "File will be created"):
		return p.create
	default:
		return p.update
	}
}

// printf writes to the output, ignoring errors.
func (p *Printer) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
