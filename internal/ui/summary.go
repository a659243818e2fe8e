// Package ui renders end-of-run summaries for batch commands.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// FileLine is one row of a summary: a file and its outcome.
type FileLine struct {
	Path   string
	Status Status
	Detail string // appended dimmed, e.g. "3 violations" or "fixed 2"
}

// Status classifies a file outcome.
type Status uint8

const (
	StatusOK Status = iota
	StatusWarn
	StatusError
)

func (s Status) label() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarn:
		return "warn"
	default:
		return "error"
	}
}

func (s Status) style() lipgloss.Style {
	switch s {
	case StatusOK:
		return okStyle
	case StatusWarn:
		return warnStyle
	default:
		return errStyle
	}
}

// Summary renders the per-file table plus a one-line tally.
func Summary(title string, lines []FileLine) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	ok, warn, fail := 0, 0, 0
	for _, line := range lines {
		switch line.Status {
		case StatusOK:
			ok++
		case StatusWarn:
			warn++
		default:
			fail++
		}
		status := line.Status.style().Render(fmt.Sprintf("%5s", line.Status.label()))
		b.WriteString(fmt.Sprintf("  %s  %s", status, truncate(line.Path, 72)))
		if line.Detail != "" {
			b.WriteString(" " + dimStyle.Render("("+line.Detail+")"))
		}
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("%d file(s): %d ok, %d with findings, %d failed", len(lines), ok, warn, fail)))
	b.WriteString("\n")
	return b.String()
}

func truncate(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
