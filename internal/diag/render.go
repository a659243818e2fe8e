package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"bulloak/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	boldColor = color.New(color.Bold)
	dimColor  = color.New(color.FgBlue)
)

func severityLabel(s Severity) (*color.Color, string) {
	switch s {
	case SevError:
		return errColor, "error"
	case SevWarning:
		return warnColor, "warn"
	default:
		return infoColor, "info"
	}
}

// Render formats one diagnostic with a caret-annotated source excerpt:
//
//	bulloak error: unexpected token '├'
//	  --> foo.tree:3:5
//	   |
//	 3 | ├── something
//	   | ^
//
// Underline and padding widths are computed from display widths so carets
// line up under box-drawing glyphs and wide runes.
func Render(fs *source.FileSet, d Diagnostic) string {
	var b strings.Builder

	sev, label := severityLabel(d.Severity)
	fmt.Fprintf(&b, "bulloak %s: %s\n", sev.Sprint(label), boldColor.Sprint(d.Message))

	file := fs.Get(d.Primary.File)
	if file == nil {
		return b.String()
	}
	start, _ := fs.Resolve(d.Primary)
	path := fs.RelPath(d.Primary.File)
	fmt.Fprintf(&b, "  %s %s:%d:%d\n", dimColor.Sprint("-->"), path, start.Line, start.Col)

	lineText := file.Line(d.Primary.Start)
	gutter := len(fmt.Sprintf("%d", start.Line))
	fmt.Fprintf(&b, " %s %s\n", strings.Repeat(" ", gutter), dimColor.Sprint("|"))
	fmt.Fprintf(&b, " %s %s %s\n", dimColor.Sprintf("%d", start.Line), dimColor.Sprint("|"), lineText)

	pad := runewidth.StringWidth(truncateAt(lineText, int(start.Col-1)))
	width := caretWidth(file, d.Primary, lineText, int(start.Col-1))
	fmt.Fprintf(&b, " %s %s %s%s\n",
		strings.Repeat(" ", gutter),
		dimColor.Sprint("|"),
		strings.Repeat(" ", pad),
		sev.Sprint(strings.Repeat("^", width)))

	for _, n := range d.Notes {
		nStart, _ := fs.Resolve(n.Span)
		fmt.Fprintf(&b, "  %s note: %s (%s:%d:%d)\n",
			dimColor.Sprint("="), n.Msg, path, nStart.Line, nStart.Col)
	}
	if d.Help != "" {
		fmt.Fprintf(&b, "  %s help: %s\n", dimColor.Sprint("="), d.Help)
	}
	return b.String()
}

// RenderBag renders every diagnostic in deterministic order.
func RenderBag(fs *source.FileSet, bag *Bag) string {
	bag.Sort()
	var b strings.Builder
	for i, d := range bag.Items() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(Render(fs, d))
	}
	return b.String()
}

// truncateAt returns the prefix of line holding the first n bytes of the
// original line, clamped to the line length.
func truncateAt(line string, n int) string {
	if n < 0 {
		return ""
	}
	if n > len(line) {
		n = len(line)
	}
	return line[:n]
}

func caretWidth(file *source.File, sp source.Span, lineText string, colOff int) int {
	end := sp.End
	// Clamp the underline to the end of the excerpt line.
	lineEnd := sp.Start + uint32(len(lineText)-colOff)
	if end > lineEnd {
		end = lineEnd
	}
	if end <= sp.Start {
		return 1
	}
	w := runewidth.StringWidth(file.Slice(source.Span{File: sp.File, Start: sp.Start, End: end}))
	if w < 1 {
		w = 1
	}
	return w
}
