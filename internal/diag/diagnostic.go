package diag

import (
	"bulloak/internal/source"
)

// Severity ranks a diagnostic. Bag ordering and HasErrors compare values
// numerically, so declaration order is part of the contract.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	}
	return "info"
}

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding produced by a pipeline phase.
// Primary is always a valid slice bound of the text that produced it.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Help     string
}

// WithNote returns a copy of the diagnostic with an extra note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithHelp returns a copy of the diagnostic with a help line.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
