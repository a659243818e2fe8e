package diag

import "bulloak/internal/source"

// Reporter is the minimal contract phases use to emit diagnostics.
// Implementations: BagReporter (appends to a Bag), NopReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter writes every diagnostic into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// Error builds an error-severity diagnostic.
func Error(code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: SevError,
		Code:     code,
		Message:  msg,
		Primary:  primary,
	}
}

// Warning builds a warning-severity diagnostic.
func Warning(code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: SevWarning,
		Code:     code,
		Message:  msg,
		Primary:  primary,
	}
}
