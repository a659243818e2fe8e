package lexer

import "bulloak/internal/diag"

// Options configures a Lexer instance.
type Options struct {
	Reporter diag.Reporter
}

func (o Options) reporter() diag.Reporter {
	if o.Reporter == nil {
		return diag.NopReporter{}
	}
	return o.Reporter
}
