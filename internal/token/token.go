package token

import (
	"bulloak/internal/source"
)

// Token represents a single source token with its location.
// Col is the 1-based column of the token's first character; the parser uses
// it as the nesting signal, so the lexer records it instead of re-resolving
// offsets on every comparison.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Col  uint32
}

// IsKeyword reports whether the token is a DSL keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsWord reports whether the token is a plain word.
func (t Token) IsWord() bool { return t.Kind == Word }
