package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Tee represents the branch glyph of a non-last child.
	Tee // ├
	// Corner represents the branch glyph of a last child.
	Corner // └

	// Word represents a run of non-filler, non-whitespace characters.
	Word
	// KwWhen represents the 'when' keyword (case-insensitive).
	KwWhen // when
	// KwGiven represents the 'given' keyword (case-insensitive).
	KwGiven // given
	// KwIt represents the 'it' keyword (case-insensitive).
	KwIt // it
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Tee:
		return "tee"
	case Corner:
		return "corner"
	case Word:
		return "word"
	case KwWhen:
		return "when"
	case KwGiven:
		return "given"
	case KwIt:
		return "it"
	}
	return "unknown"
}

// IsKeyword reports whether the token kind is one of the DSL keywords.
func (k Kind) IsKeyword() bool {
	switch k {
	case KwWhen, KwGiven, KwIt:
		return true
	default:
		return false
	}
}

// IsBranchGlyph reports whether the token kind draws a branch.
func (k Kind) IsBranchGlyph() bool {
	return k == Tee || k == Corner
}

// IsTitlePart reports whether the token kind can appear inside a title.
// Keywords degrade to plain words once a title has started.
func (k Kind) IsTitlePart() bool {
	return k == Word || k.IsKeyword()
}
