package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"bulloak/internal/diag"
	"bulloak/internal/source"
	"bulloak/internal/token"
)

// Lexer scans one branching tree into a flat token sequence.
//
// The glyphs '├' and '└' become Tee/Corner tokens, runs of non-filler
// characters become words (reclassified as when/given/it keywords
// case-insensitively), '//' starts a line comment, and whitespace plus the
// drawing fillers '─' and '│' are skipped. After a when/given keyword the
// lexer enters identifier mode for the rest of the line: every non-space
// character of the condition title must be a valid identifier character.
type Lexer struct {
	file      *source.File
	cursor    Cursor
	opts      Options
	col       uint32 // 1-based column of the cursor, counted in runes
	identMode bool
}

// New creates a lexer over the whole file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts, col: 1}
}

// NewWindow creates a lexer over the byte range [start, end) of the file.
// The window must begin at a line start so column tracking stays accurate.
func NewWindow(file *source.File, start, end uint32, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewWindowCursor(file, start, end), opts: opts, col: 1}
}

// Tokenize scans the whole window. It returns the token sequence and false
// when lexing failed; the failure has already been reported.
func (lx *Lexer) Tokenize() ([]token.Token, bool) {
	tokens := make([]token.Token, 0, 32)
	for {
		tok, ok := lx.next()
		if !ok {
			return nil, false
		}
		if tok.Kind == token.EOF {
			return tokens, true
		}
		tokens = append(tokens, tok)
	}
}

func (lx *Lexer) next() (token.Token, bool) {
	for !lx.cursor.EOF() {
		r, _ := lx.cursor.PeekRune()
		switch {
		case r == '\n':
			lx.cursor.BumpRune()
			lx.col = 1
			lx.identMode = false

		case r == ' ' || r == '\t' || r == '\r' || r == '─' || r == '│':
			lx.cursor.BumpRune()
			lx.col++

		case r == '/' && lx.cursor.PeekByteAt(1) == '/':
			lx.skipComment()

		case r == '├':
			return lx.glyph(token.Tee, "├"), true

		case r == '└':
			return lx.glyph(token.Corner, "└"), true

		default:
			return lx.scanWord()
		}
	}
	return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Col: lx.col}, true
}

func (lx *Lexer) glyph(kind token.Kind, text string) token.Token {
	start := lx.cursor.Off
	col := lx.col
	lx.cursor.BumpRune()
	lx.col++
	return token.Token{
		Kind: kind,
		Span: source.Span{File: lx.file.ID, Start: start, End: lx.cursor.Off},
		Text: text,
		Col:  col,
	}
}

func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() {
		r, _ := lx.cursor.PeekRune()
		if r == '\n' {
			return
		}
		lx.cursor.BumpRune()
		lx.col++
	}
}

func (lx *Lexer) scanWord() (token.Token, bool) {
	start := lx.cursor.Off
	col := lx.col

	for !lx.cursor.EOF() {
		r, _ := lx.cursor.PeekRune()
		if isWordBreak(r) {
			break
		}
		if lx.identMode && !isIdentChar(r) {
			lx.reportInvalidIdentChar(r)
			return token.Token{}, false
		}
		lx.cursor.BumpRune()
		lx.col++
	}

	span := source.Span{File: lx.file.ID, Start: start, End: lx.cursor.Off}
	text := lx.file.Slice(span)
	kind := token.LookupKeyword(text)
	if kind == token.KwWhen || kind == token.KwGiven {
		lx.identMode = true
	}
	return token.Token{Kind: kind, Span: span, Text: text, Col: col}, true
}

func (lx *Lexer) reportInvalidIdentChar(r rune) {
	at := lx.cursor.Off
	sp := source.Span{File: lx.file.ID, Start: at, End: at + uint32(utf8.RuneLen(r))}
	lx.opts.reporter().Report(
		diag.Error(diag.LexIdentifierCharInvalid, sp,
			fmt.Sprintf("invalid character %q in identifier", r)).
			WithHelp("condition titles become Solidity identifiers; only letters, digits, '_', '-', '\\'' and '\"' are allowed"),
	)
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func isWordBreak(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '─', '│', '├', '└':
		return true
	}
	return false
}

func isIdentChar(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '_', '-', '\'', '"':
		return true
	}
	return false
}
