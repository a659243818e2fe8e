package sol

import (
	"bulloak/internal/source"
)

type itemKind uint8

const (
	itemEOF itemKind = iota
	itemWord
	itemPunct
)

type item struct {
	kind itemKind
	text string
	off  uint32
}

// scanner produces the word/punctuation stream the structural parser walks.
// Whitespace, line and block comments, and string literals are consumed as
// trivia so braces inside them never count toward nesting.
type scanner struct {
	file  *source.File
	off   uint32
	limit uint32
}

func newScanner(f *source.File) *scanner {
	return &scanner{file: f, limit: uint32(len(f.Content))}
}

func (s *scanner) eof() bool { return s.off >= s.limit }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.file.Content[s.off]
}

func (s *scanner) peekAt(n uint32) byte {
	if s.off+n >= s.limit {
		return 0
	}
	return s.file.Content[s.off+n]
}

func (s *scanner) next() item {
	s.skipTrivia()
	if s.eof() {
		return item{kind: itemEOF, off: s.off}
	}

	start := s.off
	b := s.peek()
	if isWordStart(b) {
		for !s.eof() && isWordPart(s.peek()) {
			s.off++
		}
		return item{
			kind: itemWord,
			text: string(s.file.Content[start:s.off]),
			off:  start,
		}
	}

	s.off++
	return item{kind: itemPunct, text: string(b), off: start}
}

func (s *scanner) skipTrivia() {
	for !s.eof() {
		switch b := s.peek(); {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			s.off++
		case b == '/' && s.peekAt(1) == '/':
			for !s.eof() && s.peek() != '\n' {
				s.off++
			}
		case b == '/' && s.peekAt(1) == '*':
			s.off += 2
			for !s.eof() && !(s.peek() == '*' && s.peekAt(1) == '/') {
				s.off++
			}
			if !s.eof() {
				s.off += 2
			}
		case b == '"' || b == '\'':
			s.skipString(b)
		default:
			return
		}
	}
}

func (s *scanner) skipString(quote byte) {
	s.off++
	for !s.eof() {
		b := s.peek()
		s.off++
		if b == '\\' && !s.eof() {
			s.off++
			continue
		}
		if b == quote || b == '\n' {
			return
		}
	}
}

func isWordStart(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isWordPart(b byte) bool {
	return isWordStart(b) || (b >= '0' && b <= '9')
}
