package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"bulloak/internal/source"
)

// Cursor is a position inside a window of a file.
// Limit is the exclusive upper bound for Off, which lets a multi-tree spec
// file be lexed one blank-line-separated chunk at a time while every span
// stays valid into the original text.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32
}

// NewCursor creates a cursor over the whole file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Off: 0, Limit: limit}
}

// NewWindowCursor creates a cursor over the byte range [start, end).
func NewWindowCursor(f *source.File, start, end uint32) Cursor {
	return Cursor{File: f, Off: start, Limit: end}
}

// EOF reports whether the window is exhausted.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// PeekRune decodes the rune at the cursor without advancing.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
}

// PeekByte reads the current byte, or 0 at EOF.
func (c *Cursor) PeekByte() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// PeekByteAt reads the byte n positions ahead, or 0 past the window.
func (c *Cursor) PeekByteAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// BumpRune advances past the current rune and returns it.
func (c *Cursor) BumpRune() rune {
	r, size := c.PeekRune()
	c.Off += uint32(size)
	return r
}
