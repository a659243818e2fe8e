package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// LineCol resolves a byte offset to a 1-based line/column pair.
func (f *File) LineCol(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Line returns the full text of the 1-based line containing off,
// without the trailing newline.
func (f *File) Line(off uint32) string {
	start := off
	for start > 0 && f.Content[start-1] != '\n' {
		start--
	}
	end := off
	for end < uint32(len(f.Content)) && f.Content[end] != '\n' {
		end++
	}
	return string(f.Content[start:end])
}

// Slice returns the text covered by the span.
// The span must be a valid slice bound of the file content.
func (f *File) Slice(sp Span) string {
	return string(f.Content[sp.Start:sp.End])
}
