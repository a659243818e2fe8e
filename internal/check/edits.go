package check

import (
	"sort"
)

// textEdit replaces the byte range [start, end) with newText. An insertion
// has start == end.
type textEdit struct {
	start, end uint32
	newText    string
}

// applyEdits applies a batch of non-overlapping edits computed against the
// same snapshot of text. Edits are applied back to front so earlier offsets
// stay valid without any delta bookkeeping.
func applyEdits(text []byte, edits []textEdit) []byte {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start == edits[j].start {
			return edits[i].end > edits[j].end
		}
		return edits[i].start > edits[j].start
	})

	out := append([]byte(nil), text...)
	for _, e := range edits {
		if int(e.end) > len(out) || e.start > e.end {
			continue
		}
		suffix := append([]byte(nil), out[e.end:]...)
		out = append(append(out[:e.start], []byte(e.newText)...), suffix...)
	}
	return out
}
