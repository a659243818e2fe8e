package token

import "strings"

var keywords = map[string]Kind{
	"when":  KwWhen,
	"given": KwGiven,
	"it":    KwIt,
}

// LookupKeyword reclassifies a word as a keyword kind, case-insensitively.
// Non-keyword words stay Word.
func LookupKeyword(word string) Kind {
	if kind, ok := keywords[strings.ToLower(word)]; ok {
		return kind
	}
	return Word
}
