// Package names derives Solidity identifiers from tree titles.
//
// The same sanitize-then-case pipeline is shared by the semantic analyzer
// (duplicate detection) and the HIR translator (emitted names), so both
// always agree on what a title is called.
package names

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Words splits a title into its sanitized words: hyphens act as word
// separators, characters that cannot appear in an identifier (quotes,
// apostrophes, punctuation) are dropped, and empty words disappear.
func Words(title string) []string {
	fields := strings.FieldsFunc(title, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
				return r
			}
			return -1
		}, f)
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// ToPascalCase converts a title into PascalCase, capitalizing the first
// letter of each sanitized word and preserving the rest as written, so
// interior capitalization like "keccak256" or "ERC20" survives.
func ToPascalCase(title string) string {
	var b strings.Builder
	for _, w := range Words(title) {
		b.WriteString(UpperFirst(w))
	}
	return b.String()
}

// ToCamelCase converts a title into camelCase.
func ToCamelCase(title string) string {
	return LowerFirst(ToPascalCase(title))
}

// UpperFirst upper-cases the first rune, leaving the rest untouched.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// LowerFirst lower-cases the first rune, leaving the rest untouched.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// Canonical folds a title into the form used for tree-wide comparisons:
// sanitized words, lower-cased, space-joined. "It should REVERT." and
// "it should revert" are the same canonical title.
func Canonical(title string) string {
	words := Words(title)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, " ")
}
