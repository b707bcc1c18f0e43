// Package sozluk holds the domain value types of the entry board:
// Turkish-folded strings, validated author and topic names, entry text with
// inline reference markup, and the persisted entry record shape.
package sozluk

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold lowercases s with Turkish casing rules: the dotted capital "İ"
// becomes "i" and the dotless capital "I" becomes "ı". Folding is
// idempotent, so all comparisons between folded values are case-insensitive.
func Fold(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// ValidationError reports a value that failed domain validation. It is
// always recoverable: the boundary translates it into a user-facing message.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
