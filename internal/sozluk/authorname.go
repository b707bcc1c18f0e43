package sozluk

import (
	"strings"
	"unicode/utf8"
)

const maxAuthorNameLength = 40

// AuthorName is a pseudonymous author identity. The value is Turkish-folded
// at construction and is guaranteed non-empty, at most 40 runes, free of
// spaces and alphanumeric (any script).
type AuthorName string

// NewAuthorName folds raw and validates the result. It returns a
// ValidationError when the name violates any constraint.
func NewAuthorName(raw string) (AuthorName, error) {
	name := Fold(raw)

	if strings.Contains(name, " ") {
		return "", ValidationError("author name cannot contain spaces")
	}

	length := utf8.RuneCountInString(name)
	if length > maxAuthorNameLength {
		return "", ValidationError("author name is too long")
	}
	if length < 1 {
		return "", ValidationError("author name cannot be empty")
	}

	if !isAlphanumeric(name) {
		return "", ValidationError("author name is not alphanumeric")
	}

	return AuthorName(name), nil
}

func (n AuthorName) String() string { return string(n) }
