package sozluk

import (
	"strings"
	"unicode/utf8"
)

const maxTopicNameLength = 50

// TopicName is a grouping label under which entries are filed. The value is
// Turkish-folded at construction; internal single spaces are allowed but the
// name must otherwise be alphanumeric.
type TopicName string

// NewTopicName folds raw and validates the result. It returns a
// ValidationError when the name violates any constraint.
func NewTopicName(raw string) (TopicName, error) {
	name := Fold(raw)

	length := utf8.RuneCountInString(name)
	if length > maxTopicNameLength {
		return "", ValidationError("topic name is too long")
	}
	if length < 1 {
		return "", ValidationError("topic name cannot be empty")
	}

	if strings.HasPrefix(name, " ") || strings.HasSuffix(name, " ") || strings.Contains(name, "  ") {
		return "", ValidationError("topic name has got weird spaces")
	}

	if !isAlphanumeric(strings.ReplaceAll(name, " ", "")) {
		return "", ValidationError("topic name is not alphanumeric")
	}

	return TopicName(name), nil
}

func (n TopicName) String() string { return string(n) }
