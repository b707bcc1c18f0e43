package sozluk

import (
	"fmt"
	"html"
	"log"
	"regexp"
	"sort"
	"strings"
)

// EntryText is the Turkish-folded body of an entry. It carries no length or
// content constraint beyond folding, and knows how to turn its inline
// citation markup into cross-links.
type EntryText string

// NewEntryText folds raw. EntryText has no further validation.
func NewEntryText(raw string) EntryText {
	return EntryText(Fold(raw))
}

func (t EntryText) String() string { return string(t) }

// Reference targets allow letters, digits and spaces, with an optional @ or
// # sigil. The patterns are ordered by priority: the specific "bkz" markers
// claim their spans before the generic backtick marker, so a bkz target is
// never re-matched by the backtick rule.
var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\(bkz: ([@#]?[\p{L}\p{N} ]+)\)`),
	regexp.MustCompile(`\(ayr[ıi]ca bkz: ([@#]?[\p{L}\p{N} ]+)\)`),
	regexp.MustCompile("`([@#]?[\\p{L}\\p{N} ]+)`"),
}

type referenceMatch struct {
	start, end int
	priority   int
	target     string
}

// Parse extracts inline citation references. It returns a printf-style
// template equal to the text with every recognized reference replaced by %s
// (literal percent signs escaped as %%), plus the raw reference targets in
// the order their source patterns appear.
func (t EntryText) Parse() (string, []string) {
	text := string(t)

	var matches []referenceMatch
	for priority, pattern := range referencePatterns {
		for _, span := range pattern.FindAllStringSubmatchIndex(text, -1) {
			matches = append(matches, referenceMatch{
				start:    span[0],
				end:      span[1],
				priority: priority,
				target:   text[span[2]:span[3]],
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].start != matches[j].start {
			return matches[i].start < matches[j].start
		}
		return matches[i].priority < matches[j].priority
	})

	var template strings.Builder
	var targets []string
	pos := 0
	for _, match := range matches {
		if match.start < pos {
			// span already claimed by a higher-priority pattern
			continue
		}
		template.WriteString(strings.ReplaceAll(text[pos:match.start], "%", "%%"))
		template.WriteString("%s")
		targets = append(targets, match.target)
		pos = match.end
	}
	template.WriteString(strings.ReplaceAll(text[pos:], "%", "%%"))

	return template.String(), targets
}

// Render parses the text, HTML-escapes the template and fills each reference
// with an anchor: "@name" links under authorPrefix, "#id" under entryPrefix
// and anything else under topicPrefix. Render never fails; when the markup
// cannot be formatted the escaped original text is returned unchanged.
func (t EntryText) Render(topicPrefix, entryPrefix, authorPrefix string) string {
	rendered, err := t.renderLinks(topicPrefix, entryPrefix, authorPrefix)
	if err != nil {
		log.Printf("Could not render entry text, serving it plain: %v", err)
		return html.EscapeString(string(t))
	}
	return rendered
}

func (t EntryText) renderLinks(topicPrefix, entryPrefix, authorPrefix string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rendering references: %v", r)
		}
	}()

	template, targets := t.Parse()
	escaped := html.EscapeString(template)

	anchors := make([]any, 0, len(targets))
	for _, target := range targets {
		var href string
		switch {
		case strings.HasPrefix(target, "@"):
			href = authorPrefix + target[1:]
		case strings.HasPrefix(target, "#"):
			href = entryPrefix + target[1:]
		default:
			href = topicPrefix + target
		}
		anchors = append(anchors, fmt.Sprintf(
			`<a href="%s">%s</a>`, html.EscapeString(href), html.EscapeString(target),
		))
	}

	result = fmt.Sprintf(escaped, anchors...)
	if strings.Contains(result, "%!") {
		return "", fmt.Errorf("template and reference count do not line up in %q", template)
	}

	return result, nil
}
