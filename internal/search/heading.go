package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	platformSuffixRe = regexp.MustCompile(`(?i)\s*[|–\-]\s*LinkedIn\s*$`)
	headingSplitRe   = regexp.MustCompile(`^(.+?)\s*[-–|•]\s*(.+)$`)
	digitRe          = regexp.MustCompile(`\d`)
)

// ParseHeading extracts (name, title) from a search result heading such as
// "Jane Doe - Technical Recruiter at Acme | LinkedIn". The left segment is
// accepted as a name only when it is 2-60 characters long and digit-free.
// Returns ("", "") when parsing fails.
func ParseHeading(text string) (string, string) {
	text = strings.TrimSpace(platformSuffixRe.ReplaceAllString(text, ""))

	m := headingSplitRe.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}

	name := strings.TrimSpace(m[1])
	title := strings.TrimSpace(m[2])

	runes := utf8.RuneCountInString(name)
	if runes < 2 || runes > 60 || digitRe.MatchString(name) {
		return "", ""
	}
	return name, title
}
