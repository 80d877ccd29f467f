package emailgen

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// credentialRe matches trailing credential suffixes introduced by a comma,
// e.g. "Julius Harris, SHRM" or "Jane Doe, MBA CP".
var credentialRe = regexp.MustCompile(`,\s*[A-Z][\w\-.]+(?:\s+[A-Z][\w\-.]+)*$`)

// foldTransform decomposes accented letters and strips the combining marks.
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normalizes a name token for use in an email local-part: lowercase,
// diacritics reduced to their base letter, everything but ASCII letters
// dropped ("Héléne" -> "helene", "O'Brien" -> "obrien").
func Fold(s string) string {
	folded, _, err := transform.String(foldTransform, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	for _, r := range folded {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseName splits a display name into normalized (first, last) tokens.
// Credential suffixes after a comma are stripped, single-letter middle
// initials are skipped when locating the last name, and both tokens are
// folded for email use. Returns ("", "") when fewer than two usable
// tokens remain; the caller skips such contacts.
func ParseName(fullName string) (string, string) {
	if fullName == "" {
		return "", ""
	}

	name := strings.TrimSpace(credentialRe.ReplaceAllString(fullName, ""))

	words := strings.Fields(name)
	if len(words) < 2 {
		return "", ""
	}

	first := Fold(words[0])

	last := ""
	for _, w := range words[1:] {
		if len(strings.TrimRight(w, ".")) > 1 {
			last = Fold(w)
			break
		}
	}
	if last == "" {
		// All trailing words were initials; fall back to the second word.
		last = Fold(words[1])
	}

	if first == "" || last == "" {
		return "", ""
	}
	return first, last
}
