// Package emailgen discovers a company's email domain and naming pattern
// and generates candidate addresses for discovered contacts.
package emailgen

import "strings"

// The six canonical corporate email patterns, in priority order. The
// order doubles as the combinatorics fallback order and the inference
// tie-break. Keys match the Hunter.io pattern naming convention so
// directory results can be used directly.
var Patterns = []string{
	"{first}.{last}", // jane.doe@co.com
	"{f}{last}",      // jdoe@co.com
	"{first}{l}",     // janed@co.com
	"{first}",        // jane@co.com
	"{f}.{last}",     // j.doe@co.com
	"{first}{last}",  // janedoe@co.com
}

// IsCanonicalPattern reports whether p is one of the six templates.
func IsCanonicalPattern(p string) bool {
	for _, known := range Patterns {
		if p == known {
			return true
		}
	}
	return false
}

// InferPattern votes for the most likely naming pattern given local-parts
// mined from public pages. The vote is structural; the names behind the
// addresses are unknown:
//   - separator (dot or hyphen) splitting into two tokens: a single-letter
//     first token votes {f}.{last}, anything longer votes {first}.{last}
//   - no separator: length <= 5 votes {f}{last}, longer votes {first}{last}
//
// The template with the most votes wins; ties resolve by canonical
// priority order. Returns "" when no local-part produced a vote, which
// sends the caller to the combinatorics fallback.
func InferPattern(locals []string) string {
	votes := make(map[string]int, len(Patterns))

	for _, local := range locals {
		local = strings.ToLower(local)

		if strings.ContainsAny(local, ".-") {
			parts := strings.FieldsFunc(local, func(r rune) bool {
				return r == '.' || r == '-'
			})
			if len(parts) != 2 {
				continue
			}
			if len(parts[0]) == 1 {
				votes["{f}.{last}"]++
			} else {
				votes["{first}.{last}"]++
			}
			continue
		}

		if len(local) <= 5 {
			votes["{f}{last}"]++
		} else {
			votes["{first}{last}"]++
		}
	}

	best := ""
	bestVotes := 0
	for _, p := range Patterns {
		if votes[p] > bestVotes {
			best = p
			bestVotes = votes[p]
		}
	}
	return best
}
