package delivery

import (
	"slices"

	"github.com/sells-group/outreach-cli/internal/model"
)

// Eligible reports whether a contact should receive an email in the next
// batch: it must have at least one untried candidate address, and must
// either never have been sent to or have had its last send bounce. A
// pending or tentatively-delivered last send blocks further attempts.
func Eligible(c model.Contact) bool {
	if NextAddress(c) == "" {
		return false
	}
	return c.SentAt == nil || c.Bounced == model.BounceHard
}

// NextAddress returns the first candidate address, in generated order, not
// yet present in the tried list. Returns "" when the candidate list is
// exhausted.
func NextAddress(c model.Contact) string {
	for _, addr := range c.Candidates() {
		if !slices.Contains(c.Tried, addr) {
			return addr
		}
	}
	return ""
}

// Exhausted reports whether the contact's last send bounced and no
// untried candidate remains. This state is terminal.
func Exhausted(c model.Contact) bool {
	return c.Bounced == model.BounceHard && NextAddress(c) == ""
}
