package model

import (
	"strings"
	"time"
)

// BounceState tracks the outcome of the most recent send for a contact.
// It is tri-state: a send starts as pending, and a bounce poll resolves it
// to bounced or tentatively-delivered. "Delivered" is inferred from the
// absence of a bounce notification inside the lookback window, not from a
// delivery receipt.
type BounceState int

const (
	// BouncePending means a send happened and no bounce poll has resolved it yet.
	BouncePending BounceState = iota
	// BounceDelivered means no bounce arrived within the lookback window (tentative).
	BounceDelivered
	// BounceHard means a delivery-failure notification named the sent address.
	BounceHard
)

func (b BounceState) String() string {
	switch b {
	case BounceDelivered:
		return "tentative-delivered"
	case BounceHard:
		return "bounced"
	default:
		return "pending"
	}
}

// MarshalJSON encodes the tri-state as null / false / true so the persisted
// record shape matches the stored contact files exactly.
func (b BounceState) MarshalJSON() ([]byte, error) {
	switch b {
	case BounceDelivered:
		return []byte("false"), nil
	case BounceHard:
		return []byte("true"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null / false / true into the tri-state.
func (b *BounceState) UnmarshalJSON(data []byte) error {
	switch strings.TrimSpace(string(data)) {
	case "true":
		*b = BounceHard
	case "false":
		*b = BounceDelivered
	default:
		*b = BouncePending
	}
	return nil
}

// Contact is a discovered recruiter contact. Contacts are value snapshots:
// discovery stages never mutate a shared record, they derive an enriched
// copy via the With* methods.
type Contact struct {
	Name       string      `json:"name"`
	Title      string      `json:"title,omitempty"`
	ProfileURL string      `json:"profile_url"`
	Email      string      `json:"email,omitempty"`
	Source     string      `json:"source"`
	FoundAt    time.Time   `json:"found_at"`
	SentAt     *time.Time  `json:"sent_at,omitempty"`
	SentTo     string      `json:"sent_to,omitempty"`
	Tried      []string    `json:"tried,omitempty"`
	Bounced    BounceState `json:"bounced"`
}

// Candidates returns the contact's email candidates in generated order.
// A single known-pattern address yields one candidate; the combinatorics
// fallback yields six.
func (c Contact) Candidates() []string {
	if c.Email == "" {
		return nil
	}
	parts := strings.Split(c.Email, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// WithEmail returns a copy with the email candidate list set.
func (c Contact) WithEmail(email string) Contact {
	c.Tried = cloneTried(c.Tried)
	c.Email = email
	return c
}

// WithSend returns a copy recording a send to addr at the given time.
// The address is appended to the tried list and the bounce state resets
// to pending for the new attempt.
func (c Contact) WithSend(addr string, at time.Time) Contact {
	tried := cloneTried(c.Tried)
	c.Tried = append(tried, addr)
	c.SentAt = &at
	c.SentTo = addr
	c.Bounced = BouncePending
	return c
}

// WithBounce returns a copy with the bounce state resolved.
func (c Contact) WithBounce(state BounceState) Contact {
	c.Tried = cloneTried(c.Tried)
	c.Bounced = state
	return c
}

func cloneTried(tried []string) []string {
	if tried == nil {
		return nil
	}
	out := make([]string, len(tried))
	copy(out, tried)
	return out
}

// NormalizeProfileURL lowercases a profile URL and strips the trailing
// slash. This is the dedup key within one cascade invocation.
func NormalizeProfileURL(url string) string {
	return strings.TrimRight(strings.ToLower(url), "/")
}
