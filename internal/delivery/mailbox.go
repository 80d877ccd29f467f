// Package delivery tracks per-contact send state, executes paced batch
// sends, and reconciles bounce notifications back into contact records.
package delivery

import (
	"context"
	"strings"
	"time"
)

// Message is one outbound email.
type Message struct {
	To             string
	Subject        string
	Body           string
	FromName       string
	AttachmentPath string
}

// Notification is a delivery-failure message from the mailbox, reduced to
// its headers. Keys are lowercased.
type Notification struct {
	Headers map[string]string
}

// Mailbox is the consumed mail capability: sending outreach and listing
// delivery-failure notifications received since a timestamp.
type Mailbox interface {
	Send(ctx context.Context, msg Message) error
	ListFailureNotifications(ctx context.Context, since time.Time) ([]Notification, error)
}

// FailedRecipient extracts the failed delivery address from a bounce
// notification, preferring the structured X-Failed-Recipients header and
// falling back to the To header with "Name <addr>" unwrapping. Returns ""
// when neither header yields an address.
func FailedRecipient(n Notification) string {
	if addr, ok := n.Headers["x-failed-recipients"]; ok {
		return strings.ToLower(strings.TrimSpace(addr))
	}

	to, ok := n.Headers["to"]
	if !ok {
		return ""
	}
	to = strings.ToLower(strings.TrimSpace(to))
	if open := strings.Index(to, "<"); open >= 0 {
		if close := strings.Index(to[open:], ">"); close > 0 {
			return strings.TrimSpace(to[open+1 : open+close])
		}
	}
	return to
}
