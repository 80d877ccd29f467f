package delivery

import (
	"context"
	"errors"
	"time"

	"github.com/sells-group/outreach-cli/internal/resilience"
	"github.com/sells-group/outreach-cli/pkg/gmail"
)

// GmailMailbox adapts the Gmail client to the Mailbox interface.
type GmailMailbox struct {
	Client gmail.Client
}

// NewGmailMailbox constructs a Gmail-backed Mailbox. Credential problems
// surface as a *resilience.MailboxAuthError.
func NewGmailMailbox(ctx context.Context, credentialsPath, tokenPath string) (*GmailMailbox, error) {
	client, err := gmail.NewClient(ctx, credentialsPath, tokenPath)
	if err != nil {
		var authErr *gmail.AuthError
		if errors.As(err, &authErr) {
			return nil, resilience.NewMailboxAuthError(authErr.Reason)
		}
		return nil, err
	}
	return &GmailMailbox{Client: client}, nil
}

func (m *GmailMailbox) Send(ctx context.Context, msg Message) error {
	return m.Client.Send(ctx, gmail.OutgoingMessage{
		To:             msg.To,
		Subject:        msg.Subject,
		Body:           msg.Body,
		FromName:       msg.FromName,
		AttachmentPath: msg.AttachmentPath,
	})
}

func (m *GmailMailbox) ListFailureNotifications(ctx context.Context, since time.Time) ([]Notification, error) {
	notices, err := m.Client.ListFailures(ctx, since)
	if err != nil {
		return nil, err
	}
	out := make([]Notification, len(notices))
	for i, n := range notices {
		out[i] = Notification{Headers: n.Headers}
	}
	return out, nil
}
