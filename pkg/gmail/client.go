// Package gmail wraps the Gmail API for sending outreach mail and listing
// delivery-failure notifications. Authorization uses an OAuth2 installed-app
// credentials file plus a previously obtained token file; there is no
// interactive flow here, so a missing or unreadable token is surfaced as an
// AuthError for the caller to act on.
package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// OutgoingMessage is a plain-text mail, optionally with one PDF attachment.
type OutgoingMessage struct {
	To             string
	Subject        string
	Body           string
	FromName       string
	AttachmentPath string
}

// FailureNotice is a bounce notification from the mailbox provider.
// Headers are keyed by lowercased header name.
type FailureNotice struct {
	Headers map[string]string
}

// Client defines the mailbox operations the delivery layer needs.
type Client interface {
	Send(ctx context.Context, msg OutgoingMessage) error
	ListFailures(ctx context.Context, since time.Time) ([]FailureNotice, error)
}

// AuthError means the client could not establish Gmail credentials.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("gmail: authorization failed: %s", e.Reason)
}

type apiClient struct {
	svc *gmailapi.Service

	// selfAddr is the authenticated account's address, fetched lazily for
	// the From header.
	selfAddr string
}

// NewClient builds a Gmail client from an installed-app credentials file
// and a stored OAuth2 token file.
func NewClient(ctx context.Context, credentialsPath, tokenPath string) (Client, error) {
	credJSON, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, &AuthError{Reason: fmt.Sprintf("read credentials file %s: %v", credentialsPath, err)}
	}
	cfg, err := google.ConfigFromJSON(credJSON,
		gmailapi.GmailSendScope, gmailapi.GmailReadonlyScope)
	if err != nil {
		return nil, &AuthError{Reason: fmt.Sprintf("parse credentials: %v", err)}
	}

	tokJSON, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, &AuthError{Reason: fmt.Sprintf("read token file %s (run the authorization flow first): %v", tokenPath, err)}
	}
	var tok oauth2.Token
	if err := json.Unmarshal(tokJSON, &tok); err != nil {
		return nil, &AuthError{Reason: fmt.Sprintf("parse token file: %v", err)}
	}
	if tok.RefreshToken == "" && !tok.Valid() {
		return nil, &AuthError{Reason: "token expired and no refresh token present"}
	}

	svc, err := gmailapi.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, &tok)))
	if err != nil {
		return nil, eris.Wrap(err, "gmail: create service")
	}
	return &apiClient{svc: svc}, nil
}

func (c *apiClient) Send(ctx context.Context, msg OutgoingMessage) error {
	from, err := c.fromAddress(ctx)
	if err != nil {
		return err
	}

	raw, err := buildMIME(msg, from)
	if err != nil {
		return err
	}

	_, err = c.svc.Users.Messages.Send("me", &gmailapi.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		return eris.Wrapf(err, "gmail: send to %s", msg.To)
	}
	return nil
}

// ListFailures queries bounce notifications newer than since. Gmail's
// after: operator takes epoch seconds.
func (c *apiClient) ListFailures(ctx context.Context, since time.Time) ([]FailureNotice, error) {
	query := fmt.Sprintf("from:(mailer-daemon OR postmaster) after:%d", since.Unix())

	list, err := c.svc.Users.Messages.List("me").Q(query).Context(ctx).Do()
	if err != nil {
		return nil, eris.Wrap(err, "gmail: list failure notifications")
	}

	var notices []FailureNotice
	for _, ref := range list.Messages {
		full, err := c.svc.Users.Messages.Get("me", ref.Id).
			Format("metadata").
			MetadataHeaders("X-Failed-Recipients", "To", "Subject", "From").
			Context(ctx).Do()
		if err != nil {
			return nil, eris.Wrapf(err, "gmail: get message %s", ref.Id)
		}

		headers := make(map[string]string)
		if full.Payload != nil {
			for _, h := range full.Payload.Headers {
				headers[strings.ToLower(h.Name)] = h.Value
			}
		}
		notices = append(notices, FailureNotice{Headers: headers})
	}
	return notices, nil
}

func (c *apiClient) fromAddress(ctx context.Context) (string, error) {
	if c.selfAddr != "" {
		return c.selfAddr, nil
	}
	profile, err := c.svc.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return "", eris.Wrap(err, "gmail: get profile")
	}
	c.selfAddr = profile.EmailAddress
	return c.selfAddr, nil
}
