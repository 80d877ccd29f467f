package delivery

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
)

// Detector polls the mailbox for delivery-failure notifications and
// reconciles them into contact bounce state.
type Detector struct {
	mailbox Mailbox
	now     func() time.Time
}

// NewDetector creates a bounce Detector.
func NewDetector(mailbox Mailbox) *Detector {
	return &Detector{mailbox: mailbox, now: time.Now}
}

// WithNow sets a fixed clock for testing.
func (d *Detector) WithNow(fn func() time.Time) *Detector {
	d.now = fn
	return d
}

// CheckBounces fetches failure notifications received within lookback and
// reconciles every contact whose last send falls inside the window and is
// still pending: the sent address appearing in the bounce set marks it
// bounced, otherwise it becomes tentatively delivered. Contacts sent
// before the window are left untouched — absence of a bounce for a stale
// attempt says nothing about delivery. Returns the updated contacts and
// the total hard-bounce count.
func (d *Detector) CheckBounces(ctx context.Context, contacts []model.Contact, lookback time.Duration) ([]model.Contact, int, error) {
	cutoff := d.now().UTC().Add(-lookback)

	notifications, err := d.mailbox.ListFailureNotifications(ctx, cutoff)
	if err != nil {
		return contacts, 0, eris.Wrap(err, "delivery: list failure notifications")
	}

	bounced := make(map[string]struct{}, len(notifications))
	for _, n := range notifications {
		if addr := FailedRecipient(n); addr != "" {
			bounced[addr] = struct{}{}
		}
	}

	zap.L().Info("delivery: bounce poll",
		zap.Int("notifications", len(notifications)),
		zap.Int("addresses", len(bounced)),
		zap.Time("cutoff", cutoff),
	)

	updated := make([]model.Contact, len(contacts))
	copy(updated, contacts)

	for i, c := range updated {
		if c.SentTo == "" || c.SentAt == nil {
			continue
		}
		if c.SentAt.Before(cutoff) {
			continue
		}

		if _, hit := bounced[strings.ToLower(c.SentTo)]; hit {
			if c.Bounced != model.BounceHard {
				updated[i] = c.WithBounce(model.BounceHard)
			}
		} else if c.Bounced == model.BouncePending {
			updated[i] = c.WithBounce(model.BounceDelivered)
		}
	}

	count := 0
	for _, c := range updated {
		if c.Bounced == model.BounceHard {
			count++
		}
	}

	return updated, count, nil
}
