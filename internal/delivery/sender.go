package delivery

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/outreach-cli/internal/emailgen"
	"github.com/sells-group/outreach-cli/internal/model"
)

// ContactWriter persists one contact record. The sender calls it after
// every individual send so a crash mid-batch leaves only fully-completed
// sends recorded.
type ContactWriter interface {
	UpdateContact(ctx context.Context, jobID string, c model.Contact) error
}

// Sender executes batched outreach sends with inter-send pacing.
type Sender struct {
	mailbox  Mailbox
	writer   ContactWriter
	limiter  *rate.Limiter
	fromName string
	resume   string
	dryRun   bool
	now      func() time.Time
}

// NewSender creates a Sender. pace is the fixed delay between consecutive
// sends; the limiter's burst of one makes the first send immediate and
// omits the delay after the last.
func NewSender(mailbox Mailbox, writer ContactWriter, pace time.Duration, fromName, resumePath string) *Sender {
	return &Sender{
		mailbox:  mailbox,
		writer:   writer,
		limiter:  rate.NewLimiter(rate.Every(pace), 1),
		fromName: fromName,
		resume:   resumePath,
		now:      time.Now,
	}
}

// WithDryRun makes SendBatch log instead of sending or persisting.
func (s *Sender) WithDryRun(dry bool) *Sender {
	s.dryRun = dry
	return s
}

// WithNow sets a fixed clock for testing.
func (s *Sender) WithNow(fn func() time.Time) *Sender {
	s.now = fn
	return s
}

// SendBatch sends to up to maxSend eligible contacts in existing order.
// Each completed send is persisted before the next begins; a send or
// persist failure aborts the remainder of the batch without rolling back
// what already happened. The returned slice is the full contact list with
// sent entries replaced by their updated copies.
func (s *Sender) SendBatch(ctx context.Context, jobID string, job model.JobPosting, contacts []model.Contact, maxSend int) ([]model.Contact, error) {
	if job.EmailSubject == "" || job.EmailBody == "" {
		return contacts, eris.New("delivery: job has no email draft")
	}

	updated := make([]model.Contact, len(contacts))
	copy(updated, contacts)

	var picked []int
	for i, c := range updated {
		if Eligible(c) {
			picked = append(picked, i)
			if len(picked) >= maxSend {
				break
			}
		}
	}

	for n, i := range picked {
		c := updated[i]
		addr := NextAddress(c)
		if addr == "" {
			continue
		}

		body := personalize(job.EmailBody, c.Name, s.fromName)
		msg := Message{
			To:             addr,
			Subject:        job.EmailSubject,
			Body:           body,
			FromName:       s.fromName,
			AttachmentPath: s.resume,
		}

		if s.dryRun {
			zap.L().Info("delivery: dry run",
				zap.Int("n", n+1),
				zap.Int("of", len(picked)),
				zap.String("contact", c.Name),
				zap.String("to", addr),
				zap.Int("attempt", len(c.Tried)+1),
			)
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return updated, eris.Wrap(err, "delivery: pacing interrupted")
		}

		if err := s.mailbox.Send(ctx, msg); err != nil {
			return updated, eris.Wrapf(err, "delivery: send to %s", addr)
		}

		c = c.WithSend(addr, s.now().UTC())
		updated[i] = c

		if err := s.writer.UpdateContact(ctx, jobID, c); err != nil {
			return updated, eris.Wrapf(err, "delivery: persist send state for %s", addr)
		}

		zap.L().Info("delivery: sent",
			zap.Int("n", n+1),
			zap.Int("of", len(picked)),
			zap.String("contact", c.Name),
			zap.String("to", addr),
			zap.Int("attempt", len(c.Tried)),
		)
	}

	return updated, nil
}

// personalize swaps the draft's generic greeting for the contact's first
// name and signs off with the sender name.
func personalize(body, contactName, senderName string) string {
	first, _ := emailgen.ParseName(contactName)
	greeting := "there"
	if first != "" {
		greeting = strings.ToUpper(first[:1]) + first[1:]
	}
	body = strings.Replace(body, "Hi there,", "Hi "+greeting+",", 1)
	if senderName != "" {
		body = strings.Replace(body, "Best,", "Best,\n"+senderName, 1)
	}
	return body
}
