package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
)

type fakeMailbox struct {
	sent    []Message
	failOn  string
	notices []Notification
	listErr error
}

func (m *fakeMailbox) Send(_ context.Context, msg Message) error {
	if m.failOn != "" && msg.To == m.failOn {
		return eris.New("smtp refused")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailbox) ListFailureNotifications(context.Context, time.Time) ([]Notification, error) {
	return m.notices, m.listErr
}

type fakeWriter struct {
	updates []model.Contact
	failOn  string
}

func (w *fakeWriter) UpdateContact(_ context.Context, _ string, c model.Contact) error {
	if w.failOn != "" && c.SentTo == w.failOn {
		return eris.New("db locked")
	}
	w.updates = append(w.updates, c)
	return nil
}

func testSendJob() model.JobPosting {
	return model.JobPosting{
		ID:           "job-1",
		Company:      "Acme",
		EmailSubject: "Interested in the SWE role",
		EmailBody:    "Hi there,\n\nI saw the opening.\n\nBest,",
	}
}

func newTestSender(mb Mailbox, w ContactWriter) *Sender {
	s := NewSender(mb, w, time.Millisecond, "Alex Sender", "")
	return s.WithNow(func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	})
}

func TestSendBatchPersistsAfterEverySend(t *testing.T) {
	mb := &fakeMailbox{}
	w := &fakeWriter{}
	s := newTestSender(mb, w)

	contacts := []model.Contact{
		{Name: "Jane Doe", ProfileURL: "u1", Email: "jane@x.com"},
		{Name: "John Smith", ProfileURL: "u2", Email: "john@x.com"},
	}

	updated, err := s.SendBatch(context.Background(), "job-1", testSendJob(), contacts, 5)
	require.NoError(t, err)

	require.Len(t, mb.sent, 2)
	require.Len(t, w.updates, 2)
	assert.Equal(t, "jane@x.com", w.updates[0].SentTo)
	assert.Equal(t, "john@x.com", w.updates[1].SentTo)

	for _, c := range updated {
		require.NotNil(t, c.SentAt)
		assert.Equal(t, model.BouncePending, c.Bounced)
		assert.Len(t, c.Tried, 1)
	}
	// Inputs stay untouched.
	assert.Nil(t, contacts[0].SentAt)
}

func TestSendBatchPersonalizes(t *testing.T) {
	mb := &fakeMailbox{}
	s := newTestSender(mb, &fakeWriter{})

	contacts := []model.Contact{{Name: "Jane Doe", Email: "jane@x.com"}}
	_, err := s.SendBatch(context.Background(), "job-1", testSendJob(), contacts, 1)
	require.NoError(t, err)

	require.Len(t, mb.sent, 1)
	assert.Contains(t, mb.sent[0].Body, "Hi Jane,")
	assert.Contains(t, mb.sent[0].Body, "Best,\nAlex Sender")
	assert.Equal(t, "Interested in the SWE role", mb.sent[0].Subject)
}

func TestSendBatchRespectsMaxAndOrder(t *testing.T) {
	mb := &fakeMailbox{}
	s := newTestSender(mb, &fakeWriter{})

	contacts := []model.Contact{
		{Name: "A One", Email: "a@x.com"},
		{Name: "B Two", Email: "b@x.com"},
		{Name: "C Three", Email: "c@x.com"},
	}
	_, err := s.SendBatch(context.Background(), "job-1", testSendJob(), contacts, 2)
	require.NoError(t, err)

	require.Len(t, mb.sent, 2)
	assert.Equal(t, "a@x.com", mb.sent[0].To)
	assert.Equal(t, "b@x.com", mb.sent[1].To)
}

func TestSendBatchSkipsIneligible(t *testing.T) {
	mb := &fakeMailbox{}
	s := newTestSender(mb, &fakeWriter{})

	now := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	contacts := []model.Contact{
		// Pending previous send: skipped.
		{Name: "A One", Email: "a@x.com", SentAt: &now, SentTo: "a@x.com", Tried: []string{"a@x.com"}},
		// Bounced with an untried candidate: retried with the next address.
		{Name: "B Two", Email: "b@x.com,b2@x.com", SentAt: &now, SentTo: "b@x.com",
			Tried: []string{"b@x.com"}, Bounced: model.BounceHard},
		// No email at all: skipped.
		{Name: "C Three"},
	}

	updated, err := s.SendBatch(context.Background(), "job-1", testSendJob(), contacts, 5)
	require.NoError(t, err)

	require.Len(t, mb.sent, 1)
	assert.Equal(t, "b2@x.com", mb.sent[0].To)
	assert.Equal(t, []string{"b@x.com", "b2@x.com"}, updated[1].Tried)
	assert.Equal(t, model.BouncePending, updated[1].Bounced)
}

func TestSendBatchAbortsOnSendFailureKeepingPrefix(t *testing.T) {
	mb := &fakeMailbox{failOn: "b@x.com"}
	w := &fakeWriter{}
	s := newTestSender(mb, w)

	contacts := []model.Contact{
		{Name: "A One", Email: "a@x.com"},
		{Name: "B Two", Email: "b@x.com"},
		{Name: "C Three", Email: "c@x.com"},
	}

	updated, err := s.SendBatch(context.Background(), "job-1", testSendJob(), contacts, 5)
	require.Error(t, err)

	// First send completed and persisted; failure aborted the rest.
	require.Len(t, mb.sent, 1)
	require.Len(t, w.updates, 1)
	assert.Equal(t, "a@x.com", w.updates[0].SentTo)
	assert.NotNil(t, updated[0].SentAt)
	assert.Nil(t, updated[1].SentAt)
	assert.Nil(t, updated[2].SentAt)
}

func TestSendBatchAbortsOnPersistFailure(t *testing.T) {
	mb := &fakeMailbox{}
	w := &fakeWriter{failOn: "a@x.com"}
	s := newTestSender(mb, w)

	contacts := []model.Contact{
		{Name: "A One", Email: "a@x.com"},
		{Name: "B Two", Email: "b@x.com"},
	}

	_, err := s.SendBatch(context.Background(), "job-1", testSendJob(), contacts, 5)
	require.Error(t, err)
	// The send happened but its state could not be recorded; nothing
	// further was attempted.
	assert.Len(t, mb.sent, 1)
	assert.Empty(t, w.updates)
}

func TestSendBatchDryRun(t *testing.T) {
	mb := &fakeMailbox{}
	w := &fakeWriter{}
	s := newTestSender(mb, w).WithDryRun(true)

	contacts := []model.Contact{{Name: "Jane Doe", Email: "jane@x.com"}}
	updated, err := s.SendBatch(context.Background(), "job-1", testSendJob(), contacts, 5)
	require.NoError(t, err)

	assert.Empty(t, mb.sent)
	assert.Empty(t, w.updates)
	assert.Nil(t, updated[0].SentAt)
}

func TestSendBatchRequiresDraft(t *testing.T) {
	s := newTestSender(&fakeMailbox{}, &fakeWriter{})

	job := testSendJob()
	job.EmailBody = ""
	_, err := s.SendBatch(context.Background(), "job-1", job, []model.Contact{{Email: "a@x.com"}}, 5)
	assert.Error(t, err)
}
