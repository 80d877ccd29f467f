package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
)

func bounceNotice(addr string) Notification {
	return Notification{Headers: map[string]string{"x-failed-recipients": addr}}
}

func TestCheckBounces(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-10 * time.Minute)
	stale := now.Add(-45 * time.Minute)

	mb := &fakeMailbox{notices: []Notification{bounceNotice("Jane@X.com")}}
	d := NewDetector(mb).WithNow(func() time.Time { return now })

	contacts := []model.Contact{
		// Fresh send that bounced.
		{Name: "Jane", Email: "jane@x.com", SentAt: &fresh, SentTo: "jane@x.com",
			Tried: []string{"jane@x.com"}, Bounced: model.BouncePending},
		// Fresh send with no bounce: tentatively delivered.
		{Name: "John", Email: "john@x.com", SentAt: &fresh, SentTo: "john@x.com",
			Tried: []string{"john@x.com"}, Bounced: model.BouncePending},
		// Sent before the window: untouched even though still pending.
		{Name: "Old", Email: "old@x.com", SentAt: &stale, SentTo: "old@x.com",
			Tried: []string{"old@x.com"}, Bounced: model.BouncePending},
		// Never sent: untouched.
		{Name: "New", Email: "new@x.com"},
	}

	updated, hard, err := d.CheckBounces(context.Background(), contacts, 30*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 1, hard)
	assert.Equal(t, model.BounceHard, updated[0].Bounced)
	assert.Equal(t, model.BounceDelivered, updated[1].Bounced)
	assert.Equal(t, model.BouncePending, updated[2].Bounced)
	assert.Equal(t, model.BouncePending, updated[3].Bounced)

	// Input snapshots are untouched.
	assert.Equal(t, model.BouncePending, contacts[0].Bounced)
}

func TestCheckBouncesAlreadyResolvedHardStays(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-5 * time.Minute)

	mb := &fakeMailbox{}
	d := NewDetector(mb).WithNow(func() time.Time { return now })

	contacts := []model.Contact{
		{Name: "Jane", Email: "jane@x.com", SentAt: &fresh, SentTo: "jane@x.com",
			Tried: []string{"jane@x.com"}, Bounced: model.BounceHard},
	}

	updated, hard, err := d.CheckBounces(context.Background(), contacts, 30*time.Minute)
	require.NoError(t, err)
	// A resolved hard bounce is not downgraded by a later empty poll.
	assert.Equal(t, model.BounceHard, updated[0].Bounced)
	assert.Equal(t, 1, hard)
}

func TestCheckBouncesToHeaderFallback(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-5 * time.Minute)

	mb := &fakeMailbox{notices: []Notification{
		{Headers: map[string]string{"to": "Jane Doe <jane@x.com>"}},
	}}
	d := NewDetector(mb).WithNow(func() time.Time { return now })

	contacts := []model.Contact{
		{Name: "Jane", Email: "jane@x.com", SentAt: &fresh, SentTo: "jane@x.com",
			Tried: []string{"jane@x.com"}, Bounced: model.BouncePending},
	}

	updated, hard, err := d.CheckBounces(context.Background(), contacts, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, hard)
	assert.Equal(t, model.BounceHard, updated[0].Bounced)
}

func TestCheckBouncesMailboxError(t *testing.T) {
	mb := &fakeMailbox{listErr: assert.AnError}
	d := NewDetector(mb)

	contacts := []model.Contact{{Name: "Jane"}}
	updated, hard, err := d.CheckBounces(context.Background(), contacts, 30*time.Minute)
	require.Error(t, err)
	assert.Zero(t, hard)
	assert.Equal(t, contacts, updated)
}
