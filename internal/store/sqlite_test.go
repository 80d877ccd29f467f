package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testPosting() model.JobPosting {
	return model.JobPosting{
		URL:       "https://boards.greenhouse.io/acme/jobs/123",
		Platform:  "greenhouse",
		JobTitle:  "Software Engineer",
		Company:   "Acme",
		JobFamily: model.FamilySoftwareEngineering,
		Location:  "Austin, TX, USA",
		ScrapedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteJobRoundTrip(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	saved, err := st.SaveJob(ctx, testPosting())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	got, err := st.GetJob(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, *saved, *got)
}

func TestSQLiteUpdateJob(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	saved, err := st.SaveJob(ctx, testPosting())
	require.NoError(t, err)

	saved.EmailSubject = "Interested in the SWE role"
	saved.EmailBody = "Hi there,\n..."
	require.NoError(t, st.UpdateJob(ctx, *saved))

	got, err := st.GetJob(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Interested in the SWE role", got.EmailSubject)
}

func TestSQLiteJobNotFound(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	_, err := st.GetJob(ctx, "missing")
	assert.Error(t, err)

	err = st.UpdateJob(ctx, model.JobPosting{ID: "missing"})
	assert.Error(t, err)
}

func TestSQLiteListJobs(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	_, err := st.SaveJob(ctx, testPosting())
	require.NoError(t, err)
	second := testPosting()
	second.Company = "Globex"
	_, err = st.SaveJob(ctx, second)
	require.NoError(t, err)

	jobs, err := st.ListJobs(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestSQLiteContactsRoundTripAndOrder(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	saved, err := st.SaveJob(ctx, testPosting())
	require.NoError(t, err)

	sent := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	contacts := []model.Contact{
		{
			Name:       "Jane Doe",
			Title:      "Technical Recruiter",
			ProfileURL: "https://linkedin.com/in/JaneDoe/",
			Email:      "jane.doe@acme.com,jdoe@acme.com",
			Source:     "duckduckgo",
			FoundAt:    time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			SentAt:     &sent,
			SentTo:     "jane.doe@acme.com",
			Tried:      []string{"jane.doe@acme.com"},
			Bounced:    model.BounceHard,
		},
		{
			Name:       "John Smith",
			ProfileURL: "https://linkedin.com/in/johnsmith",
			Source:     "brave",
			FoundAt:    time.Date(2026, 3, 10, 12, 1, 0, 0, time.UTC),
		},
	}

	require.NoError(t, st.ReplaceContacts(ctx, saved.ID, contacts))

	got, err := st.ListContacts(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, contacts, got)
}

func TestSQLiteReplaceContactsSwapsSet(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	saved, err := st.SaveJob(ctx, testPosting())
	require.NoError(t, err)

	first := []model.Contact{{Name: "Jane Doe", ProfileURL: "https://linkedin.com/in/janedoe"}}
	require.NoError(t, st.ReplaceContacts(ctx, saved.ID, first))

	second := []model.Contact{{Name: "John Smith", ProfileURL: "https://linkedin.com/in/johnsmith"}}
	require.NoError(t, st.ReplaceContacts(ctx, saved.ID, second))

	got, err := st.ListContacts(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "John Smith", got[0].Name)
}

func TestSQLiteUpdateContact(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	saved, err := st.SaveJob(ctx, testPosting())
	require.NoError(t, err)

	c := model.Contact{Name: "Jane Doe", ProfileURL: "https://linkedin.com/in/JaneDoe/"}
	require.NoError(t, st.ReplaceContacts(ctx, saved.ID, []model.Contact{c}))

	// The row key is the normalized URL, so a differently-cased URL still
	// hits the same row.
	updated := c.WithSend("jane@acme.com", time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC))
	updated.ProfileURL = "https://linkedin.com/in/janedoe"
	require.NoError(t, st.UpdateContact(ctx, saved.ID, updated))

	got, err := st.ListContacts(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "jane@acme.com", got[0].SentTo)

	err = st.UpdateContact(ctx, saved.ID, model.Contact{ProfileURL: "https://linkedin.com/in/nobody"})
	assert.Error(t, err)
}
