package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/outreach-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS jobs (
	id         TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS contacts (
	job_id      TEXT NOT NULL REFERENCES jobs(id),
	profile_url TEXT NOT NULL,
	position    INTEGER NOT NULL,
	data        TEXT NOT NULL,
	updated_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (job_id, profile_url)
);

CREATE INDEX IF NOT EXISTS idx_contacts_job_id ON contacts(job_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveJob(ctx context.Context, job model.JobPosting) (*model.JobPosting, error) {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	now := time.Now().UTC()

	jobJSON, err := json.Marshal(job)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal job")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, data, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		job.ID, string(jobJSON), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert job")
	}
	return &job, nil
}

func (s *SQLiteStore) UpdateJob(ctx context.Context, job model.JobPosting) error {
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal job")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET data = ?, updated_at = ? WHERE id = ?`,
		string(jobJSON), time.Now().UTC(), job.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update job %s", job.ID)
	}
	return checkRowsAffected(res, "job", job.ID)
}

func (s *SQLiteStore) GetJob(ctx context.Context, jobID string) (*model.JobPosting, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM jobs WHERE id = ?`, jobID)

	var data string
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, eris.Errorf("sqlite: job %s not found", jobID)
		}
		return nil, eris.Wrap(err, "sqlite: get job")
	}

	var job model.JobPosting
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal job")
	}
	return &job, nil
}

func (s *SQLiteStore) ListJobs(ctx context.Context) ([]model.JobPosting, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list jobs")
	}
	defer rows.Close()

	var jobs []model.JobPosting
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan job")
		}
		var job model.JobPosting
		if err := json.Unmarshal([]byte(data), &job); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal job")
		}
		jobs = append(jobs, job)
	}
	return jobs, eris.Wrap(rows.Err(), "sqlite: list jobs iterate")
}

// ReplaceContacts swaps the full contact set for a job, preserving slice
// order via the position column.
func (s *SQLiteStore) ReplaceContacts(ctx context.Context, jobID string, contacts []model.Contact) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin replace contacts")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM contacts WHERE job_id = ?`, jobID); err != nil {
		return eris.Wrap(err, "sqlite: clear contacts")
	}

	now := time.Now().UTC()
	for i, c := range contacts {
		data, err := json.Marshal(c)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal contact")
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO contacts (job_id, profile_url, position, data, updated_at) VALUES (?, ?, ?, ?, ?)`,
			jobID, model.NormalizeProfileURL(c.ProfileURL), i, string(data), now,
		)
		if err != nil {
			return eris.Wrap(err, "sqlite: insert contact")
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit replace contacts")
}

func (s *SQLiteStore) ListContacts(ctx context.Context, jobID string) ([]model.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM contacts WHERE job_id = ? ORDER BY position`, jobID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list contacts")
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan contact")
		}
		var c model.Contact
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal contact")
		}
		contacts = append(contacts, c)
	}
	return contacts, eris.Wrap(rows.Err(), "sqlite: list contacts iterate")
}

func (s *SQLiteStore) UpdateContact(ctx context.Context, jobID string, c model.Contact) error {
	data, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal contact")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET data = ?, updated_at = ? WHERE job_id = ? AND profile_url = ?`,
		string(data), time.Now().UTC(), jobID, model.NormalizeProfileURL(c.ProfileURL),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update contact %s", c.ProfileURL)
	}
	return checkRowsAffected(res, "contact", c.ProfileURL)
}

func checkRowsAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrapf(err, "sqlite: rows affected for %s %s", kind, id)
	}
	if n == 0 {
		return eris.Errorf("sqlite: %s %s not found", kind, id)
	}
	return nil
}
