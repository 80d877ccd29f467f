package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-cli/internal/db"
	"github.com/sells-group/outreach-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool (used by tests with pgxmock).
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, closeFn: pool.Close}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS jobs (
	id         TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS contacts (
	job_id      TEXT NOT NULL REFERENCES jobs(id),
	profile_url TEXT NOT NULL,
	position    INTEGER NOT NULL,
	data        JSONB NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (job_id, profile_url)
);

CREATE INDEX IF NOT EXISTS idx_contacts_job_id ON contacts(job_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.closeFn()
	return nil
}

func (s *PostgresStore) SaveJob(ctx context.Context, job model.JobPosting) (*model.JobPosting, error) {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	now := time.Now().UTC()

	jobJSON, err := json.Marshal(job)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal job")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO jobs (id, data, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		job.ID, jobJSON, now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert job")
	}
	return &job, nil
}

func (s *PostgresStore) UpdateJob(ctx context.Context, job model.JobPosting) error {
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal job")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET data = $1, updated_at = $2 WHERE id = $3`,
		jobJSON, time.Now().UTC(), job.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update job %s", job.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: job %s not found", job.ID)
	}
	return nil
}

func (s *PostgresStore) GetJob(ctx context.Context, jobID string) (*model.JobPosting, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM jobs WHERE id = $1`, jobID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("postgres: job %s not found", jobID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get job")
	}

	var job model.JobPosting
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal job")
	}
	return &job, nil
}

func (s *PostgresStore) ListJobs(ctx context.Context) ([]model.JobPosting, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list jobs")
	}
	defer rows.Close()

	var jobs []model.JobPosting
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan job")
		}
		var job model.JobPosting
		if err := json.Unmarshal(data, &job); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal job")
		}
		jobs = append(jobs, job)
	}
	return jobs, eris.Wrap(rows.Err(), "postgres: list jobs iterate")
}

func (s *PostgresStore) ReplaceContacts(ctx context.Context, jobID string, contacts []model.Contact) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM contacts WHERE job_id = $1`, jobID); err != nil {
		return eris.Wrap(err, "postgres: clear contacts")
	}

	now := time.Now().UTC()
	for i, c := range contacts {
		data, err := json.Marshal(c)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal contact")
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO contacts (job_id, profile_url, position, data, updated_at) VALUES ($1, $2, $3, $4, $5)`,
			jobID, model.NormalizeProfileURL(c.ProfileURL), i, data, now,
		)
		if err != nil {
			return eris.Wrap(err, "postgres: insert contact")
		}
	}
	return nil
}

func (s *PostgresStore) ListContacts(ctx context.Context, jobID string) ([]model.Contact, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM contacts WHERE job_id = $1 ORDER BY position`, jobID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list contacts")
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan contact")
		}
		var c model.Contact
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal contact")
		}
		contacts = append(contacts, c)
	}
	return contacts, eris.Wrap(rows.Err(), "postgres: list contacts iterate")
}

func (s *PostgresStore) UpdateContact(ctx context.Context, jobID string, c model.Contact) error {
	data, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal contact")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE contacts SET data = $1, updated_at = $2 WHERE job_id = $3 AND profile_url = $4`,
		data, time.Now().UTC(), jobID, model.NormalizeProfileURL(c.ProfileURL),
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update contact %s", c.ProfileURL)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: contact %s not found", c.ProfileURL)
	}
	return nil
}
