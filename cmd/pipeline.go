package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/draft"
	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/store"
	anthropicpkg "github.com/sells-group/outreach-cli/pkg/anthropic"
)

// loadJobFile reads a job posting from a JSON file.
func loadJobFile(path string) (*model.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read job file %s", path)
	}
	var job model.JobPosting
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, eris.Wrapf(err, "parse job file %s", path)
	}
	if job.Company == "" {
		return nil, eris.Errorf("job file %s: company is required", path)
	}
	if job.JobFamily == "" {
		job.JobFamily = model.FamilyOther
	}
	if job.ScrapedAt.IsZero() {
		job.ScrapedAt = time.Now().UTC()
	}
	return &job, nil
}

// runPipeline executes discovery → email resolution → draft → send for one
// saved job. Missing credentials degrade: drafting is skipped without an
// Anthropic key (unless the job already carries a draft), and sending is
// skipped without a working mailbox only when no draft exists to send.
func runPipeline(ctx context.Context, st store.Store, job *model.JobPosting, dryRun bool) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	cascade := buildCascade(reg)
	contacts, err := cascade.Run(ctx, *job, cfg.Search.MaxResults)
	if err != nil {
		return eris.Wrapf(err, "recruiter search for %s", job.Company)
	}
	if err := st.ReplaceContacts(ctx, job.ID, contacts); err != nil {
		return err
	}
	if len(contacts) == 0 {
		zap.L().Warn("no recruiters found", zap.String("company", job.Company))
		return nil
	}

	resolver := buildResolver(reg)
	contacts = resolver.FindEmails(ctx, job.Company, contacts)
	if err := st.ReplaceContacts(ctx, job.ID, contacts); err != nil {
		return err
	}

	if job.EmailSubject == "" || job.EmailBody == "" {
		if cfg.Anthropic.Key == "" {
			zap.L().Warn("no draft and no anthropic key, skipping send",
				zap.String("job", job.ID),
			)
			return nil
		}
		drafter := draft.NewDrafter(anthropicpkg.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model)
		subject, body, err := drafter.Draft(ctx, *job)
		if err != nil {
			return err
		}
		job.EmailSubject = subject
		job.EmailBody = body
		if err := st.UpdateJob(ctx, *job); err != nil {
			return err
		}
	}

	mailbox, err := buildMailbox(ctx)
	if err != nil {
		return err
	}

	sender := buildSender(mailbox, st).WithDryRun(dryRun)
	if _, err := sender.SendBatch(ctx, job.ID, *job, contacts, cfg.Send.MaxSend); err != nil {
		return err
	}

	zap.L().Info("pipeline complete",
		zap.String("job", job.ID),
		zap.String("company", job.Company),
		zap.Int("contacts", len(contacts)),
	)
	return nil
}
