package search

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/registry"
)

// Cascade runs ordered queries over ordered backends. Backends are fixed
// at construction in priority order; index 0 is expected to be the free,
// keyless provider.
type Cascade struct {
	providers []Provider
	reg       *registry.Registry
	delayMin  time.Duration
	delayMax  time.Duration
	now       func() time.Time
}

// NewCascade creates a Cascade over the given backends. The delay range
// is the uniform inter-query wait used to stay under provider rate limits.
func NewCascade(reg *registry.Registry, delayMin, delayMax time.Duration, providers ...Provider) *Cascade {
	return &Cascade{
		providers: providers,
		reg:       reg,
		delayMin:  delayMin,
		delayMax:  delayMax,
		now:       time.Now,
	}
}

// WithNow sets a fixed time for testing.
func (c *Cascade) WithNow(fn func() time.Time) *Cascade {
	c.now = fn
	return c
}

// Run executes the query cascade for a job posting and returns up to
// maxResults unique contacts, deduplicated by normalized profile URL in
// insertion order.
//
// A single backend cursor starts at 0 and advances permanently on any
// backend failure; no backend is retried within one Run call. The call
// ends when maxResults is reached, the query list is exhausted, or every
// backend has failed. Backend exhaustion surfaces as a short result set,
// not an error.
func (c *Cascade) Run(ctx context.Context, job model.JobPosting, maxResults int) ([]model.Contact, error) {
	company := strings.TrimSpace(job.Company)
	if company == "" {
		return nil, eris.New("search: company name is empty")
	}
	if maxResults <= 0 {
		return nil, eris.Errorf("search: invalid max results %d", maxResults)
	}

	queries := c.buildQueries(company, job)

	backendIdx := 0
	var contacts []model.Contact
	seen := make(map[string]struct{})

	for i, query := range queries {
		if len(contacts) >= maxResults {
			break
		}
		if backendIdx >= len(c.providers) {
			zap.L().Warn("search: all backends exhausted", zap.String("company", company))
			break
		}

		if i > 0 {
			if err := c.interQueryDelay(ctx); err != nil {
				return contacts, err
			}
		}

		zap.L().Info("search: running query",
			zap.Int("query", i+1),
			zap.String("text", query),
			zap.String("backend", c.providers[backendIdx].Name()),
		)

		var batch []Result
		for backendIdx < len(c.providers) {
			p := c.providers[backendIdx]
			results, err := p.Search(ctx, query)
			if err == nil {
				batch = results
				zap.L().Info("search: backend results",
					zap.String("backend", p.Name()),
					zap.Int("count", len(results)),
				)
				break
			}
			backendIdx++
			zap.L().Warn("search: backend failed, advancing",
				zap.String("backend", p.Name()),
				zap.Error(err),
			)
		}

		added := 0
		for _, r := range batch {
			ct, ok := c.toContact(r, backendIdx)
			if !ok {
				continue
			}
			key := model.NormalizeProfileURL(ct.ProfileURL)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			contacts = append(contacts, ct)
			added++
			if len(contacts) >= maxResults {
				break
			}
		}
		if len(batch) > 0 {
			zap.L().Info("search: unique contacts added",
				zap.Int("added", added),
				zap.Int("total", len(contacts)),
			)
		}
	}

	return contacts, nil
}

// buildQueries returns at most four queries: for each of the two family
// terms, a city-qualified query (when a city is known) then an
// unqualified one.
func (c *Cascade) buildQueries(company string, job model.JobPosting) []string {
	terms := c.reg.TermsFor(job.JobFamily)
	if len(terms) > 2 {
		terms = terms[:2]
	}
	city := ExtractCity(c.reg, job.Location)

	var queries []string
	for _, term := range terms {
		if city != "" {
			queries = append(queries, fmt.Sprintf(`site:linkedin.com/in "%s" "%s" "%s"`, company, term, city))
		}
		queries = append(queries, fmt.Sprintf(`site:linkedin.com/in "%s" "%s"`, company, term))
	}
	return queries
}

func (c *Cascade) toContact(r Result, backendIdx int) (model.Contact, bool) {
	if !strings.Contains(r.URL, "linkedin.com/in/") {
		return model.Contact{}, false
	}
	name, title := ParseHeading(r.Title)
	if name == "" {
		return model.Contact{}, false
	}
	source := ""
	if backendIdx < len(c.providers) {
		source = c.providers[backendIdx].Name()
	}
	return model.Contact{
		Name:       name,
		Title:      title,
		ProfileURL: r.URL,
		Source:     source,
		FoundAt:    c.now().UTC(),
		Bounced:    model.BouncePending,
	}, true
}

// interQueryDelay sleeps a duration drawn uniformly from the configured
// range. A zero range skips the sleep entirely (used by tests).
func (c *Cascade) interQueryDelay(ctx context.Context) error {
	if c.delayMax <= 0 {
		return nil
	}
	d := c.delayMin
	if span := c.delayMax - c.delayMin; span > 0 {
		d += time.Duration(rand.Int64N(int64(span)))
	}
	zap.L().Debug("search: inter-query delay", zap.Duration("delay", d))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return eris.Wrap(ctx.Err(), "search: delay interrupted")
	case <-t.C:
		return nil
	}
}
