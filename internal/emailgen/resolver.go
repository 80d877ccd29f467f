package emailgen

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/registry"
)

// WebResult is a generic web search hit used for domain voting and
// local-part mining.
type WebResult struct {
	URL     string
	Title   string
	Content string
}

// WebSearcher issues one general web search.
type WebSearcher interface {
	WebSearch(ctx context.Context, query string, maxResults int) ([]WebResult, error)
}

// DirectoryRecord is what a contact directory knows about a company.
type DirectoryRecord struct {
	Domain  string
	Pattern string
}

// Directory is a company/email directory such as Hunter.io.
type Directory interface {
	ByCompany(ctx context.Context, name string) (DirectoryRecord, error)
	ByDomain(ctx context.Context, domain string) (DirectoryRecord, error)
}

// OrgSearch finds a company's primary domain via an organization search
// endpoint such as Apollo.io.
type OrgSearch interface {
	PrimaryDomain(ctx context.Context, company string) (string, error)
}

// Resolver runs the tiered domain and pattern discovery. Any collaborator
// may be nil, which skips that tier.
type Resolver struct {
	searcher  WebSearcher
	directory Directory
	orgSearch OrgSearch
	reg       *registry.Registry
}

// NewResolver creates a Resolver over the available discovery backends.
func NewResolver(reg *registry.Registry, searcher WebSearcher, directory Directory, orgSearch OrgSearch) *Resolver {
	return &Resolver{
		searcher:  searcher,
		directory: directory,
		orgSearch: orgSearch,
		reg:       reg,
	}
}

// DiscoverDomain finds the company's primary email domain, trying tiers in
// order and stopping at the first success. Tier failures are soft: they
// log and fall through. Returns "" when every tier comes up empty, which
// disables email generation for the company without raising.
func (r *Resolver) DiscoverDomain(ctx context.Context, company string) string {
	if r.searcher != nil {
		if domain := r.domainViaSearch(ctx, company); domain != "" {
			zap.L().Info("emailgen: domain via web search", zap.String("domain", domain))
			return domain
		}
	}

	if r.directory != nil {
		rec, err := r.directory.ByCompany(ctx, company)
		if err != nil {
			zap.L().Debug("emailgen: directory domain lookup failed", zap.Error(err))
		} else if rec.Domain != "" {
			zap.L().Info("emailgen: domain via directory", zap.String("domain", rec.Domain))
			return rec.Domain
		}
	}

	if r.orgSearch != nil {
		domain, err := r.orgSearch.PrimaryDomain(ctx, company)
		if err != nil {
			zap.L().Debug("emailgen: org search failed", zap.Error(err))
		} else if domain != "" {
			zap.L().Info("emailgen: domain via org search", zap.String("domain", domain))
			return domain
		}
	}

	return ""
}

// DiscoverPattern finds the company's naming pattern for the domain.
// Tier 1 mines real addresses from public pages and runs the structural
// vote; tier 2 asks the directory, accepting only canonical templates.
// Returns "" when no tier succeeds; the caller falls back to
// combinatorics.
func (r *Resolver) DiscoverPattern(ctx context.Context, domain, company string) string {
	if r.searcher != nil {
		if pattern := r.patternViaSearch(ctx, domain); pattern != "" {
			zap.L().Info("emailgen: pattern via web search", zap.String("pattern", pattern))
			return pattern
		}
	}

	if r.directory != nil {
		rec, err := r.directory.ByDomain(ctx, domain)
		if err != nil {
			zap.L().Debug("emailgen: directory pattern lookup failed", zap.Error(err))
		} else if IsCanonicalPattern(rec.Pattern) {
			zap.L().Info("emailgen: pattern via directory", zap.String("pattern", rec.Pattern))
			return rec.Pattern
		}
	}

	return ""
}

// FindEmails discovers the domain and pattern for a company and returns
// enriched copies of the contacts with their email candidates set.
// Contacts whose names cannot be split into first+last are passed through
// unchanged.
func (r *Resolver) FindEmails(ctx context.Context, company string, contacts []model.Contact) []model.Contact {
	domain := r.DiscoverDomain(ctx, company)
	if domain == "" {
		zap.L().Warn("emailgen: no domain found, skipping email generation",
			zap.String("company", company),
		)
		return contacts
	}

	pattern := r.DiscoverPattern(ctx, domain, company)
	if pattern == "" {
		zap.L().Info("emailgen: no pattern found, using combinatorics fallback",
			zap.String("domain", domain),
		)
	}

	out := make([]model.Contact, len(contacts))
	for i, c := range contacts {
		if email := Generate(c.Name, domain, pattern); email != "" {
			out[i] = c.WithEmail(email)
		} else {
			out[i] = c
		}
	}
	return out
}

// domainViaSearch issues one query biased toward careers/contact pages and
// votes on the root domain of every result URL, excluding ATS platforms.
// The highest occurrence count wins, first-seen order breaking ties.
func (r *Resolver) domainViaSearch(ctx context.Context, company string) string {
	query := fmt.Sprintf("%s careers jobs email contact", company)
	results, err := r.searcher.WebSearch(ctx, query, 8)
	if err != nil {
		zap.L().Debug("emailgen: domain search failed", zap.Error(err))
		return ""
	}

	votes := make(map[string]int)
	var order []string
	for _, res := range results {
		domain := RootDomain(res.URL)
		if domain == "" || r.reg.IsATSDomain(domain) {
			continue
		}
		if votes[domain] == 0 {
			order = append(order, domain)
		}
		votes[domain]++
	}

	best := ""
	bestVotes := 0
	for _, d := range order {
		if votes[d] > bestVotes {
			best = d
			bestVotes = votes[d]
		}
	}
	return best
}

// patternViaSearch mines @domain local-parts out of search result titles,
// snippets, and URLs, then runs the inference vote.
func (r *Resolver) patternViaSearch(ctx context.Context, domain string) string {
	query := fmt.Sprintf(`"@%s" email contact`, domain)
	results, err := r.searcher.WebSearch(ctx, query, 10)
	if err != nil {
		zap.L().Debug("emailgen: pattern search failed", zap.Error(err))
		return ""
	}

	localRe, err := regexp.Compile(
		`(?i)\b([a-z][a-z0-9]*(?:[.\-][a-z][a-z0-9]*)*)@` + regexp.QuoteMeta(domain) + `\b`,
	)
	if err != nil {
		return ""
	}

	var locals []string
	for _, res := range results {
		for _, field := range []string{res.Title, res.Content, res.URL} {
			for _, m := range localRe.FindAllStringSubmatch(field, -1) {
				locals = append(locals, m[1])
			}
		}
	}
	if len(locals) == 0 {
		return ""
	}

	return InferPattern(locals)
}

// RootDomain extracts the registrable root domain from a URL: hostname
// with "www." stripped, reduced to its last two DNS labels.
func RootDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	parts := strings.Split(host, ".")
	if len(parts) > 2 {
		return strings.Join(parts[len(parts)-2:], ".")
	}
	return host
}
