// Package registry holds the fixture data behind the search cascade:
// per-family recruiter search terms, the ATS/job-board domain exclusion
// set, and the state/country names filtered out of location strings.
// Defaults ship in-code; a YAML file can override any section.
package registry

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/outreach-cli/internal/model"
)

// Registry resolves search terms and domain exclusions.
type Registry struct {
	terms      map[model.JobFamily][]string
	atsDomains map[string]struct{}
	regions    map[string]struct{}
}

// fixtureFile is the YAML override shape.
type fixtureFile struct {
	Terms      map[string][]string `yaml:"terms"`
	ATSDomains []string            `yaml:"ats_domains"`
	Regions    []string            `yaml:"regions"`
}

// Default returns a Registry with the built-in fixtures.
func Default() *Registry {
	r := &Registry{
		terms:      make(map[model.JobFamily][]string, len(defaultTerms)),
		atsDomains: make(map[string]struct{}, len(defaultATSDomains)),
		regions:    make(map[string]struct{}, len(defaultRegions)),
	}
	for fam, t := range defaultTerms {
		r.terms[fam] = t
	}
	for _, d := range defaultATSDomains {
		r.atsDomains[d] = struct{}{}
	}
	for _, s := range defaultRegions {
		r.regions[strings.ToLower(s)] = struct{}{}
	}
	return r
}

// LoadFromFile returns the default Registry with overrides applied from a
// YAML fixture file.
func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "registry: read fixture")
	}

	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "registry: unmarshal fixture")
	}

	r := Default()
	for fam, t := range f.Terms {
		if len(t) > 0 {
			r.terms[model.JobFamily(fam)] = t
		}
	}
	for _, d := range f.ATSDomains {
		r.atsDomains[strings.ToLower(d)] = struct{}{}
	}
	for _, s := range f.Regions {
		r.regions[strings.ToLower(s)] = struct{}{}
	}
	return r, nil
}

// TermsFor returns the two recruiter search terms for a job family,
// falling back to the generic pair for unknown families.
func (r *Registry) TermsFor(fam model.JobFamily) []string {
	if t, ok := r.terms[fam]; ok {
		return t
	}
	return r.terms[model.FamilyOther]
}

// IsATSDomain reports whether a domain belongs to a known ATS or
// job-board platform and must be excluded from company-domain voting.
func (r *Registry) IsATSDomain(domain string) bool {
	domain = strings.ToLower(domain)
	if _, ok := r.atsDomains[domain]; ok {
		return true
	}
	for ats := range r.atsDomains {
		if strings.HasSuffix(domain, "."+ats) {
			return true
		}
	}
	return false
}

// IsRegion reports whether a location part names a state or country
// rather than a city.
func (r *Registry) IsRegion(part string) bool {
	_, ok := r.regions[strings.ToLower(strings.TrimSpace(part))]
	return ok
}

var defaultTerms = map[model.JobFamily][]string{
	model.FamilySoftwareEngineering: {"technical recruiter", "engineering recruiter"},
	model.FamilyDataScienceML:       {"technical recruiter", "machine learning recruiter"},
	model.FamilyDataAnalytics:       {"technical recruiter", "data recruiter"},
	model.FamilyBusinessAnalytics:   {"talent acquisition", "recruiter"},
	model.FamilyBusinessDevelopment: {"sales recruiter", "talent acquisition"},
	model.FamilyProductManagement:   {"technical recruiter", "product recruiter"},
	model.FamilyDesignUX:            {"design recruiter", "creative recruiter"},
	model.FamilyDevOpsInfra:         {"technical recruiter", "infrastructure recruiter"},
	model.FamilyCybersecurity:       {"security recruiter", "technical recruiter"},
	model.FamilyMarketing:           {"marketing recruiter", "talent acquisition"},
	model.FamilyFinance:             {"finance recruiter", "talent acquisition"},
	model.FamilyLegal:               {"legal recruiter", "talent acquisition"},
	model.FamilyResearch:            {"research recruiter", "technical recruiter"},
	model.FamilyOperations:          {"operations recruiter", "talent acquisition"},
	model.FamilyPolicy:              {"recruiter", "talent acquisition"},
	model.FamilyOther:               {"recruiter", "talent acquisition"},
}

var defaultATSDomains = []string{
	"greenhouse.io", "lever.co", "workday.com", "myworkdayjobs.com",
	"linkedin.com", "indeed.com", "glassdoor.com", "ziprecruiter.com",
	"smartrecruiters.com", "icims.com", "taleo.net", "ashbyhq.com",
}

var defaultRegions = []string{
	"usa", "us", "united states", "uk", "united kingdom", "canada", "india",
	"china", "germany", "france", "japan", "australia", "singapore",
	"alabama", "alaska", "arizona", "arkansas", "california", "colorado",
	"connecticut", "delaware", "florida", "georgia", "hawaii", "idaho",
	"illinois", "indiana", "iowa", "kansas", "kentucky", "louisiana",
	"maine", "maryland", "massachusetts", "michigan", "minnesota",
	"mississippi", "missouri", "montana", "nebraska", "nevada",
	"new hampshire", "new jersey", "new mexico", "new york", "north carolina",
	"north dakota", "ohio", "oklahoma", "oregon", "pennsylvania",
	"rhode island", "south carolina", "south dakota", "tennessee", "texas",
	"utah", "vermont", "virginia", "washington", "west virginia",
	"wisconsin", "wyoming",
	"al", "ak", "az", "ar", "ca", "co", "ct", "de", "fl", "ga", "hi",
	"id", "il", "in", "ia", "ks", "ky", "la", "me", "md", "ma", "mi",
	"mn", "ms", "mo", "mt", "ne", "nv", "nh", "nj", "nm", "ny", "nc",
	"nd", "oh", "ok", "or", "pa", "ri", "sc", "sd", "tn", "tx", "ut",
	"vt", "va", "wa", "wv", "wi", "wy", "d.c.", "dc",
}
