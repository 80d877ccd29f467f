package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
)

func TestTermsFor(t *testing.T) {
	r := Default()

	assert.Equal(t,
		[]string{"technical recruiter", "engineering recruiter"},
		r.TermsFor(model.FamilySoftwareEngineering),
	)
	// Unknown families fall back to the generic pair.
	assert.Equal(t,
		r.TermsFor(model.FamilyOther),
		r.TermsFor(model.JobFamily("underwater-basket-weaving")),
	)
}

func TestIsATSDomain(t *testing.T) {
	r := Default()

	assert.True(t, r.IsATSDomain("greenhouse.io"))
	assert.True(t, r.IsATSDomain("boards.greenhouse.io"))
	assert.True(t, r.IsATSDomain("LinkedIn.com"))
	assert.False(t, r.IsATSDomain("acme.com"))
	// A suffix match requires a label boundary.
	assert.False(t, r.IsATSDomain("notgreenhouse.io"))
}

func TestIsRegion(t *testing.T) {
	r := Default()

	assert.True(t, r.IsRegion("TX"))
	assert.True(t, r.IsRegion(" usa "))
	assert.True(t, r.IsRegion("California"))
	assert.False(t, r.IsRegion("Austin"))
	assert.False(t, r.IsRegion(""))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.yaml")
	yaml := `
terms:
  Software Engineering:
    - staff recruiter
ats_domains:
  - jobs.example.com
regions:
  - cascadia
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	r, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"staff recruiter"}, r.TermsFor(model.FamilySoftwareEngineering))
	assert.True(t, r.IsATSDomain("jobs.example.com"))
	assert.True(t, r.IsRegion("Cascadia"))
	// Defaults survive alongside overrides.
	assert.True(t, r.IsATSDomain("lever.co"))
	assert.True(t, r.IsRegion("Texas"))
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("/does/not/exist.yaml")
	assert.Error(t, err)
}
