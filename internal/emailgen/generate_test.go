package emailgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKnownPattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"{first}.{last}", "jane.doe@acme.com"},
		{"{f}{last}", "jdoe@acme.com"},
		{"{first}{l}", "janed@acme.com"},
		{"{first}", "jane@acme.com"},
		{"{f}.{last}", "j.doe@acme.com"},
		{"{first}{last}", "janedoe@acme.com"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate("Jane Doe", "acme.com", tt.pattern))
		})
	}
}

func TestGenerateCombinatoricsFallback(t *testing.T) {
	got := Generate("Jane Doe", "acme.com", "")
	candidates := strings.Split(got, ",")

	require.Len(t, candidates, 6)
	assert.Equal(t, []string{
		"jane.doe@acme.com",
		"jdoe@acme.com",
		"janed@acme.com",
		"jane@acme.com",
		"j.doe@acme.com",
		"janedoe@acme.com",
	}, candidates)
}

func TestGenerateFoldsDiacritics(t *testing.T) {
	assert.Equal(t, "jose.garcia@acme.com", Generate("José García", "acme.com", "{first}.{last}"))
}

func TestGenerateUnsplittableName(t *testing.T) {
	assert.Empty(t, Generate("Madonna", "acme.com", "{first}.{last}"))
	assert.Empty(t, Generate("", "acme.com", ""))
}

func TestExample(t *testing.T) {
	assert.Equal(t, "jane.doe@acme.com", Example("{first}.{last}", "acme.com"))
	assert.Equal(t, "jdoe@acme.com", Example("{f}{last}", "acme.com"))
}
