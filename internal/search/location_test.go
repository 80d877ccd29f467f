package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/outreach-cli/internal/registry"
)

func TestExtractCity(t *testing.T) {
	reg := registry.Default()

	tests := []struct {
		location string
		want     string
	}{
		{"Orlando, FL, USA", "Orlando"},
		{"Austin, Texas", "Austin"},
		{"China, Shanghai", "Shanghai"},
		{"San Francisco Bay Area", "San Francisco Bay Area"},
		// Every part is a region: fall back to the first part.
		{"USA", "USA"},
		{"Remote, USA", "Remote"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCity(reg, tt.location))
		})
	}
}
