package emailgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane", "jane"},
		{"Héléne", "helene"},
		{"García", "garcia"},
		{"O'Brien", "obrien"},
		{"Mary-Anne", "maryanne"},
		{"Łukasz", "ukasz"}, // Ł does not decompose to an ASCII letter
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
	}{
		{"Jane Doe", "jane", "doe"},
		{"Julius Harris, SHRM", "julius", "harris"},
		{"Jane Doe, MBA CP", "jane", "doe"},
		{"José García", "jose", "garcia"},
		{"Jane A. Doe", "jane", "doe"},
		{"Jane A. B. Doe", "jane", "doe"},
		// Only initials after the first name: fall back to the second word.
		{"Jane A.", "jane", "a"},
		{"Madonna", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := ParseName(tt.name)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}
