package search

import (
	"strings"

	"github.com/sells-group/outreach-cli/internal/registry"
)

// ExtractCity pulls the primary city name out of a job location string.
// State and country parts are filtered using the registry's region list:
// "Orlando, FL, USA" yields "Orlando", "China, Shanghai" yields "Shanghai".
// Returns "" for an empty location.
func ExtractCity(reg *registry.Registry, location string) string {
	if location == "" {
		return ""
	}

	parts := strings.Split(location, ",")
	var first string
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == 0 {
			first = p
		}
		if len(p) > 1 && !reg.IsRegion(p) {
			return p
		}
	}
	return first
}
