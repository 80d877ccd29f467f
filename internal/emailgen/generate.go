package emailgen

import "strings"

// Generate produces the email candidate list for a contact name at a
// domain. With a known pattern the result is a single address; with no
// pattern it is all six canonical candidates comma-joined in priority
// order. Returns "" when the name cannot be split into first and last
// tokens.
func Generate(fullName, domain, pattern string) string {
	first, last := ParseName(fullName)
	if first == "" || last == "" {
		return ""
	}
	return generate(first, last, domain, pattern)
}

func generate(first, last, domain, pattern string) string {
	apply := func(p string) string {
		r := strings.NewReplacer(
			"{first}", first,
			"{last}", last,
			"{f}", first[:1],
			"{l}", last[:1],
		)
		return r.Replace(p) + "@" + domain
	}

	if pattern != "" {
		return apply(pattern)
	}

	candidates := make([]string, len(Patterns))
	for i, p := range Patterns {
		candidates[i] = apply(p)
	}
	return strings.Join(candidates, ",")
}

// Example renders a sample address for operator display.
func Example(pattern, domain string) string {
	return generate("jane", "doe", domain, pattern)
}
