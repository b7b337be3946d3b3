package curator

import "strings"

// renderPerspective substitutes a perspective's framework_template
// placeholders with values from the user profile (spec.md §6.1).
// Substitution is literal and total: every placeholder the template
// defines is replaced, and a profile field with no value degrades to a
// generic label rather than leaving the placeholder or erroring
// (spec.md §9 "Perspective templating").
func renderPerspective(template string, values placeholderValues) string {
	replacer := strings.NewReplacer(
		"{city}", orDefault(values.City, "your area"),
		"{state}", orDefault(values.State, "your region"),
		"{region}", orDefault(values.Region, "your region"),
		"{country}", orDefault(values.Country, "your country"),
		"{professional_domains}", orDefaultList(values.ProfessionalDomains, "your field"),
		"{civic_focus}", orDefaultList(values.CivicInterests, "local civic matters"),
		"{tone}", orDefault(values.Tone, "neutral"),
	)
	return replacer.Replace(template)
}

type placeholderValues struct {
	City                string
	State               string
	Region              string
	Country             string
	ProfessionalDomains []string
	CivicInterests      []string
	Tone                string
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func orDefaultList(list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return strings.Join(list, ", ")
}
