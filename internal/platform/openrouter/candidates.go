package openrouter

import "strings"

// BuildCandidates assembles the ordered fallback list: the requested model
// first, then the configured default, then the static fallbacks, with
// case-insensitive dedup preserving first occurrence. When an availability
// list is supplied the candidates are narrowed to it; if narrowing would
// empty the list the unfiltered candidates are returned, since availability
// is best-effort and never required for correctness.
func BuildCandidates(requested, defaultModel string, fallbacks, available []string) []string {
	ordered := make([]string, 0, 2+len(fallbacks))
	seen := map[string]bool{}

	add := func(model string) {
		model = strings.TrimSpace(model)
		if model == "" {
			return
		}
		key := strings.ToLower(model)
		if seen[key] {
			return
		}
		seen[key] = true
		ordered = append(ordered, model)
	}

	add(requested)
	add(defaultModel)
	for _, m := range fallbacks {
		add(m)
	}

	if len(available) == 0 {
		return ordered
	}

	availSet := make(map[string]bool, len(available))
	for _, m := range available {
		availSet[strings.ToLower(strings.TrimSpace(m))] = true
	}

	filtered := make([]string, 0, len(ordered))
	for _, m := range ordered {
		if availSet[strings.ToLower(m)] {
			filtered = append(filtered, m)
		}
	}
	if len(filtered) == 0 {
		return ordered
	}
	return filtered
}
