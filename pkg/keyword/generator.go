package keyword

import "fmt"

// VenueSuffix is the fixed "recommendation" suffix appended to a subset of
// core and target combinations.
const VenueSuffix = "맛집"

// maxLocations bounds candidates to the most specific location anchors.
const maxLocations = 2

// Inputs collects every term source the generator draws from. Locations are
// ordered most-specific first; the LLM-supplied slices may all be empty.
type Inputs struct {
	Locations []string
	Menu      []string
	Category  string
	Tags      []string

	MenuSynonyms         []string
	CategoryWords        []string
	IntentWords          []string
	SituationalModifiers []string
	SeasonalModifiers    []string
	PurchaseTriggers     []string
}

// Generate builds the deduplicated, quota-bounded candidate list. Generation
// order is fixed, so the output is deterministic and favors more specific
// locations and earlier role buckets. categoryQuota caps how many candidates
// per category survive.
func Generate(in Inputs, categoryQuota int) []Candidate {
	if categoryQuota <= 0 {
		categoryQuota = 6
	}

	locations := in.Locations
	if len(locations) > maxLocations {
		locations = locations[:maxLocations]
	}
	if len(locations) == 0 {
		return nil
	}

	var raw []Candidate
	emit := func(category Category, parts ...string) {
		raw = append(raw, Candidate{
			Text:     join(parts),
			Category: category,
			Priority: category.Priority(),
		})
	}

	menuTerms := append(append([]string{}, in.Menu...), in.MenuSynonyms...)
	categoryTerms := in.CategoryWords
	if in.Category != "" {
		categoryTerms = append([]string{in.Category}, in.CategoryWords...)
	}
	primaryMenu := ""
	if len(menuTerms) > 0 {
		primaryMenu = menuTerms[0]
	}

	for _, loc := range locations {
		// Core: location + menu/category, optionally with season or suffix.
		for _, term := range menuTerms {
			emit(CategoryCore, loc, term)
			emit(CategoryCore, loc, term, VenueSuffix)
		}
		for _, term := range categoryTerms {
			emit(CategoryCore, loc, term)
		}
		for _, season := range in.SeasonalModifiers {
			emit(CategoryCore, loc, primaryMenu, season)
		}

		// Target: location + intent/purchase-trigger + menu.
		for _, intent := range in.IntentWords {
			emit(CategoryTarget, loc, intent, primaryMenu)
			emit(CategoryTarget, loc, intent, VenueSuffix)
		}
		for _, trigger := range in.PurchaseTriggers {
			emit(CategoryTarget, loc, primaryMenu, trigger)
		}

		// Situation: location + tag/situational modifier.
		for _, tag := range in.Tags {
			emit(CategorySituation, loc, tag)
			emit(CategorySituation, loc, tag, primaryMenu)
		}
		for _, modifier := range in.SituationalModifiers {
			emit(CategorySituation, loc, modifier, primaryMenu)
		}
	}

	return dedupe(raw, categoryQuota)
}

// dedupe normalizes and validates candidates, keeps the highest-priority
// occurrence of each text at its first position, and applies the per-category
// quota in generation order.
func dedupe(raw []Candidate, categoryQuota int) []Candidate {
	var ordered []Candidate
	index := make(map[string]int, len(raw))

	for _, candidate := range raw {
		candidate.Text = Normalize(candidate.Text)
		if !Valid(candidate.Text) {
			continue
		}
		if at, ok := index[candidate.Text]; ok {
			if candidate.Priority > ordered[at].Priority {
				ordered[at] = candidate
			}
			continue
		}
		index[candidate.Text] = len(ordered)
		ordered = append(ordered, candidate)
	}

	counts := make(map[Category]int, 4)
	kept := ordered[:0]
	for _, candidate := range ordered {
		if counts[candidate.Category] >= categoryQuota {
			continue
		}
		counts[candidate.Category]++
		kept = append(kept, candidate)
	}
	return kept
}

func join(parts []string) string {
	out := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if out == "" {
			out = part
		} else {
			out = fmt.Sprintf("%s %s", out, part)
		}
	}
	return out
}
