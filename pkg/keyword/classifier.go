package keyword

import "sort"

// Classified is the final keyword partition for the report.
type Classified struct {
	Main    []Validated `json:"main_keywords"`
	Detail  []Validated `json:"detail_keywords"`
	Related []Validated `json:"related_keywords"`
}

// Caps bound each report bucket.
type Caps struct {
	Main    int
	Detail  int
	Related int
}

// Classify deduplicates by keyword text keeping the highest score, sorts
// descending by score, and partitions: main holds core keywords, detail
// holds target and situation keywords, related holds the rest.
func Classify(list []Validated, caps Caps) Classified {
	if caps.Main <= 0 {
		caps.Main = 10
	}
	if caps.Detail <= 0 {
		caps.Detail = 12
	}
	if caps.Related <= 0 {
		caps.Related = 5
	}

	deduped := dedupeByKeyword(list)
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Score > deduped[j].Score
	})

	var classified Classified
	for _, entry := range deduped {
		switch entry.Category {
		case CategoryCore:
			if len(classified.Main) < caps.Main {
				classified.Main = append(classified.Main, entry)
			}
		case CategoryTarget, CategorySituation:
			if len(classified.Detail) < caps.Detail {
				classified.Detail = append(classified.Detail, entry)
			}
		default:
			if len(classified.Related) < caps.Related {
				classified.Related = append(classified.Related, entry)
			}
		}
	}
	return classified
}

// Top returns the highest-scoring keywords, preferring core then target
// entries, for competitor analysis.
func (c Classified) Top(limit int) []Validated {
	var picked []Validated
	for _, entry := range c.Main {
		if len(picked) == limit {
			return picked
		}
		picked = append(picked, entry)
	}
	for _, entry := range c.Detail {
		if len(picked) == limit {
			return picked
		}
		if entry.Category == CategoryTarget {
			picked = append(picked, entry)
		}
	}
	return picked
}

func dedupeByKeyword(list []Validated) []Validated {
	index := make(map[string]int, len(list))
	var out []Validated
	for _, entry := range list {
		if at, ok := index[entry.Keyword]; ok {
			if entry.Score > out[at].Score {
				out[at] = entry
			}
			continue
		}
		index[entry.Keyword] = len(out)
		out = append(out, entry)
	}
	return out
}
