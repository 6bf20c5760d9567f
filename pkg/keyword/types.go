package keyword

import "strings"

// Category tags a candidate by the semantic slot it was generated from.
// It decides the scoring weight and the report bucket the keyword lands in.
type Category string

const (
	CategoryCore      Category = "core"
	CategoryTarget    Category = "target"
	CategorySituation Category = "situation"
	CategoryRelated   Category = "related"
)

// Priority is the additive tie-break weight used in scoring.
func (c Category) Priority() int {
	switch c {
	case CategoryCore:
		return 30
	case CategoryTarget:
		return 20
	case CategorySituation:
		return 10
	default:
		return 0
	}
}

// Competition is the keyword tool's qualitative paid-ad competition index,
// reused as an organic-content competition proxy.
type Competition string

const (
	CompetitionLow    Competition = "LOW"
	CompetitionMedium Competition = "MEDIUM"
	CompetitionHigh   Competition = "HIGH"
)

// Bonus rewards low-competition keywords in the composite score.
func (c Competition) Bonus() float64 {
	switch c {
	case CompetitionLow:
		return 100
	case CompetitionMedium:
		return 50
	case CompetitionHigh:
		return 20
	default:
		return 50
	}
}

// ParseCompetition maps the keyword tool's index strings, Korean or English,
// onto the three levels. Unknown values count as medium.
func ParseCompetition(idx string) Competition {
	switch strings.ToUpper(strings.TrimSpace(idx)) {
	case "낮음", "LOW":
		return CompetitionLow
	case "높음", "HIGH":
		return CompetitionHigh
	case "중간", "MID", "MEDIUM":
		return CompetitionMedium
	default:
		return CompetitionMedium
	}
}

// Candidate is one generated keyword awaiting validation.
type Candidate struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
	Priority int      `json:"priority"`
}

// Validated is a keyword that survived validation, either against live
// keyword-tool data or through the estimation fallback. Estimated entries
// carry IsEstimated=true and must stay distinguishable in every output.
type Validated struct {
	Keyword       string      `json:"keyword"`
	MonthlyVolume int         `json:"monthly_volume"`
	Competition   Competition `json:"competition_level"`
	Category      Category    `json:"category"`
	Score         float64     `json:"score"`
	IsEstimated   bool        `json:"is_estimated"`
}

// Score combines volume, competition bonus and category priority.
func Score(volume int, competition Competition, category Category) float64 {
	return 0.5*float64(volume) + competition.Bonus() + float64(category.Priority())
}
