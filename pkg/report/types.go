package report

import (
	"storescan-go/pkg/keyword"
	"storescan-go/pkg/population"
)

// Status marks how much of the report could be produced.
type Status string

const (
	// StatusOK means the full pipeline ran.
	StatusOK Status = "ok"
	// StatusNoData means no location or keyword data was available.
	StatusNoData Status = "no_data"
	// StatusAnalysisUnavailable means the suggestion model could not be
	// reached; keyword lists stay empty rather than being guessed.
	StatusAnalysisUnavailable Status = "analysis_unavailable"
)

// CompetitorPost is one top-ranked blog post for an analyzed keyword.
type CompetitorPost struct {
	Rank   int    `json:"rank"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Date   string `json:"date"`
}

// CompetitorSnapshot summarizes existing blog content for one keyword.
type CompetitorSnapshot struct {
	Keyword     string              `json:"keyword"`
	TotalPosts  int                 `json:"total_post_count"`
	TopPosts    []CompetitorPost    `json:"top_posts"`
	Competition keyword.Competition `json:"competition_level"`
	Note        string              `json:"note"`
}

// Report is the aggregation root for one analysis run. It lives for one
// request/response cycle and is never persisted.
type Report struct {
	ShopName   string              `json:"shop_name"`
	Location   string              `json:"location"`
	Status     Status              `json:"status"`
	Persona    string              `json:"persona"`
	Population population.Bucket   `json:"population,omitempty"`

	MainKeywords    []keyword.Validated `json:"main_keywords"`
	DetailKeywords  []keyword.Validated `json:"detail_keywords"`
	RelatedKeywords []keyword.Validated `json:"related_keywords"`

	Competitors  []CompetitorSnapshot `json:"competitors,omitempty"`
	Insights     []string             `json:"insights"`
	ContentIdeas []string             `json:"content_ideas"`
	Notes        []string             `json:"notes"`
}

// blog competitor classification thresholds (total post counts)
const (
	lowCompetitionBelow    = 50
	mediumCompetitionBelow = 500
)

const (
	noteLowCompetition    = "저경쟁 기회 키워드입니다. 지금 콘텐츠를 쌓으면 상위 노출 가능성이 높습니다."
	noteMediumCompetition = "경쟁이 보통인 키워드입니다. 꾸준한 포스팅으로 공략할 수 있습니다."
	noteHighCompetition   = "경쟁이 치열한 키워드입니다. 세부 키워드와 병행하는 전략을 권장합니다."
)

// ClassifyCompetition buckets a blog total-post count into a competition
// level with its strategy note.
func ClassifyCompetition(totalPosts int) (keyword.Competition, string) {
	switch {
	case totalPosts < lowCompetitionBelow:
		return keyword.CompetitionLow, noteLowCompetition
	case totalPosts < mediumCompetitionBelow:
		return keyword.CompetitionMedium, noteMediumCompetition
	default:
		return keyword.CompetitionHigh, noteHighCompetition
	}
}
