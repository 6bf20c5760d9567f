package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storescan-go/pkg/keyword"
	"storescan-go/pkg/naver"
	"storescan-go/pkg/population"
)

type fakeSearcher struct {
	totals map[string]int
	err    error
}

func (f *fakeSearcher) Search(ctx context.Context, kw string) (*naver.BlogSearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &naver.BlogSearchResult{
		Total: f.totals[kw],
		Items: []naver.BlogPost{
			{Title: "후기 제목", BloggerName: "블로거", PostDate: "20260815"},
			{Title: "두번째 글", BloggerName: "다른블로거", PostDate: "20260810"},
			{Title: "세번째 글", BloggerName: "셋째", PostDate: "20260801"},
			{Title: "네번째 글", BloggerName: "넷째", PostDate: "20260701"},
		},
	}, nil
}

func buildInput() BuildInput {
	return BuildInput{
		ShopName: "명가 닭국수",
		Location: "용인시 처인구",
		Persona:  "20대 남성 거주 상권",
		Population: population.Bucket{
			"20대": {Male: 100, Female: 80},
		},
		Classified: keyword.Classified{
			Main: []keyword.Validated{
				{Keyword: "처인구 닭국수", Category: keyword.CategoryCore, Score: 700},
			},
			Detail: []keyword.Validated{
				{Keyword: "처인구 점심 닭국수", Category: keyword.CategoryTarget, Score: 400},
			},
		},
		Tags:     []string{"혼밥"},
		Insights: []string{"점심 상권을 노리세요"},
	}
}

func TestBuildFullReport(t *testing.T) {
	searcher := &fakeSearcher{totals: map[string]int{"처인구 닭국수": 30, "처인구 점심 닭국수": 600}}
	builder := NewBuilder(searcher, 3)

	r := builder.Build(context.Background(), buildInput())

	if r.Status != StatusOK {
		t.Errorf("Status = %s, want ok", r.Status)
	}
	if len(r.Competitors) != 2 {
		t.Fatalf("Competitors = %d, want 2", len(r.Competitors))
	}
	if r.Competitors[0].Competition != keyword.CompetitionLow {
		t.Errorf("first snapshot competition = %s, want LOW", r.Competitors[0].Competition)
	}
	if len(r.Competitors[0].TopPosts) != 3 {
		t.Errorf("TopPosts = %d, want capped at 3", len(r.Competitors[0].TopPosts))
	}
	if r.Competitors[0].TopPosts[0].Rank != 1 {
		t.Errorf("first post rank = %d, want 1", r.Competitors[0].TopPosts[0].Rank)
	}
	if len(r.ContentIdeas) == 0 {
		t.Error("expected templated content ideas")
	}
	for _, idea := range r.ContentIdeas {
		if strings.TrimSpace(idea) == "" {
			t.Error("empty content idea emitted")
		}
	}
}

func TestBuildLowCompetitionNote(t *testing.T) {
	searcher := &fakeSearcher{totals: map[string]int{"처인구 닭국수": 30}}
	builder := NewBuilder(searcher, 1)

	r := builder.Build(context.Background(), buildInput())

	if len(r.Competitors) != 1 {
		t.Fatalf("Competitors = %d, want 1", len(r.Competitors))
	}
	snapshot := r.Competitors[0]
	if snapshot.Competition != keyword.CompetitionLow {
		t.Errorf("competition = %s, want LOW for 30 posts", snapshot.Competition)
	}
	if snapshot.Note != noteLowCompetition {
		t.Errorf("note = %q, want low-competition note", snapshot.Note)
	}
}

func TestBuildSearchFailureSkipsSnapshot(t *testing.T) {
	builder := NewBuilder(&fakeSearcher{err: errors.New("quota exceeded")}, 3)

	r := builder.Build(context.Background(), buildInput())

	if r.Status != StatusOK {
		t.Errorf("Status = %s, want ok despite search failure", r.Status)
	}
	if len(r.Competitors) != 0 {
		t.Errorf("Competitors = %d, want 0", len(r.Competitors))
	}
}

func TestBuildEmptyKeywordsIsNoData(t *testing.T) {
	builder := NewBuilder(nil, 3)

	in := buildInput()
	in.Classified = keyword.Classified{}
	r := builder.Build(context.Background(), in)

	if r.Status != StatusNoData {
		t.Errorf("Status = %s, want no_data", r.Status)
	}
	if len(r.Notes) == 0 {
		t.Error("expected a user-facing note on the empty report")
	}
	if r.MainKeywords == nil || r.DetailKeywords == nil || r.RelatedKeywords == nil {
		t.Error("keyword lists must be empty, not nil")
	}
}

func TestUnavailableReport(t *testing.T) {
	builder := NewBuilder(nil, 3)

	r := builder.Unavailable(buildInput(), "credential missing")

	if r.Status != StatusAnalysisUnavailable {
		t.Errorf("Status = %s, want analysis_unavailable", r.Status)
	}
	if len(r.MainKeywords) != 0 || len(r.DetailKeywords) != 0 {
		t.Error("failure report must not carry keyword data")
	}
	if r.Persona != "20대 남성 거주 상권" {
		t.Errorf("Persona = %q, demographics should survive", r.Persona)
	}
	if len(r.Notes) != 1 || !strings.Contains(r.Notes[0], "credential missing") {
		t.Errorf("Notes = %v", r.Notes)
	}
}

func TestClassifyCompetition(t *testing.T) {
	tests := []struct {
		total int
		want  keyword.Competition
	}{
		{0, keyword.CompetitionLow},
		{49, keyword.CompetitionLow},
		{50, keyword.CompetitionMedium},
		{499, keyword.CompetitionMedium},
		{500, keyword.CompetitionHigh},
		{12000, keyword.CompetitionHigh},
	}
	for _, tt := range tests {
		level, note := ClassifyCompetition(tt.total)
		if level != tt.want {
			t.Errorf("ClassifyCompetition(%d) = %s, want %s", tt.total, level, tt.want)
		}
		if note == "" {
			t.Errorf("ClassifyCompetition(%d) returned empty note", tt.total)
		}
	}
}
