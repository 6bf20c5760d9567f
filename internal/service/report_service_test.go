package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storescan-go/internal/config"
	"storescan-go/pkg/keyword"
	"storescan-go/pkg/llm"
	"storescan-go/pkg/naver"
	"storescan-go/pkg/population"
	"storescan-go/pkg/report"
	"storescan-go/pkg/storage"
)

const serviceTestCSV = `시도명,시군구명,행정동명,20세남자,20세여자,35세남자,35세여자
용인시,처인구,김량장동,100,80,50,40
`

func loadTestTable(t *testing.T) *population.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "population.csv")
	if err := os.WriteFile(path, []byte(serviceTestCSV), 0644); err != nil {
		t.Fatal(err)
	}
	table, err := population.Load(path)
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	return table
}

type stubVolume struct {
	calls   int
	results []keyword.VolumeResult
	err     error
}

func (s *stubVolume) Lookup(ctx context.Context, hints []string) ([]keyword.VolumeResult, error) {
	s.calls++
	return s.results, s.err
}

type stubSearcher struct {
	total int
}

func (s *stubSearcher) Search(ctx context.Context, kw string) (*naver.BlogSearchResult, error) {
	return &naver.BlogSearchResult{Total: s.total}, nil
}

type stubSuggester struct {
	calls       int
	suggestions *llm.Suggestions
	err         error
}

func (s *stubSuggester) Suggest(ctx context.Context, profile llm.ShopProfile) (*llm.Suggestions, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.suggestions, nil
}

func testRequest() ReportRequest {
	return ReportRequest{
		ShopName:     "명가 닭국수",
		Category:     "닭국수",
		MenuItems:    []string{"닭국수"},
		Tags:         []string{"혼밥"},
		Province:     "용인시",
		District:     "처인구",
		SubDistricts: []string{"김량장동"},
	}
}

func pipelineConfig() config.PipelineConfig {
	return config.PipelineConfig{
		CategoryQuota:  6,
		BatchSize:      5,
		MaxBatchCalls:  5,
		VolumeFloor:    10,
		SnapshotLimit:  3,
		MainKeywordCap: 10,
		DetailCap:      12,
		RelatedCap:     5,
	}
}

func TestAnalyzeFullPipeline(t *testing.T) {
	volume := &stubVolume{
		results: []keyword.VolumeResult{
			{Keyword: "김량장동닭국수", Volume: 2000, Competition: keyword.CompetitionLow},
		},
	}
	suggester := &stubSuggester{suggestions: &llm.Suggestions{
		MenuSynonyms: []string{"닭칼국수"},
		IntentWords:  []string{"점심"},
		Insights:     []string{"점심 상권을 노리세요"},
	}}

	svc := NewReportService(loadTestTable(t), volume, &stubSearcher{total: 30}, suggester, pipelineConfig(), nil)

	r, err := svc.Analyze(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if r.Status != report.StatusOK {
		t.Errorf("Status = %s, want ok", r.Status)
	}
	if r.Persona != "20대 남성 거주 상권" {
		t.Errorf("Persona = %q", r.Persona)
	}
	if len(r.MainKeywords) == 0 {
		t.Error("expected main keywords")
	}
	if len(r.Insights) != 1 {
		t.Errorf("Insights = %v", r.Insights)
	}
	if volume.calls == 0 {
		t.Error("volume lookup never invoked")
	}
}

func TestAnalyzeLLMFailure(t *testing.T) {
	suggester := &stubSuggester{err: llm.ErrNotConfigured}
	svc := NewReportService(loadTestTable(t), &stubVolume{}, nil, suggester, pipelineConfig(), nil)

	r, err := svc.Analyze(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if r.Status != report.StatusAnalysisUnavailable {
		t.Errorf("Status = %s, want analysis_unavailable", r.Status)
	}
	if len(r.MainKeywords) != 0 || len(r.DetailKeywords) != 0 {
		t.Error("failure report must not carry keyword data")
	}
	if r.Persona != "20대 남성 거주 상권" {
		t.Errorf("Persona = %q, demographics should survive LLM failure", r.Persona)
	}
}

func TestAnalyzeEmptyLocation(t *testing.T) {
	suggester := &stubSuggester{suggestions: &llm.Suggestions{}}
	svc := NewReportService(loadTestTable(t), &stubVolume{}, nil, suggester, pipelineConfig(), nil)

	req := testRequest()
	req.Province = ""
	req.District = ""
	req.SubDistricts = nil

	r, err := svc.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if r.Status != report.StatusNoData {
		t.Errorf("Status = %s, want no_data", r.Status)
	}
	if suggester.calls != 0 {
		t.Error("suggester must not be called without a location")
	}
	if r.Persona != population.NoDataPersona {
		t.Errorf("Persona = %q, want no-data persona", r.Persona)
	}
}

func TestAnalyzeVolumeFailureYieldsEstimates(t *testing.T) {
	volume := &stubVolume{err: errors.New("rate limited")}
	suggester := &stubSuggester{suggestions: &llm.Suggestions{IntentWords: []string{"점심"}}}

	svc := NewReportService(loadTestTable(t), volume, nil, suggester, pipelineConfig(), nil)

	r, err := svc.Analyze(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if r.Status != report.StatusOK {
		t.Errorf("Status = %s, want ok via estimation fallback", r.Status)
	}
	for _, entry := range append(append([]keyword.Validated{}, r.MainKeywords...), r.DetailKeywords...) {
		if !entry.IsEstimated {
			t.Errorf("entry %q not flagged estimated after lookup failure", entry.Keyword)
		}
	}
}

func TestCachedVolumeClient(t *testing.T) {
	inner := &stubVolume{results: []keyword.VolumeResult{{Keyword: "캐시", Volume: 100}}}
	cache := storage.NewMemoryCache(8, time.Minute)
	client := withVolumeCache(inner, cache)

	hints := []string{"김량장동 닭국수"}
	if _, err := client.Lookup(context.Background(), hints); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Lookup(context.Background(), hints); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1 (second lookup served from cache)", inner.calls)
	}
}

func TestRegionService(t *testing.T) {
	svc := NewRegionService(loadTestTable(t))

	if got := svc.Provinces(); len(got) != 1 || got[0] != "용인시" {
		t.Errorf("Provinces() = %v", got)
	}
	if got := svc.Districts("용인시"); len(got) != 1 || got[0] != "처인구" {
		t.Errorf("Districts() = %v", got)
	}
	if got := svc.SubDistricts("용인시", "처인구"); len(got) != 1 || got[0] != "김량장동" {
		t.Errorf("SubDistricts() = %v", got)
	}
}
