package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"storescan-go/internal/config"
	"storescan-go/pkg/keyword"
	"storescan-go/pkg/llm"
	"storescan-go/pkg/logger"
	"storescan-go/pkg/population"
	"storescan-go/pkg/region"
	"storescan-go/pkg/report"
	"storescan-go/pkg/storage"
)

type reportService struct {
	table     *population.Table
	volume    keyword.VolumeClient
	suggester SuggestionClient
	builder   *report.Builder
	pipeline  config.PipelineConfig
	log       *logger.Logger
}

// NewReportService wires the analysis pipeline. table, volume client and
// searcher may be nil; the pipeline degrades per the error policy instead of
// failing construction.
func NewReportService(
	table *population.Table,
	volume keyword.VolumeClient,
	searcher report.BlogSearcher,
	suggester SuggestionClient,
	pipeline config.PipelineConfig,
	cache *storage.MemoryCache,
) ReportService {
	return &reportService{
		table:     table,
		volume:    withVolumeCache(volume, cache),
		suggester: suggester,
		builder:   report.NewBuilder(withSearchCache(searcher, cache), pipeline.SnapshotLimit),
		pipeline:  pipeline,
		log:       logger.GetLogger().WithField("component", "report_service"),
	}
}

// Analyze runs the full pipeline: demographics, suggestion expansion,
// candidate generation, batched validation, classification and report
// assembly. One call, one linear synchronous run.
func (s *reportService) Analyze(ctx context.Context, req ReportRequest) (*report.Report, error) {
	loc := region.Location{
		Province:     req.Province,
		District:     req.District,
		SubDistricts: req.SubDistricts,
	}

	bucket := population.Aggregate(s.table, req.Province, req.District, req.SubDistricts)
	persona := population.DerivePersona(bucket)

	input := report.BuildInput{
		ShopName:   req.ShopName,
		Location:   displayLocation(loc),
		Persona:    persona,
		Population: bucket,
		Tags:       req.Tags,
	}

	if loc.IsEmpty() {
		s.log.Warn("No location supplied, returning empty report")
		return s.builder.Build(ctx, input), nil
	}

	suggestions, err := s.suggester.Suggest(ctx, llm.ShopProfile{
		ShopName: req.ShopName,
		Category: req.Category,
		Menu:     req.MenuItems,
		Tags:     req.Tags,
		Persona:  persona,
		Location: input.Location,
	})
	if err != nil {
		reason := "일시적인 오류가 발생했습니다"
		if errors.Is(err, llm.ErrNotConfigured) {
			reason = "AI 서비스 인증 정보가 없습니다"
		}
		s.log.WithError(err).Error("Suggestion call failed")
		return s.builder.Unavailable(input, reason), nil
	}
	input.Insights = suggestions.Insights

	locations := loc.Specific()
	candidates := keyword.Generate(keyword.Inputs{
		Locations:            locations,
		Menu:                 req.MenuItems,
		Category:             req.Category,
		Tags:                 req.Tags,
		MenuSynonyms:         suggestions.MenuSynonyms,
		CategoryWords:        suggestions.CategoryWords,
		IntentWords:          append(personaIntentWords(persona), suggestions.IntentWords...),
		SituationalModifiers: suggestions.SituationalWords,
		SeasonalModifiers:    suggestions.SeasonalModifiers,
		PurchaseTriggers:     suggestions.PurchaseTriggers,
	}, s.pipeline.CategoryQuota)

	primaryLocation := ""
	if len(locations) > 0 {
		primaryLocation = locations[0]
	}
	validator := keyword.NewValidator(s.volume, keyword.ValidatorConfig{
		BatchSize:       s.pipeline.BatchSize,
		MaxBatchCalls:   s.pipeline.MaxBatchCalls,
		BatchSleep:      time.Duration(s.pipeline.BatchSleepMs) * time.Millisecond,
		VolumeFloor:     s.pipeline.VolumeFloor,
		PrimaryLocation: primaryLocation,
	})
	validated := validator.Validate(ctx, candidates)

	input.Classified = keyword.Classify(validated, keyword.Caps{
		Main:    s.pipeline.MainKeywordCap,
		Detail:  s.pipeline.DetailCap,
		Related: s.pipeline.RelatedCap,
	})

	return s.builder.Build(ctx, input), nil
}

// personaIntentWords adds a couple of intent terms fitting the dominant
// resident group, complementing whatever the model suggests.
func personaIntentWords(persona string) []string {
	if persona == population.NoDataPersona {
		return nil
	}
	var words []string
	if strings.Contains(persona, "20대") || strings.Contains(persona, "30대") {
		words = append(words, "데이트")
	}
	if strings.Contains(persona, "40대") || strings.Contains(persona, "50대") {
		words = append(words, "가족 외식")
	}
	if strings.Contains(persona, "남성") {
		words = append(words, "회식")
	}
	if strings.Contains(persona, "여성") {
		words = append(words, "브런치")
	}
	return words
}

func displayLocation(loc region.Location) string {
	parts := make([]string, 0, 3)
	if loc.Province != "" {
		parts = append(parts, loc.Province)
	}
	if loc.District != "" {
		parts = append(parts, loc.District)
	}
	parts = append(parts, loc.SubDistricts...)
	return strings.Join(parts, " ")
}

type regionService struct {
	table *population.Table
}

// NewRegionService lists regions straight off the read-only table.
func NewRegionService(table *population.Table) RegionService {
	return &regionService{table: table}
}

func (s *regionService) Provinces() []string {
	return s.table.Provinces()
}

func (s *regionService) Districts(province string) []string {
	return s.table.Districts(province)
}

func (s *regionService) SubDistricts(province, district string) []string {
	return s.table.SubDistricts(province, district)
}
