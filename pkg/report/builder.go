package report

import (
	"context"
	"fmt"

	"storescan-go/pkg/keyword"
	"storescan-go/pkg/logger"
	"storescan-go/pkg/naver"
	"storescan-go/pkg/population"
)

// BlogSearcher supplies competitor blog statistics for one keyword.
type BlogSearcher interface {
	Search(ctx context.Context, keyword string) (*naver.BlogSearchResult, error)
}

// maxTopPosts bounds the post metadata kept per snapshot.
const maxTopPosts = 3

// BuildInput carries everything the builder assembles into a report.
type BuildInput struct {
	ShopName   string
	Location   string
	Persona    string
	Population population.Bucket
	Classified keyword.Classified
	Tags       []string
	Insights   []string
}

// Builder assembles the final report: keyword buckets, competitor snapshots
// for the top keywords, strategy notes and templated content ideas.
type Builder struct {
	searcher      BlogSearcher
	snapshotLimit int
	log           *logger.Logger
}

// NewBuilder creates a report builder. searcher may be nil, in which case
// competitor snapshots are skipped.
func NewBuilder(searcher BlogSearcher, snapshotLimit int) *Builder {
	if snapshotLimit <= 0 {
		snapshotLimit = 3
	}
	return &Builder{
		searcher:      searcher,
		snapshotLimit: snapshotLimit,
		log:           logger.GetLogger().WithField("component", "report_builder"),
	}
}

// Build produces a complete report. Search failures are absorbed per
// keyword; an entirely empty keyword set yields a well-formed no-data
// report instead of an error.
func (b *Builder) Build(ctx context.Context, in BuildInput) *Report {
	r := &Report{
		ShopName:        in.ShopName,
		Location:        in.Location,
		Status:          StatusOK,
		Persona:         in.Persona,
		Population:      in.Population,
		MainKeywords:    in.Classified.Main,
		DetailKeywords:  in.Classified.Detail,
		RelatedKeywords: in.Classified.Related,
		Insights:        in.Insights,
	}
	ensureSlices(r)

	if len(r.MainKeywords) == 0 && len(r.DetailKeywords) == 0 && len(r.RelatedKeywords) == 0 {
		r.Status = StatusNoData
		r.Notes = append(r.Notes, "분석 가능한 키워드가 없습니다. 지역이나 메뉴 키워드를 바꿔보세요.")
		return r
	}

	if len(r.MainKeywords) == 0 {
		r.Notes = append(r.Notes, "핵심 키워드를 찾지 못했습니다. 대표 메뉴 키워드를 다시 확인해보세요.")
	}
	if len(r.DetailKeywords) == 0 {
		r.Notes = append(r.Notes, "세부 키워드를 찾지 못했습니다. 상황 태그를 추가해보세요.")
	}

	r.Competitors = b.competitorSnapshots(ctx, in.Classified.Top(b.snapshotLimit))
	if ideas := contentIdeas(r, in.Tags); len(ideas) > 0 {
		r.ContentIdeas = ideas
	}
	return r
}

// Unavailable produces the explicit failure-state report used when the
// suggestion model cannot be reached. Keyword lists stay empty; demographics
// are still reported.
func (b *Builder) Unavailable(in BuildInput, reason string) *Report {
	r := &Report{
		ShopName:   in.ShopName,
		Location:   in.Location,
		Status:     StatusAnalysisUnavailable,
		Persona:    in.Persona,
		Population: in.Population,
		Notes:      []string{"AI 키워드 분석을 사용할 수 없습니다: " + reason},
	}
	ensureSlices(r)
	return r
}

func (b *Builder) competitorSnapshots(ctx context.Context, top []keyword.Validated) []CompetitorSnapshot {
	if b.searcher == nil {
		return nil
	}

	var snapshots []CompetitorSnapshot
	for _, entry := range top {
		result, err := b.searcher.Search(ctx, entry.Keyword)
		if err != nil {
			b.log.WithError(err).WithField("keyword", entry.Keyword).Warn("Blog search failed, skipping snapshot")
			continue
		}

		level, note := ClassifyCompetition(result.Total)
		snapshot := CompetitorSnapshot{
			Keyword:     entry.Keyword,
			TotalPosts:  result.Total,
			Competition: level,
			Note:        note,
		}
		for i, post := range result.Items {
			if i == maxTopPosts {
				break
			}
			snapshot.TopPosts = append(snapshot.TopPosts, CompetitorPost{
				Rank:   i + 1,
				Title:  post.Title,
				Author: post.BloggerName,
				Date:   post.PostDate,
			})
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots
}

// contentIdeas fills fixed templates from the strongest keywords. Ideas are
// assembled strings, not model output.
func contentIdeas(r *Report, tags []string) []string {
	var ideas []string

	if len(r.MainKeywords) > 0 {
		ideas = append(ideas, fmt.Sprintf("'%s' 방문 후기 형식의 리뷰 포스팅", r.MainKeywords[0].Keyword))
	}
	if len(r.DetailKeywords) > 0 {
		ideas = append(ideas, fmt.Sprintf("'%s' 검색자를 겨냥한 추천 가이드 글", r.DetailKeywords[0].Keyword))
	}
	if len(tags) > 0 {
		ideas = append(ideas, fmt.Sprintf("'%s' 상황에 어울리는 메뉴 소개 콘텐츠", tags[0]))
	}
	if len(r.Competitors) > 0 {
		ideas = append(ideas, fmt.Sprintf("'%s' 상위 글과 차별화한 비교 포스팅", r.Competitors[0].Keyword))
	}
	return ideas
}

func ensureSlices(r *Report) {
	if r.MainKeywords == nil {
		r.MainKeywords = []keyword.Validated{}
	}
	if r.DetailKeywords == nil {
		r.DetailKeywords = []keyword.Validated{}
	}
	if r.RelatedKeywords == nil {
		r.RelatedKeywords = []keyword.Validated{}
	}
	if r.Insights == nil {
		r.Insights = []string{}
	}
	if r.ContentIdeas == nil {
		r.ContentIdeas = []string{}
	}
	if r.Notes == nil {
		r.Notes = []string{}
	}
}
