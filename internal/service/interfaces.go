package service

import (
	"context"

	"storescan-go/pkg/llm"
	"storescan-go/pkg/report"
)

// ReportRequest is one analysis request for a shop in a chosen neighborhood.
type ReportRequest struct {
	ShopName     string   `json:"shop_name"`
	Category     string   `json:"category"`
	MenuItems    []string `json:"menu_items"`
	Tags         []string `json:"tags"`
	Province     string   `json:"province"`
	District     string   `json:"district"`
	SubDistricts []string `json:"sub_districts"`
}

// ReportService runs the analysis pipeline for one request.
type ReportService interface {
	Analyze(ctx context.Context, req ReportRequest) (*report.Report, error)
}

// RegionService lists the selectable administrative regions from the
// population table.
type RegionService interface {
	Provinces() []string
	Districts(province string) []string
	SubDistricts(province, district string) []string
}

// SuggestionClient expands a shop profile into keyword-building word lists.
type SuggestionClient interface {
	Suggest(ctx context.Context, profile llm.ShopProfile) (*llm.Suggestions, error)
}
