package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"storescan-go/internal/config"
	"storescan-go/internal/service"
	"storescan-go/pkg/keyword"
	"storescan-go/pkg/llm"
	"storescan-go/pkg/logger"
	"storescan-go/pkg/naver"
	"storescan-go/pkg/population"
	"storescan-go/pkg/region"
	"storescan-go/pkg/report"
	"storescan-go/pkg/storage"
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", getEnvOrDefault("SCAN_CONFIG", "config/config.yaml"), "Configuration file path (env: SCAN_CONFIG)")
		shopName   = flag.String("shop", "", "Shop name (required)")
		category   = flag.String("category", "", "Shop category, e.g. 닭국수")
		menu       = flag.String("menu", "", "Comma-separated menu items")
		tags       = flag.String("tags", "", "Comma-separated shop tags, e.g. 혼밥,야식")
		location   = flag.String("location", "", "Free-text location, e.g. \"용인시 처인구 김량장동\" (required)")
		help       = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}
	if *shopName == "" || *location == "" {
		fmt.Println("ERROR: -shop and -location are required.")
		fmt.Println("")
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.NewManager().Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	cfg.NaverAds.APIKey = getEnvOrDefault("NAVER_ADS_API_KEY", cfg.NaverAds.APIKey)
	cfg.NaverAds.SecretKey = getEnvOrDefault("NAVER_ADS_SECRET_KEY", cfg.NaverAds.SecretKey)
	cfg.NaverAds.CustomerID = getEnvOrDefault("NAVER_CUSTOMER_ID", cfg.NaverAds.CustomerID)
	cfg.NaverSearch.ClientID = getEnvOrDefault("NAVER_SEARCH_CLIENT_ID", cfg.NaverSearch.ClientID)
	cfg.NaverSearch.ClientSecret = getEnvOrDefault("NAVER_SEARCH_CLIENT_SECRET", cfg.NaverSearch.ClientSecret)
	cfg.LLM.APIKey = getEnvOrDefault("LLM_API_KEY", cfg.LLM.APIKey)

	log := logger.New(logger.Config{Level: cfg.Logger.Level, Format: "console", Output: "stderr"})
	logger.SetLogger(log)

	table, err := population.Load(cfg.Population.CSVPath)
	if err != nil {
		log.WithError(err).Warn("Population table unavailable, continuing without demographics")
		table = nil
	}

	var volume keyword.VolumeClient = service.UnavailableVolume{}
	if ads, err := naver.NewKeywordToolClient(naver.AdsConfig{
		BaseURL:    cfg.NaverAds.BaseURL,
		APIKey:     cfg.NaverAds.APIKey,
		SecretKey:  cfg.NaverAds.SecretKey,
		CustomerID: cfg.NaverAds.CustomerID,
		Timeout:    time.Duration(cfg.NaverAds.TimeoutMs) * time.Millisecond,
	}); err == nil {
		volume = service.VolumeAdapter{Client: ads}
	} else {
		log.WithError(err).Warn("Keyword tool disabled, all volumes will be estimated")
	}

	var searcher report.BlogSearcher
	if blog, err := naver.NewBlogSearchClient(naver.SearchConfig{
		BaseURL:      cfg.NaverSearch.BaseURL,
		ClientID:     cfg.NaverSearch.ClientID,
		ClientSecret: cfg.NaverSearch.ClientSecret,
		Timeout:      time.Duration(cfg.NaverSearch.TimeoutMs) * time.Millisecond,
	}); err == nil {
		searcher = blog
	} else {
		log.WithError(err).Warn("Blog search disabled, skipping competitor snapshots")
	}

	svc := service.NewReportService(
		table,
		volume,
		searcher,
		&llm.Client{BaseURL: cfg.LLM.BaseURL, APIKey: cfg.LLM.APIKey, Model: cfg.LLM.Model},
		cfg.Pipeline,
		storage.NewMemoryCache(cfg.Cache.Size, time.Duration(cfg.Cache.TTLSeconds)*time.Second),
	)

	loc := region.Tokenize(*location)
	req := service.ReportRequest{
		ShopName:     *shopName,
		Category:     *category,
		MenuItems:    splitList(*menu),
		Tags:         splitList(*tags),
		Province:     loc.Province,
		District:     loc.District,
		SubDistricts: loc.SubDistricts,
	}
	if req.Category == "" && len(req.MenuItems) == 0 {
		fmt.Println("ERROR: at least one of -category or -menu is required.")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	start := time.Now()
	result, err := svc.Analyze(ctx, req)
	if err != nil {
		log.WithError(err).Fatal("Analysis failed")
	}

	printReport(result)
	fmt.Printf("\nDuration: %s\n", time.Since(start).Round(time.Millisecond))
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func printReport(r *report.Report) {
	fmt.Printf("=== %s (%s) ===\n", r.ShopName, r.Location)
	fmt.Printf("Status:  %s\n", r.Status)
	fmt.Printf("Persona: %s\n", r.Persona)

	printBucket("핵심 키워드", r.MainKeywords)
	printBucket("세부 키워드", r.DetailKeywords)
	printBucket("연관 키워드", r.RelatedKeywords)

	if len(r.Competitors) > 0 {
		fmt.Printf("\n--- 경쟁 현황 ---\n")
		for _, c := range r.Competitors {
			fmt.Printf("%-24s posts=%-7d %s\n", c.Keyword, c.TotalPosts, c.Competition)
			for _, post := range c.TopPosts {
				fmt.Printf("    %d. %s (%s)\n", post.Rank, post.Title, post.Author)
			}
		}
	}

	if len(r.Insights) > 0 {
		fmt.Printf("\n--- 인사이트 ---\n")
		for _, insight := range r.Insights {
			fmt.Printf("- %s\n", insight)
		}
	}
	if len(r.ContentIdeas) > 0 {
		fmt.Printf("\n--- 콘텐츠 아이디어 ---\n")
		for _, idea := range r.ContentIdeas {
			fmt.Printf("- %s\n", idea)
		}
	}
	for _, note := range r.Notes {
		fmt.Printf("\nNote: %s\n", note)
	}
}

func printBucket(title string, entries []keyword.Validated) {
	if len(entries) == 0 {
		return
	}
	fmt.Printf("\n--- %s ---\n", title)
	for _, entry := range entries {
		mark := ""
		if entry.IsEstimated {
			mark = " (추정)"
		}
		fmt.Printf("%-24s vol=%-7d %-6s score=%.1f%s\n",
			entry.Keyword, entry.MonthlyVolume, entry.Competition, entry.Score, mark)
	}
}

func printUsage() {
	fmt.Println("storescan - local marketing keyword analysis for small shops")
	fmt.Println("")
	fmt.Println("USAGE:")
	fmt.Println("    ./storescan -shop <name> -location <region> [-category <c>] [-menu <m,..>]")
	fmt.Println("")
	fmt.Println("REQUIRED:")
	fmt.Println("    -shop string       Shop name")
	fmt.Println("    -location string   Free-text region, e.g. \"용인시 처인구 김량장동\"")
	fmt.Println("")
	fmt.Println("OPTIONS:")
	fmt.Println("    -category string   Shop category")
	fmt.Println("    -menu string       Comma-separated menu items")
	fmt.Println("    -tags string       Comma-separated shop tags")
	fmt.Println("    -config string     Config file (default: config/config.yaml, env: SCAN_CONFIG)")
	fmt.Println("")
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("    NAVER_ADS_API_KEY / NAVER_ADS_SECRET_KEY / NAVER_CUSTOMER_ID")
	fmt.Println("    NAVER_SEARCH_CLIENT_ID / NAVER_SEARCH_CLIENT_SECRET")
	fmt.Println("    LLM_API_KEY")
	fmt.Println("")
	fmt.Println("EXAMPLES:")
	fmt.Println("    ./storescan -shop \"명가 닭국수\" -category 닭국수 -menu 닭국수 \\")
	fmt.Println("        -location \"용인시 처인구 김량장동\" -tags 혼밥,점심")
}
