package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"storescan-go/internal/config"
	"storescan-go/internal/handler"
	"storescan-go/internal/service"
	"storescan-go/pkg/keyword"
	"storescan-go/pkg/llm"
	"storescan-go/pkg/logger"
	"storescan-go/pkg/naver"
	"storescan-go/pkg/population"
	"storescan-go/pkg/report"
	"storescan-go/pkg/storage"
)

type Application struct {
	configPath string
	debug      bool
}

func main() {
	app := &Application{}

	flag.StringVar(&app.configPath, "config", "config/config.yaml", "Configuration file path")
	flag.BoolVar(&app.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func (app *Application) Run() error {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.NewManager().Load(app.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	overlayCredentials(cfg)

	if app.debug {
		cfg.Logger.Level = "debug"
	}
	log := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	logger.SetLogger(log)
	logger.SetGlobalLogger(log)

	log = log.WithField("component", "server")
	log.WithFields(map[string]interface{}{
		"config":   app.configPath,
		"csv_path": cfg.Population.CSVPath,
		"port":     cfg.Server.Port,
	}).Info("Starting storescan server")

	table, err := population.Load(cfg.Population.CSVPath)
	if err != nil {
		// Region listings and personas degrade to the no-data path.
		log.WithError(err).Warn("Population table unavailable, reports will carry no demographics")
		table = nil
	}

	cache := storage.NewMemoryCache(cfg.Cache.Size, time.Duration(cfg.Cache.TTLSeconds)*time.Second)

	reports := service.NewReportService(
		table,
		buildVolumeClient(cfg, log),
		buildSearcher(cfg, log),
		&llm.Client{
			BaseURL:    cfg.LLM.BaseURL,
			APIKey:     cfg.LLM.APIKey,
			Model:      cfg.LLM.Model,
			HTTPClient: llmHTTPClient(cfg),
		},
		cfg.Pipeline,
		cache,
	)
	regions := service.NewRegionService(table)

	fiberApp := fiber.New(fiber.Config{
		AppName:      "storescan",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	})
	handler.New(reports, regions).Register(fiberApp)

	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		errChan <- fiberApp.Listen(addr)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("listen: %w", err)
	case sig := <-sigChan:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// overlayCredentials lets secrets come from the environment so the YAML file
// can be committed without them.
func overlayCredentials(cfg *config.Config) {
	cfg.NaverAds.APIKey = getEnvOrDefault("NAVER_ADS_API_KEY", cfg.NaverAds.APIKey)
	cfg.NaverAds.SecretKey = getEnvOrDefault("NAVER_ADS_SECRET_KEY", cfg.NaverAds.SecretKey)
	cfg.NaverAds.CustomerID = getEnvOrDefault("NAVER_CUSTOMER_ID", cfg.NaverAds.CustomerID)
	cfg.NaverSearch.ClientID = getEnvOrDefault("NAVER_SEARCH_CLIENT_ID", cfg.NaverSearch.ClientID)
	cfg.NaverSearch.ClientSecret = getEnvOrDefault("NAVER_SEARCH_CLIENT_SECRET", cfg.NaverSearch.ClientSecret)
	cfg.LLM.APIKey = getEnvOrDefault("LLM_API_KEY", cfg.LLM.APIKey)
}

func buildVolumeClient(cfg *config.Config, log *logger.Logger) keyword.VolumeClient {
	client, err := naver.NewKeywordToolClient(naver.AdsConfig{
		BaseURL:    cfg.NaverAds.BaseURL,
		APIKey:     cfg.NaverAds.APIKey,
		SecretKey:  cfg.NaverAds.SecretKey,
		CustomerID: cfg.NaverAds.CustomerID,
		Timeout:    time.Duration(cfg.NaverAds.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		log.WithError(err).Warn("Keyword tool disabled, all volumes will be estimated")
		return service.UnavailableVolume{}
	}
	log.WithField("api_key", logger.MaskSecret(cfg.NaverAds.APIKey)).Info("Keyword tool client ready")
	return service.VolumeAdapter{Client: client}
}

func buildSearcher(cfg *config.Config, log *logger.Logger) report.BlogSearcher {
	client, err := naver.NewBlogSearchClient(naver.SearchConfig{
		BaseURL:      cfg.NaverSearch.BaseURL,
		ClientID:     cfg.NaverSearch.ClientID,
		ClientSecret: cfg.NaverSearch.ClientSecret,
		Timeout:      time.Duration(cfg.NaverSearch.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		log.WithError(err).Warn("Blog search disabled, reports will skip competitor snapshots")
		return nil
	}
	return client
}

func llmHTTPClient(cfg *config.Config) *http.Client {
	if cfg.LLM.TimeoutMs <= 0 {
		return nil
	}
	return &http.Client{Timeout: time.Duration(cfg.LLM.TimeoutMs) * time.Millisecond}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
