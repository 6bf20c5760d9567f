package config

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Population  PopulationConfig  `mapstructure:"population"`
	NaverAds    NaverAdsConfig    `mapstructure:"naver_ads"`
	NaverSearch NaverSearchConfig `mapstructure:"naver_search"`
	LLM         LLMConfig         `mapstructure:"llm"`
	Pipeline    PipelineConfig    `mapstructure:"pipeline"`
	Cache       CacheConfig       `mapstructure:"cache"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

type PopulationConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

// NaverAdsConfig holds credentials for the search-ads keyword tool API.
type NaverAdsConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	SecretKey  string `mapstructure:"secret_key"`
	CustomerID string `mapstructure:"customer_id"`
	TimeoutMs  int    `mapstructure:"timeout_ms"`
}

// NaverSearchConfig holds credentials for the open blog-search API.
type NaverSearchConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	TimeoutMs    int    `mapstructure:"timeout_ms"`
}

type LLMConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	TimeoutMs int    `mapstructure:"timeout_ms"`
}

// PipelineConfig bounds the candidate generation and validation stages.
type PipelineConfig struct {
	CategoryQuota   int `mapstructure:"category_quota"`
	BatchSize       int `mapstructure:"batch_size"`
	MaxBatchCalls   int `mapstructure:"max_batch_calls"`
	BatchSleepMs    int `mapstructure:"batch_sleep_ms"`
	VolumeFloor     int `mapstructure:"volume_floor"`
	SnapshotLimit   int `mapstructure:"snapshot_limit"`
	MainKeywordCap  int `mapstructure:"main_keyword_cap"`
	DetailCap       int `mapstructure:"detail_cap"`
	RelatedCap      int `mapstructure:"related_cap"`
}

type CacheConfig struct {
	Size       int `mapstructure:"size"`
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}
