package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setupViper(configPath)

	if err := m.viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)

	if err := m.validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	m.config = &config
	return &config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.viper == nil {
		return fmt.Errorf("config not loaded")
	}

	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)

	if err := m.validateConfig(&config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	m.config = &config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) setupViper(configPath string) {
	m.viper.SetConfigFile(configPath)

	m.viper.SetEnvPrefix("SCAN")
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()
}

func applyDefaults(config *Config) {
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Pipeline.CategoryQuota == 0 {
		config.Pipeline.CategoryQuota = 6
	}
	if config.Pipeline.BatchSize == 0 {
		config.Pipeline.BatchSize = 5
	}
	if config.Pipeline.MaxBatchCalls == 0 {
		config.Pipeline.MaxBatchCalls = 5
	}
	if config.Pipeline.BatchSleepMs == 0 {
		config.Pipeline.BatchSleepMs = 300
	}
	if config.Pipeline.VolumeFloor == 0 {
		config.Pipeline.VolumeFloor = 10
	}
	if config.Pipeline.SnapshotLimit == 0 {
		config.Pipeline.SnapshotLimit = 3
	}
	if config.Pipeline.MainKeywordCap == 0 {
		config.Pipeline.MainKeywordCap = 10
	}
	if config.Pipeline.DetailCap == 0 {
		config.Pipeline.DetailCap = 12
	}
	if config.Pipeline.RelatedCap == 0 {
		config.Pipeline.RelatedCap = 5
	}
	if config.Cache.Size == 0 {
		config.Cache.Size = 256
	}
	if config.Cache.TTLSeconds == 0 {
		config.Cache.TTLSeconds = 600
	}
}

func (m *manager) validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Population.CSVPath == "" {
		return fmt.Errorf("population csv_path cannot be empty")
	}

	if config.Pipeline.BatchSize > 5 {
		return fmt.Errorf("batch_size cannot exceed 5 keywords per keyword-tool request")
	}

	if config.Pipeline.MaxBatchCalls <= 0 {
		return fmt.Errorf("max_batch_calls must be positive")
	}

	return nil
}
