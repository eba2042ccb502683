package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port              string        `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type RatesAPI struct {
	BaseURL        string `mapstructure:"base_url"`
	BaseCurrency   string `mapstructure:"base_currency"`
	TargetCurrency string `mapstructure:"target_currency"`
}

type Fetch struct {
	MaxAttempts    int           `mapstructure:"max_attempts"`
	RetryDelay     time.Duration `mapstructure:"retry_delay"`
	OverallTimeout time.Duration `mapstructure:"overall_timeout"`
}

type Cache struct {
	Capacity      int           `mapstructure:"capacity"`
	TTL           time.Duration `mapstructure:"ttl"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

type Snapshot struct {
	Path    string        `mapstructure:"path"`
	MemoTTL time.Duration `mapstructure:"memo_ttl"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	Logging    Logging    `mapstructure:"logging"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	RatesAPI   RatesAPI   `mapstructure:"rates_api"`
	Fetch      Fetch      `mapstructure:"fetch"`
	Cache      Cache      `mapstructure:"cache"`
	Snapshot   Snapshot   `mapstructure:"snapshot"`
}

// Init loads .env and the YAML config file when present, then applies env overrides.
// CONFIG_FILE selects the YAML file (config.yaml by default).
func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	return Load(configFile)
}

func Load(configFile string) (*AppConfig, error) {
	var cfg AppConfig
	v := viper.New()

	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8000")
	v.SetDefault("http_server.read_header_timeout", "5s")
	v.SetDefault("http_server.shutdown_timeout", "10s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("rates_api.base_url", "https://api.frankfurter.dev/v1")
	v.SetDefault("rates_api.base_currency", "EUR")
	v.SetDefault("rates_api.target_currency", "USD")
	v.SetDefault("fetch.max_attempts", 3)
	v.SetDefault("fetch.retry_delay", "2s")
	v.SetDefault("fetch.overall_timeout", "40s")
	v.SetDefault("cache.capacity", 100)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.purge_interval", "10m")
	v.SetDefault("snapshot.path", "data/sample_fx.json")
	v.SetDefault("snapshot.memo_ttl", "5m")

	// http server env vars
	_ = v.BindEnv("http_server.port", "PORT")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// rates api env vars
	_ = v.BindEnv("rates_api.base_url", "RATES_API_BASE_URL")
	_ = v.BindEnv("rates_api.base_currency", "RATES_BASE_CURRENCY")
	_ = v.BindEnv("rates_api.target_currency", "RATES_TARGET_CURRENCY")

	// fetch / cache / snapshot env vars
	_ = v.BindEnv("fetch.max_attempts", "FETCH_MAX_ATTEMPTS")
	_ = v.BindEnv("fetch.retry_delay", "FETCH_RETRY_DELAY")
	_ = v.BindEnv("fetch.overall_timeout", "FETCH_OVERALL_TIMEOUT")
	_ = v.BindEnv("cache.capacity", "CACHE_CAPACITY")
	_ = v.BindEnv("cache.ttl", "CACHE_TTL")
	_ = v.BindEnv("cache.purge_interval", "CACHE_PURGE_INTERVAL")
	_ = v.BindEnv("snapshot.path", "SNAPSHOT_PATH")
	_ = v.BindEnv("snapshot.memo_ttl", "SNAPSHOT_MEMO_TTL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate reports every problem at once rather than stopping at the first.
func (c *AppConfig) Validate() error {
	var result *multierror.Error

	if c.HTTPServer.Port == "" {
		result = multierror.Append(result, errors.New("http_server.port is required"))
	}
	if c.RatesAPI.BaseURL == "" {
		result = multierror.Append(result, errors.New("rates_api.base_url is required"))
	}
	if len(c.RatesAPI.BaseCurrency) != 3 {
		result = multierror.Append(result, fmt.Errorf("rates_api.base_currency must be a 3-letter code, got %q", c.RatesAPI.BaseCurrency))
	}
	if len(c.RatesAPI.TargetCurrency) != 3 {
		result = multierror.Append(result, fmt.Errorf("rates_api.target_currency must be a 3-letter code, got %q", c.RatesAPI.TargetCurrency))
	}
	if c.Fetch.MaxAttempts < 1 {
		result = multierror.Append(result, fmt.Errorf("fetch.max_attempts must be at least 1, got %d", c.Fetch.MaxAttempts))
	}
	if c.Fetch.RetryDelay < 0 {
		result = multierror.Append(result, fmt.Errorf("fetch.retry_delay must not be negative, got %s", c.Fetch.RetryDelay))
	}
	if c.Cache.Capacity < 1 {
		result = multierror.Append(result, fmt.Errorf("cache.capacity must be at least 1, got %d", c.Cache.Capacity))
	}
	if c.Cache.TTL <= 0 {
		result = multierror.Append(result, fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL))
	}
	if c.Snapshot.Path == "" {
		result = multierror.Append(result, errors.New("snapshot.path is required"))
	}

	return result.ErrorOrNil()
}
