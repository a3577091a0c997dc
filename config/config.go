package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log     Logger       `mapstructure:"logger"`
	DB      Database     `mapstructure:"database"`
	API     API          `mapstructure:"api"`
	Trading Trading      `mapstructure:"trading"`
	Yahoo   YahooFinance `mapstructure:"yahoo_finance"`
	Sync    Sync         `mapstructure:"sync"`
	Cache   Cache        `mapstructure:"cache"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

// Trading holds the engine defaults shared by every backtest run.
type Trading struct {
	DefaultInitialCapital  float64 `mapstructure:"default_initial_capital"`
	TransactionCostPercent float64 `mapstructure:"transaction_cost_percent"`
	BenchmarkSymbol        string  `mapstructure:"benchmark_symbol"`
}

type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

type Sync struct {
	Enabled      bool   `mapstructure:"enabled"`
	CronSchedule string `mapstructure:"cron_schedule"`
	MaxWorkers   int    `mapstructure:"max_workers"`
	Years        int    `mapstructure:"years"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

func Load() (*Config, error) {
	// .env is optional, deployments may inject env vars directly
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")

	viper.SetDefault("api.port", 8000)

	viper.SetDefault("trading.default_initial_capital", 100000.0)
	viper.SetDefault("trading.transaction_cost_percent", 0.05)
	viper.SetDefault("trading.benchmark_symbol", "^NSEI")

	viper.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.timeout", 30*time.Second)
	viper.SetDefault("yahoo_finance.max_request_per_minute", 60)

	viper.SetDefault("sync.enabled", false)
	viper.SetDefault("sync.cron_schedule", "0 18 * * 1-5")
	viper.SetDefault("sync.max_workers", 5)
	viper.SetDefault("sync.years", 5)

	viper.SetDefault("cache.default_expiration", 15*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 30*time.Minute)
}

// CostRate converts the configured percentage (0.05 = 0.05%) to a decimal fraction.
func (t Trading) CostRate() float64 {
	return t.TransactionCostPercent / 100
}
