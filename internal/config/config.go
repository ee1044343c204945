// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Market    MarketConfig    `mapstructure:"market"`
	Pricing   PricingConfig   `mapstructure:"pricing"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	TUIMode     bool   `mapstructure:"-"` // Set at runtime, not from config file
}

// MarketConfig holds market feed and cache configuration.
type MarketConfig struct {
	BazaarURL         string        `mapstructure:"bazaar_url"`
	ItemsURL          string        `mapstructure:"items_url"`
	RecipesPath       string        `mapstructure:"recipes_path"`
	CacheDir          string        `mapstructure:"cache_dir"`
	CacheEnabled      bool          `mapstructure:"cache_enabled"`
	RefreshFeeds      []string      `mapstructure:"refresh_feeds"`
	HTTPTimeout       time.Duration `mapstructure:"http_timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	BookDepth         int           `mapstructure:"book_depth"`
}

// PricingConfig holds the pricing toggles and multipliers.
type PricingConfig struct {
	UseInstantBuy        bool    `mapstructure:"use_instant_buy"`
	UseInstantSell       bool    `mapstructure:"use_instant_sell"`
	InstantBuyUpscale    bool    `mapstructure:"instant_buy_upscale"`
	InstantBuyUpscalePct float64 `mapstructure:"instant_buy_upscale_pct"`
	SellTaxPct           float64 `mapstructure:"sell_tax_pct"`
	NPCDailyLimit        int64   `mapstructure:"npc_daily_limit"`
}

// BuyUpscaleMult returns the buy-side upscale multiplier (1 when disabled).
func (c *PricingConfig) BuyUpscaleMult() decimal.Decimal {
	if !c.InstantBuyUpscale {
		return decimal.NewFromInt(1)
	}
	pct := decimal.NewFromFloat(c.InstantBuyUpscalePct)
	return decimal.NewFromInt(1).Add(pct.Div(decimal.NewFromInt(100)))
}

// SellTaxMult returns the sell-side tax multiplier (< 1).
func (c *PricingConfig) SellTaxMult() decimal.Decimal {
	pct := decimal.NewFromFloat(c.SellTaxPct)
	return decimal.NewFromInt(1).Sub(pct.Div(decimal.NewFromInt(100)))
}

// StorageConfig holds flip history storage configuration.
type StorageConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("BZF")
	v.AutomaticEnv()

	// Bind env vars to config keys
	bindEnvVars(v)

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "BZF_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "BZF_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "BZF_LOG_LEVEL", "LOG_LEVEL")

	// Market
	v.BindEnv("market.bazaar_url", "BZF_BAZAAR_URL")
	v.BindEnv("market.items_url", "BZF_ITEMS_URL")
	v.BindEnv("market.recipes_path", "BZF_RECIPES_PATH")
	v.BindEnv("market.cache_dir", "BZF_CACHE_DIR")
	v.BindEnv("market.cache_enabled", "BZF_CACHE_ENABLED")

	// Pricing
	v.BindEnv("pricing.use_instant_buy", "BZF_USE_INSTANT_BUY")
	v.BindEnv("pricing.use_instant_sell", "BZF_USE_INSTANT_SELL")
	v.BindEnv("pricing.sell_tax_pct", "BZF_SELL_TAX_PCT")
	v.BindEnv("pricing.npc_daily_limit", "BZF_NPC_DAILY_LIMIT")

	// Storage
	v.BindEnv("storage.enabled", "BZF_STORAGE_ENABLED")
	v.BindEnv("storage.path", "BZF_STORAGE_PATH")

	// Telemetry
	v.BindEnv("telemetry.enabled", "BZF_TELEMETRY_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "BZF_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.prometheus_port", "BZF_PROMETHEUS_PORT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "bzflip")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Market defaults
	v.SetDefault("market.bazaar_url", "https://api.hypixel.net/skyblock/bazaar")
	v.SetDefault("market.items_url", "https://api.hypixel.net/resources/skyblock/items")
	v.SetDefault("market.recipes_path", "")
	v.SetDefault("market.cache_dir", "cache")
	v.SetDefault("market.cache_enabled", true)
	v.SetDefault("market.refresh_feeds", []string{"bz"})
	v.SetDefault("market.http_timeout", "10s")
	v.SetDefault("market.requests_per_minute", 60)
	v.SetDefault("market.book_depth", 10)

	// Pricing defaults mirror the bazaar's published rates: the 4% instant
	// buy upscale and the 1.125% sell tax.
	v.SetDefault("pricing.use_instant_buy", false)
	v.SetDefault("pricing.use_instant_sell", true)
	v.SetDefault("pricing.instant_buy_upscale", false)
	v.SetDefault("pricing.instant_buy_upscale_pct", 4.0)
	v.SetDefault("pricing.sell_tax_pct", 1.125)
	v.SetDefault("pricing.npc_daily_limit", int64(200_000_000))

	// Storage defaults
	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.path", "flips.db")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "bzflip")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Market.BazaarURL == "" {
		return fmt.Errorf("market.bazaar_url is required")
	}
	if c.Market.ItemsURL == "" {
		return fmt.Errorf("market.items_url is required")
	}
	if c.Market.BookDepth <= 0 {
		return fmt.Errorf("market.book_depth must be positive, got %d", c.Market.BookDepth)
	}
	if c.Pricing.SellTaxPct < 0 || c.Pricing.SellTaxPct >= 100 {
		return fmt.Errorf("pricing.sell_tax_pct must be in [0, 100), got %v", c.Pricing.SellTaxPct)
	}
	if c.Pricing.NPCDailyLimit <= 0 {
		return fmt.Errorf("pricing.npc_daily_limit must be positive, got %d", c.Pricing.NPCDailyLimit)
	}
	if c.Storage.Enabled && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required when storage is enabled")
	}
	return nil
}
