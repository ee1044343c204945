package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "bzflip", cfg.App.Name)
	assert.Equal(t, "https://api.hypixel.net/skyblock/bazaar", cfg.Market.BazaarURL)
	assert.Equal(t, 10, cfg.Market.BookDepth)
	assert.True(t, cfg.Market.CacheEnabled)

	assert.False(t, cfg.Pricing.UseInstantBuy)
	assert.True(t, cfg.Pricing.UseInstantSell)
	assert.InDelta(t, 1.125, cfg.Pricing.SellTaxPct, 1e-9)
	assert.EqualValues(t, 200_000_000, cfg.Pricing.NPCDailyLimit)

	assert.False(t, cfg.Storage.Enabled)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
app:
  name: flipper
  log_level: debug
market:
  book_depth: 5
pricing:
  use_instant_buy: true
  instant_buy_upscale: true
storage:
  enabled: true
  path: history.db
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "flipper", cfg.App.Name)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 5, cfg.Market.BookDepth)
	assert.True(t, cfg.Pricing.UseInstantBuy)
	assert.True(t, cfg.Storage.Enabled)
	assert.Equal(t, "history.db", cfg.Storage.Path)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty bazaar url", func(c *Config) { c.Market.BazaarURL = "" }},
		{"zero book depth", func(c *Config) { c.Market.BookDepth = 0 }},
		{"tax over 100", func(c *Config) { c.Pricing.SellTaxPct = 100 }},
		{"negative tax", func(c *Config) { c.Pricing.SellTaxPct = -1 }},
		{"zero npc limit", func(c *Config) { c.Pricing.NPCDailyLimit = 0 }},
		{"storage without path", func(c *Config) {
			c.Storage.Enabled = true
			c.Storage.Path = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPricingConfig_Multipliers(t *testing.T) {
	p := PricingConfig{
		InstantBuyUpscale:    false,
		InstantBuyUpscalePct: 4,
		SellTaxPct:           1.125,
	}

	assert.True(t, p.BuyUpscaleMult().Equal(decimal.NewFromInt(1)),
		"upscale disabled must be neutral")
	assert.True(t, p.SellTaxMult().Equal(decimal.RequireFromString("0.98875")))

	p.InstantBuyUpscale = true
	assert.True(t, p.BuyUpscaleMult().Equal(decimal.RequireFromString("1.04")))
}
