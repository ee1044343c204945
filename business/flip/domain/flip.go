// Package domain contains the flip result types for the flip context.
package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Strategy identifies how a flip makes its profit.
type Strategy string

const (
	// StrategyMarket buys and resells on the bazaar.
	StrategyMarket Strategy = "market"
	// StrategyCraft buys base materials, crafts, and sells the product.
	StrategyCraft Strategy = "craft"
	// StrategyNPC acquires the item and sells it to an NPC at a fixed price.
	StrategyNPC Strategy = "npc"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(s) {
	case StrategyMarket, StrategyCraft, StrategyNPC:
		return Strategy(s), true
	}
	return "", false
}

// Flip is the shared base of every flip result. Volumes are the weekly
// traded amounts copied from the snapshot at construction; results hold
// no reference back to the snapshot.
type Flip struct {
	ItemID     string
	Strategy   Strategy
	Profit     decimal.Decimal
	BuyVolume  int64
	SellVolume int64
}

// Base returns the flip itself, satisfying Result.
func (f Flip) Base() Flip {
	return f
}

// Result is any evaluated flip, regardless of strategy.
type Result interface {
	Base() Flip
}

// MarketFlip is a bazaar round trip: buy one unit, sell one unit.
type MarketFlip struct {
	Flip
	// SellPrice is the realized proceeds of selling one unit.
	SellPrice decimal.Decimal
	// ProfitMargin is profit over the realized sell price.
	ProfitMargin decimal.Decimal
}

// CraftFlip buys base materials and sells one crafted unit.
type CraftFlip struct {
	Flip
	// Materials records the purchased quantity per material id.
	Materials map[string]int64
}

// NPCFlip acquires one unit and sells it to an NPC at a fixed price.
type NPCFlip struct {
	Flip
	NPCSellPrice decimal.Decimal
	// MaxDailyVolume is how many units fit under the daily coin limit.
	MaxDailyVolume int64
	MaxDailyProfit decimal.Decimal
}

// SortByProfit orders results by profit, highest first. Ties keep their
// relative order.
func SortByProfit(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Base().Profit.GreaterThan(results[j].Base().Profit)
	})
}
