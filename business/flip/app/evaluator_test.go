package app

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	craftingapp "github.com/fliplab/bzflip/business/crafting/app"
	"github.com/fliplab/bzflip/business/flip/domain"
	marketdomain "github.com/fliplab/bzflip/business/market/domain"
	tradingapp "github.com/fliplab/bzflip/business/trading/app"
	"github.com/fliplab/bzflip/internal/apperror"
	"github.com/fliplab/bzflip/internal/config"
	"github.com/fliplab/bzflip/internal/logger"
)

type stubSource struct {
	snap *marketdomain.Snapshot
}

func (s stubSource) Snapshot(context.Context) (*marketdomain.Snapshot, error) {
	return s.snap, nil
}

// sellersAt builds a book where standing buys price at standingSell and
// instant sells walk a deep bid book at instantSell.
func sellersAt(standingSell, instantSell int64) marketdomain.Book {
	return marketdomain.Book{
		StandingSells: []marketdomain.Order{{Quantity: 64, UnitPrice: decimal.NewFromInt(standingSell)}},
		InstantSells:  []marketdomain.Order{{Quantity: 64, UnitPrice: decimal.NewFromInt(instantSell)}},
	}
}

func fixtureSnapshot() *marketdomain.Snapshot {
	products := map[string]marketdomain.Product{
		// Buy at 10, sell at 12.
		"MARKET_ITEM": {
			ItemID:         "MARKET_ITEM",
			Book:           sellersAt(10, 12),
			BuyMovingWeek:  100,
			SellMovingWeek: 50,
		},
		// Craftable from 2x MAT_A + 1x MAT_B, sells for 20.
		"GADGET": {ItemID: "GADGET", Book: sellersAt(19, 20)},
		"MAT_A":  {ItemID: "MAT_A", Book: sellersAt(3, 2)},
		"MAT_B":  {ItemID: "MAT_B", Book: sellersAt(5, 4)},
		// Listed and NPC-sellable at 100, buyable at 40.
		"NPC_ITEM": {ItemID: "NPC_ITEM", Book: sellersAt(40, 39)},
		// Listed but not craftable and not NPC-sellable.
		"PLAIN": {ItemID: "PLAIN", Book: sellersAt(7, 6)},
	}

	items := map[string]marketdomain.ItemInfo{
		"NPC_ITEM":  {ID: "NPC_ITEM", NPCSellable: true, NPCSellPrice: decimal.NewFromInt(100)},
		"NPC_CRAFT": {ID: "NPC_CRAFT", NPCSellable: true, NPCSellPrice: decimal.NewFromInt(50)},
	}

	recipes := map[string]marketdomain.Recipe{
		"GADGET":    {Slots: map[string]string{"A1": "MAT_A:2", "A2": "MAT_B:1"}},
		"NPC_CRAFT": {Slots: map[string]string{"A1": "MAT_A:4"}},
	}

	return marketdomain.NewSnapshot(products, items, recipes, time.Now())
}

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()

	pricing := config.PricingConfig{
		UseInstantBuy:  false,
		UseInstantSell: true,
		SellTaxPct:     0,
		NPCDailyLimit:  200_000_000,
	}
	log := logger.New(io.Discard, logger.LevelError, "test", nil)

	e, err := NewEvaluator(
		stubSource{snap: fixtureSnapshot()},
		tradingapp.NewSessionFactory(pricing, log),
		craftingapp.NewResolver(log),
		pricing,
		log,
	)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	return e
}

func TestEvaluateMarketFlip(t *testing.T) {
	e := newTestEvaluator(t)

	result, err := e.Evaluate(context.Background(), "MARKET_ITEM", domain.StrategyMarket)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flip, ok := result.(domain.MarketFlip)
	if !ok {
		t.Fatalf("got %T, want MarketFlip", result)
	}
	if want := decimal.NewFromInt(2); !flip.Profit.Equal(want) {
		t.Errorf("profit: got %v, want %v", flip.Profit, want)
	}
	if want := decimal.NewFromInt(12); !flip.SellPrice.Equal(want) {
		t.Errorf("sell price: got %v, want %v", flip.SellPrice, want)
	}
	// Margin is profit over the realized sell price: 2 / 12.
	if want := decimal.NewFromInt(2).Div(decimal.NewFromInt(12)); !flip.ProfitMargin.Equal(want) {
		t.Errorf("margin: got %v, want %v", flip.ProfitMargin, want)
	}
	if flip.BuyVolume != 100 || flip.SellVolume != 50 {
		t.Errorf("volumes: got %d/%d, want 100/50", flip.BuyVolume, flip.SellVolume)
	}
}

func TestEvaluateCraftFlip(t *testing.T) {
	e := newTestEvaluator(t)

	result, err := e.Evaluate(context.Background(), "GADGET", domain.StrategyCraft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flip, ok := result.(domain.CraftFlip)
	if !ok {
		t.Fatalf("got %T, want CraftFlip", result)
	}
	// Sell one for 20, materials cost 2x3 + 1x5 = 11.
	if want := decimal.NewFromInt(9); !flip.Profit.Equal(want) {
		t.Errorf("profit: got %v, want %v", flip.Profit, want)
	}
	if flip.Materials["MAT_A"] != 2 || flip.Materials["MAT_B"] != 1 {
		t.Errorf("materials: got %v, want MAT_A:2 MAT_B:1", flip.Materials)
	}
}

func TestEvaluateNPCFlip(t *testing.T) {
	e := newTestEvaluator(t)

	result, err := e.Evaluate(context.Background(), "NPC_ITEM", domain.StrategyNPC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flip, ok := result.(domain.NPCFlip)
	if !ok {
		t.Fatalf("got %T, want NPCFlip", result)
	}
	// Sell to NPC for 100, buy back for 40.
	if want := decimal.NewFromInt(60); !flip.Profit.Equal(want) {
		t.Errorf("profit: got %v, want %v", flip.Profit, want)
	}
	if flip.MaxDailyVolume != 2_000_000 { // 200M coin limit / 100
		t.Errorf("max daily volume: got %d, want 2000000", flip.MaxDailyVolume)
	}
	if want := decimal.NewFromInt(120_000_000); !flip.MaxDailyProfit.Equal(want) {
		t.Errorf("max daily profit: got %v, want %v", flip.MaxDailyProfit, want)
	}
}

func TestEvaluateNPCFlipUnlistedItemBuysDecomposition(t *testing.T) {
	e := newTestEvaluator(t)

	result, err := e.Evaluate(context.Background(), "NPC_CRAFT", domain.StrategyNPC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flip := result.(domain.NPCFlip)
	// Sell to NPC for 50, buy 4x MAT_A at 3 = 12.
	if want := decimal.NewFromInt(38); !flip.Profit.Equal(want) {
		t.Errorf("profit: got %v, want %v", flip.Profit, want)
	}
}

func TestEvaluateNotFlippable(t *testing.T) {
	e := newTestEvaluator(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		itemID   string
		strategy domain.Strategy
	}{
		{"market_unlisted", "NPC_CRAFT", domain.StrategyMarket},
		{"market_unknown", "MISSING", domain.StrategyMarket},
		{"craft_without_recipe", "PLAIN", domain.StrategyCraft},
		{"craft_unlisted", "NPC_CRAFT", domain.StrategyCraft},
		{"npc_without_npc_price", "PLAIN", domain.StrategyNPC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Evaluate(ctx, tt.itemID, tt.strategy)
			if !apperror.IsCode(err, apperror.CodeNotFlippable) {
				t.Errorf("got %v, want NOT_FLIPPABLE", err)
			}
		})
	}
}

func TestEvaluateUnknownStrategy(t *testing.T) {
	e := newTestEvaluator(t)

	_, err := e.Evaluate(context.Background(), "MARKET_ITEM", domain.Strategy("bogus"))
	if !apperror.IsCode(err, apperror.CodeInvalidInput) {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}

func TestEvaluateAll(t *testing.T) {
	e := newTestEvaluator(t)

	results, err := e.EvaluateAll(context.Background(), domain.StrategyMarket, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// All six listed items round-trip; unlisted ones are skipped silently.
	if len(results) != 6 {
		t.Fatalf("got %d results, want 6", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Base().Profit.GreaterThan(results[i-1].Base().Profit) {
			t.Fatalf("results not sorted by profit descending at index %d", i)
		}
	}

	topTwo, err := e.EvaluateAll(context.Background(), domain.StrategyMarket, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topTwo) != 2 {
		t.Errorf("top limit: got %d results, want 2", len(topTwo))
	}
}
