package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSortByProfit(t *testing.T) {
	results := []Result{
		MarketFlip{Flip: Flip{ItemID: "A", Profit: decimal.NewFromInt(5)}},
		NPCFlip{Flip: Flip{ItemID: "B", Profit: decimal.NewFromInt(20)}},
		CraftFlip{Flip: Flip{ItemID: "C", Profit: decimal.NewFromInt(-3)}},
		MarketFlip{Flip: Flip{ItemID: "D", Profit: decimal.NewFromInt(20)}},
	}

	SortByProfit(results)

	got := make([]string, len(results))
	for i, r := range results {
		got[i] = r.Base().ItemID
	}

	// B and D tie at 20; stable sort keeps B before D.
	want := []string{"B", "D", "A", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	for _, valid := range []string{"market", "craft", "npc"} {
		if _, ok := ParseStrategy(valid); !ok {
			t.Errorf("ParseStrategy(%q) should succeed", valid)
		}
	}
	if _, ok := ParseStrategy("arbitrage"); ok {
		t.Error("unknown strategy must be rejected")
	}
}
