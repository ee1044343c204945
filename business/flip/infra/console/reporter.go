// Package console renders flip results as a table on a writer.
package console

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/fliplab/bzflip/business/flip/domain"
)

var hundred = decimal.NewFromInt(100)

// Reporter prints a ranked flip table.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Report renders the results in ranking order. The detail column varies
// by strategy: realized sell price and margin for market flips, the
// material bill for craft flips, the NPC price and daily cap for NPC flips.
func (r *Reporter) Report(results []domain.Result) error {
	if len(results) == 0 {
		fmt.Fprintln(r.out, "no flips found")
		return nil
	}

	table := tablewriter.NewWriter(r.out)
	table.Header("#", "Item", "Strategy", "Profit", "Buy/wk", "Sell/wk", "Detail")

	for i, result := range results {
		base := result.Base()
		table.Append(
			fmt.Sprintf("%d", i+1),
			base.ItemID,
			string(base.Strategy),
			base.Profit.StringFixed(1),
			fmt.Sprintf("%d", base.BuyVolume),
			fmt.Sprintf("%d", base.SellVolume),
			detail(result),
		)
	}

	return table.Render()
}

func detail(result domain.Result) string {
	switch f := result.(type) {
	case domain.MarketFlip:
		return fmt.Sprintf("sell %s, margin %s%%",
			f.SellPrice.StringFixed(1), f.ProfitMargin.Mul(hundred).StringFixed(2))
	case domain.CraftFlip:
		return fmt.Sprintf("%d materials", len(f.Materials))
	case domain.NPCFlip:
		return fmt.Sprintf("npc %s, cap %d/day, max %s",
			f.NPCSellPrice.StringFixed(1), f.MaxDailyVolume, f.MaxDailyProfit.StringFixed(0))
	}
	return ""
}
