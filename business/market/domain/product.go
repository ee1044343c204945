package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a bazaar-listed item: its order book plus weekly traded volumes.
type Product struct {
	ItemID         string
	Book           Book
	BuyMovingWeek  int64
	SellMovingWeek int64
}

// ItemInfo is catalog metadata for an item. NPCSellPrice is only
// meaningful when NPCSellable is true.
type ItemInfo struct {
	ID           string
	Name         string
	NPCSellable  bool
	NPCSellPrice decimal.Decimal
}

// Recipe is a single crafting recipe: a slot → "ITEM_ID:QTY" mapping.
// Empty slot values mean the slot is unused. An item has at most one recipe.
type Recipe struct {
	Slots map[string]string
}

// Ingredients sums the slot quantities per ingredient id. A slot entry
// without an explicit count contributes one unit.
func (r Recipe) Ingredients() map[string]int64 {
	out := make(map[string]int64, len(r.Slots))
	for _, slot := range r.Slots {
		if slot == "" {
			continue
		}
		id, qty := parseSlot(slot)
		if id == "" {
			continue
		}
		out[id] += qty
	}
	return out
}

// parseSlot splits "ITEM_ID:QTY" into its parts. The count defaults to 1
// when missing or unparsable; item ids may themselves contain dashes.
func parseSlot(slot string) (string, int64) {
	idx := strings.LastIndex(slot, ":")
	if idx < 0 {
		return slot, 1
	}
	qty, err := strconv.ParseInt(slot[idx+1:], 10, 64)
	if err != nil || qty <= 0 {
		return slot[:idx], 1
	}
	return slot[:idx], qty
}
