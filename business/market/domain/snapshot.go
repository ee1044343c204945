package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is an immutable per-run view of the market: listed products,
// item catalog metadata, and the recipe table. All reads are safe for
// concurrent use; nothing mutates a snapshot after construction.
type Snapshot struct {
	products map[string]Product
	items    map[string]ItemInfo
	recipes  map[string]Recipe
	takenAt  time.Time
}

// NewSnapshot builds a snapshot over the given feeds. The maps are owned
// by the snapshot after the call.
func NewSnapshot(products map[string]Product, items map[string]ItemInfo, recipes map[string]Recipe, takenAt time.Time) *Snapshot {
	if products == nil {
		products = map[string]Product{}
	}
	if items == nil {
		items = map[string]ItemInfo{}
	}
	if recipes == nil {
		recipes = map[string]Recipe{}
	}
	return &Snapshot{
		products: products,
		items:    items,
		recipes:  recipes,
		takenAt:  takenAt,
	}
}

// TakenAt returns when the snapshot was assembled.
func (s *Snapshot) TakenAt() time.Time {
	return s.takenAt
}

// IsListed reports whether the item trades on the bazaar.
func (s *Snapshot) IsListed(itemID string) bool {
	_, ok := s.products[itemID]
	return ok
}

// Book returns the order book for a listed item.
func (s *Snapshot) Book(itemID string) (Book, bool) {
	p, ok := s.products[itemID]
	if !ok {
		return Book{}, false
	}
	return p.Book, true
}

// RecipeFor returns the item's crafting recipe, if it has one.
func (s *Snapshot) RecipeFor(itemID string) (Recipe, bool) {
	r, ok := s.recipes[itemID]
	return r, ok
}

// NPCSellPrice returns the fixed NPC buy-back price for the item, if any.
func (s *Snapshot) NPCSellPrice(itemID string) (decimal.Decimal, bool) {
	info, ok := s.items[itemID]
	if !ok || !info.NPCSellable {
		return decimal.Zero, false
	}
	return info.NPCSellPrice, true
}

// BuyMovingWeek returns the weekly buy volume, zero for unlisted items.
func (s *Snapshot) BuyMovingWeek(itemID string) int64 {
	return s.products[itemID].BuyMovingWeek
}

// SellMovingWeek returns the weekly sell volume, zero for unlisted items.
func (s *Snapshot) SellMovingWeek(itemID string) int64 {
	return s.products[itemID].SellMovingWeek
}

// ItemIDs returns all listed item ids in stable order.
func (s *Snapshot) ItemIDs() []string {
	ids := make([]string, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
