// Package app contains application services and port definitions for the market context.
package app

import (
	"context"

	"github.com/fliplab/bzflip/business/market/domain"
)

// BazaarProvider fetches the live order-book feed.
type BazaarProvider interface {
	// FetchProducts returns every listed product keyed by item id,
	// with book sides already ordered best-first and depth-limited.
	FetchProducts(ctx context.Context) (map[string]domain.Product, error)
}

// ItemCatalogProvider fetches item metadata (NPC buy-back prices).
type ItemCatalogProvider interface {
	FetchItems(ctx context.Context) (map[string]domain.ItemInfo, error)
}

// RecipeProvider loads the crafting recipe table.
type RecipeProvider interface {
	LoadRecipes(ctx context.Context) (map[string]domain.Recipe, error)
}
