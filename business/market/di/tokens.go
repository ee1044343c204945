// Package di contains dependency injection tokens for the market context.
package di

import (
	"github.com/fliplab/bzflip/business/market/app"
	"github.com/fliplab/bzflip/internal/di"
)

// Public service tokens - exposed to other modules
var (
	SnapshotService = di.NewToken[*app.SnapshotService]("market.SnapshotService")
)

// Private dependency tokens - internal to market module
var (
	BazaarProvider  = di.NewToken[app.BazaarProvider]("market:bazaarProvider")
	CatalogProvider = di.NewToken[app.ItemCatalogProvider]("market:catalogProvider")
	RecipeProvider  = di.NewToken[app.RecipeProvider]("market:recipeProvider")
)

// Helper functions for type-safe access
func GetSnapshotService(c di.ServiceRegistry) *app.SnapshotService {
	return di.GetToken(c, SnapshotService)
}

func GetBazaarProvider(c di.ServiceRegistry) app.BazaarProvider {
	return di.GetToken(c, BazaarProvider)
}

func GetCatalogProvider(c di.ServiceRegistry) app.ItemCatalogProvider {
	return di.GetToken(c, CatalogProvider)
}

func GetRecipeProvider(c di.ServiceRegistry) app.RecipeProvider {
	return di.GetToken(c, RecipeProvider)
}
