// Package market implements the market bounded context: feed ingestion
// and the immutable per-run snapshot.
package market

import (
	"context"

	"github.com/fliplab/bzflip/business/market/app"
	marketDI "github.com/fliplab/bzflip/business/market/di"
	"github.com/fliplab/bzflip/business/market/infra/feedcache"
	"github.com/fliplab/bzflip/business/market/infra/hypixel"
	"github.com/fliplab/bzflip/business/market/infra/neu"
	"github.com/fliplab/bzflip/internal/config"
	"github.com/fliplab/bzflip/internal/di"
	"github.com/fliplab/bzflip/internal/httpclient"
	"github.com/fliplab/bzflip/internal/logger"
	"github.com/fliplab/bzflip/internal/monolith"
)

// Module implements the market bounded context.
type Module struct{}

// RegisterServices registers all market services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register BazaarProvider - private dependency
	di.RegisterToken(c, marketDI.BazaarProvider, func(sr di.ServiceRegistry) app.BazaarProvider {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return hypixel.NewBazaarClient(hypixel.BazaarConfig{
			URL:               cfg.Market.BazaarURL,
			BookDepth:         cfg.Market.BookDepth,
			RequestsPerMinute: cfg.Market.RequestsPerMinute,
		}, newHTTPClient(cfg), newFeedCache(sr), log)
	})

	// Register ItemCatalogProvider - private dependency
	di.RegisterToken(c, marketDI.CatalogProvider, func(sr di.ServiceRegistry) app.ItemCatalogProvider {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return hypixel.NewItemsClient(hypixel.ItemsConfig{
			URL:               cfg.Market.ItemsURL,
			RequestsPerMinute: cfg.Market.RequestsPerMinute,
		}, newHTTPClient(cfg), newFeedCache(sr), log)
	})

	// Register RecipeProvider - private dependency
	di.RegisterToken(c, marketDI.RecipeProvider, func(sr di.ServiceRegistry) app.RecipeProvider {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return neu.NewLoader(cfg.Market.RecipesPath, newFeedCache(sr), log)
	})

	// Register SnapshotService (public - exposed to other modules)
	di.RegisterToken(c, marketDI.SnapshotService, func(sr di.ServiceRegistry) *app.SnapshotService {
		log := sr.Get("logger").(logger.LoggerInterface)

		return app.NewSnapshotService(
			marketDI.GetBazaarProvider(sr),
			marketDI.GetCatalogProvider(sr),
			marketDI.GetRecipeProvider(sr),
			log,
		)
	})

	return nil
}

// Startup initializes the market module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "market module started")
	return nil
}

func newHTTPClient(cfg *config.Config) httpclient.Client {
	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("hypixel"),
		httpclient.WithRequestTimeout(cfg.Market.HTTPTimeout),
	)
	if err != nil {
		panic("failed to create http client: " + err.Error())
	}
	return client
}

func newFeedCache(sr di.ServiceRegistry) *feedcache.Store {
	cfg := sr.Get("config").(*config.Config)
	log := sr.Get("logger").(logger.LoggerInterface)

	return feedcache.NewStore(
		cfg.Market.CacheDir,
		cfg.Market.CacheEnabled,
		cfg.Market.RefreshFeeds,
		log,
	)
}
