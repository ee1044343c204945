// Package flip implements the flip bounded context: strategy evaluation
// over the market snapshot and optional result history.
package flip

import (
	"context"

	craftingDI "github.com/fliplab/bzflip/business/crafting/di"
	"github.com/fliplab/bzflip/business/flip/app"
	flipDI "github.com/fliplab/bzflip/business/flip/di"
	"github.com/fliplab/bzflip/business/flip/infra/history"
	marketDI "github.com/fliplab/bzflip/business/market/di"
	tradingDI "github.com/fliplab/bzflip/business/trading/di"
	"github.com/fliplab/bzflip/internal/config"
	"github.com/fliplab/bzflip/internal/di"
	"github.com/fliplab/bzflip/internal/logger"
	"github.com/fliplab/bzflip/internal/monolith"
)

// Module implements the flip bounded context.
type Module struct{}

// RegisterServices registers all flip services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register Evaluator (public - exposed to the presentation layer)
	di.RegisterToken(c, flipDI.Evaluator, func(sr di.ServiceRegistry) *app.Evaluator {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		evaluator, err := app.NewEvaluator(
			marketDI.GetSnapshotService(sr),
			tradingDI.GetSessionFactory(sr),
			craftingDI.GetResolver(sr),
			cfg.Pricing,
			log,
		)
		if err != nil {
			panic("failed to create flip evaluator: " + err.Error())
		}
		return evaluator
	})

	// Register HistoryStore (public - nil unless storage is enabled)
	di.RegisterToken(c, flipDI.HistoryStore, func(sr di.ServiceRegistry) *history.Store {
		cfg := sr.Get("config").(*config.Config)
		if !cfg.Storage.Enabled {
			return nil
		}

		store, err := history.NewStore(cfg.Storage.Path)
		if err != nil {
			panic("failed to open flip history store: " + err.Error())
		}
		return store
	})

	return nil
}

// Startup initializes the flip module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "flip module started")
	return nil
}
