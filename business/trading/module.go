// Package trading implements the trading bounded context: simulated
// sessions over a market snapshot.
package trading

import (
	"context"

	"github.com/fliplab/bzflip/business/trading/app"
	tradingDI "github.com/fliplab/bzflip/business/trading/di"
	"github.com/fliplab/bzflip/internal/config"
	"github.com/fliplab/bzflip/internal/di"
	"github.com/fliplab/bzflip/internal/logger"
	"github.com/fliplab/bzflip/internal/monolith"
)

// Module implements the trading bounded context.
type Module struct{}

// RegisterServices registers all trading services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register SessionFactory (public - exposed to other modules)
	di.RegisterToken(c, tradingDI.SessionFactory, func(sr di.ServiceRegistry) *app.SessionFactory {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return app.NewSessionFactory(cfg.Pricing, log)
	})

	return nil
}

// Startup initializes the trading module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "trading module started")
	return nil
}
