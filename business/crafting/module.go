// Package crafting implements the crafting bounded context: recipe
// resolution and decomposition into purchasable materials.
package crafting

import (
	"context"

	"github.com/fliplab/bzflip/business/crafting/app"
	craftingDI "github.com/fliplab/bzflip/business/crafting/di"
	"github.com/fliplab/bzflip/internal/di"
	"github.com/fliplab/bzflip/internal/logger"
	"github.com/fliplab/bzflip/internal/monolith"
)

// Module implements the crafting bounded context.
type Module struct{}

// RegisterServices registers all crafting services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register Resolver (public - exposed to other modules)
	di.RegisterToken(c, craftingDI.Resolver, func(sr di.ServiceRegistry) *app.Resolver {
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewResolver(log)
	})

	return nil
}

// Startup initializes the crafting module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "crafting module started")
	return nil
}
