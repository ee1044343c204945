// Package di contains dependency injection tokens for the crafting context.
package di

import (
	"github.com/fliplab/bzflip/business/crafting/app"
	"github.com/fliplab/bzflip/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Resolver = di.NewToken[*app.Resolver]("crafting.Resolver")
)

// Helper functions for type-safe access
func GetResolver(c di.ServiceRegistry) *app.Resolver {
	return di.GetToken(c, Resolver)
}
