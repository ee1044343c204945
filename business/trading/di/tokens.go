// Package di contains dependency injection tokens for the trading context.
package di

import (
	"github.com/fliplab/bzflip/business/trading/app"
	"github.com/fliplab/bzflip/internal/di"
)

// Public service tokens - exposed to other modules
var (
	SessionFactory = di.NewToken[*app.SessionFactory]("trading.SessionFactory")
)

// Helper functions for type-safe access
func GetSessionFactory(c di.ServiceRegistry) *app.SessionFactory {
	return di.GetToken(c, SessionFactory)
}
