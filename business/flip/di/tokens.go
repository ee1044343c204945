// Package di contains dependency injection tokens for the flip context.
package di

import (
	"github.com/fliplab/bzflip/business/flip/app"
	"github.com/fliplab/bzflip/business/flip/infra/history"
	"github.com/fliplab/bzflip/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Evaluator    = di.NewToken[*app.Evaluator]("flip.Evaluator")
	HistoryStore = di.NewToken[*history.Store]("flip.HistoryStore")
)

// Helper functions for type-safe access
func GetEvaluator(c di.ServiceRegistry) *app.Evaluator {
	return di.GetToken(c, Evaluator)
}

func GetHistoryStore(c di.ServiceRegistry) *history.Store {
	return di.GetToken(c, HistoryStore)
}
